// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"fmt"
	"sort"
)

// Table is an open handle on one table's definition and scan cursor.
type Table struct {
	db   *File
	Name string

	RootPage    uint32
	NumRows     uint32
	NumCols     uint16
	NumVarCols  uint16
	NumIdxs     uint32
	NumRealIdxs uint32
	FirstDataPg uint16

	Columns []*Column

	usageMap     usageMap
	freeUsageMap usageMap

	// scan cursor state, mutated by Rewind/FetchRow.
	curPgNum  uint32
	curPhysPg uint32
	curRow    int

	// Strategy and SargTree are the pluggable filtering seams; a nil
	// SargTree accepts every row (plain table scan).
	Strategy SargStrategy
	SargTree *SargNode

	byName map[string]*Column
}

// SargStrategy selects how FetchRow locates the next candidate row.
// Only table-scan is implemented by this module; index-scan is named for
// interface completeness.
type SargStrategy int

const (
	StrategyTableScan SargStrategy = iota
	StrategyIndexScan
)

// openTable reads entry's table-definition page and column block.
func openTable(db *File, entry CatalogEntry) (*Table, error) {
	t := &Table{db: db, Name: entry.ObjectName, RootPage: entry.TablePage}
	if err := t.readTableDef(); err != nil {
		return nil, err
	}
	if err := t.readColumns(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) readTableDef() error {
	db := t.db
	lay := db.layout

	n, err := db.readPage(t.RootPage)
	if err != nil {
		return err
	}
	if uint32(n) < lay.pageSize {
		return ErrShortRead
	}

	marker, err := leByte(db.current, 0)
	if err != nil {
		return err
	}
	if marker != 0x02 {
		return fmt.Errorf("%w: page %d first byte 0x%02x", ErrBadTableDefPage, t.RootPage, marker)
	}

	numRows, err := leU32(db.current, lay.tabNumRowsOffset)
	if err != nil {
		return err
	}
	numVarCols, err := leU16(db.current, lay.tabNumColsOffset-2)
	if err != nil {
		return err
	}
	numCols, err := leU16(db.current, lay.tabNumColsOffset)
	if err != nil {
		return err
	}
	numIdxs, err := leU32(db.current, lay.tabNumIdxsOffset)
	if err != nil {
		return err
	}
	numRealIdxs, err := leU32(db.current, lay.tabNumRIdxsOffset)
	if err != nil {
		return err
	}
	firstDataPg, err := leU16(db.current, lay.tabFirstDpgOffset)
	if err != nil {
		return err
	}

	t.NumRows = numRows
	t.NumVarCols = numVarCols
	t.NumCols = numCols
	t.NumIdxs = numIdxs
	t.NumRealIdxs = numRealIdxs
	t.FirstDataPg = firstDataPg

	usageMapPgRow, err := leU32(db.current, lay.tabUsageMapOffset)
	if err != nil {
		return err
	}
	buf, off, length, err := db.findPgRow(usageMapPgRow)
	if err != nil {
		return fmt.Errorf("reading usage map page-row %d: %w", usageMapPgRow, err)
	}
	um, err := newUsageMap(append([]byte(nil), buf[off:off+uint32(length)]...))
	if err != nil {
		return err
	}
	t.usageMap = um

	freeMapPgRow, err := leU32(db.current, lay.tabFreeMapOffset)
	if err != nil {
		return err
	}
	buf, off, length, err = db.findPgRow(freeMapPgRow)
	if err != nil {
		return fmt.Errorf("reading free-space map page-row %d: %w", freeMapPgRow, err)
	}
	fm, err := newUsageMap(append([]byte(nil), buf[off:off+uint32(length)]...))
	if err != nil {
		return err
	}
	t.freeUsageMap = fm

	// Re-establish "current" as the table-def page: findPgRow only
	// touched the alt buffer, so db.current is still the table-def page
	// here. readColumns continues reading from it below.
	return nil
}

// readColumns parses the column attribute block and the column name
// block that follow it on the table-definition page (and possibly span
// onto following pages).
func (t *Table) readColumns() error {
	db := t.db
	lay := db.layout

	cursor := lay.tabColsStart + t.NumRealIdxs*lay.tabRIdxEntrySize

	cols := make([]*Column, 0, t.NumCols)
	for i := uint16(0); i < t.NumCols; i++ {
		rec, next, err := db.readPageRun(cursor, lay.tabColEntrySize)
		if err != nil {
			return fmt.Errorf("reading column attribute %d: %w", i, err)
		}
		cursor = next

		col := &Column{}
		col.ColType = rec[0]
		colNumByte, err := leByte(rec, lay.colNumOffset)
		if err != nil {
			return err
		}
		col.ColNum = colNumByte

		varColNum, err := leU16(rec, lay.colOffsetVar)
		if err != nil {
			return err
		}
		col.VarColNum = varColNum

		rowColNum, err := leU16(rec, lay.rowColNumOff)
		if err != nil {
			return err
		}
		col.RowColNum = rowColNum

		switch col.ColType {
		case ColNumeric, ColMoney, ColFloat, ColDouble:
			col.ColScale, _ = leByte(rec, lay.colScaleOffset)
			col.ColPrec, _ = leByte(rec, lay.colPrecOffset)
		}

		flags, err := leByte(rec, lay.colFlagsOffset)
		if err != nil {
			return err
		}
		col.IsFixed = flags&0x01 != 0
		col.IsLongAuto = flags&0x04 != 0
		col.IsUUIDAuto = flags&0x40 != 0

		fixedOffset, err := leU16(rec, lay.colOffsetFixed)
		if err != nil {
			return err
		}
		col.FixedOffset = fixedOffset

		if col.ColType != ColBool {
			sz, err := leU16(rec, lay.colSizeOffset)
			if err != nil {
				return err
			}
			col.ColSize = sz
		}

		cols = append(cols, col)
	}

	for i := uint16(0); i < t.NumCols; i++ {
		var nameLen uint16
		var err error
		if lay.nameLenSize == 1 {
			var b byte
			b, cursor, err = db.readPageRunU8(cursor)
			nameLen = uint16(b)
		} else {
			nameLen, cursor, err = db.readPageRunU16(cursor)
		}
		if err != nil {
			return fmt.Errorf("reading column name length %d: %w", i, err)
		}

		nameBytes, next, err := db.readPageRun(cursor, uint32(nameLen))
		if err != nil {
			return fmt.Errorf("reading column name %d: %w", i, err)
		}
		cursor = next

		name, err := db.unicode2ASCII(nameBytes)
		if err != nil {
			return fmt.Errorf("decoding column name %d: %w", i, err)
		}
		cols[i].Name = name
	}

	sort.SliceStable(cols, func(i, j int) bool { return cols[i].ColNum < cols[j].ColNum })

	t.Columns = cols
	t.byName = make(map[string]*Column, len(cols))
	for _, c := range cols {
		t.byName[c.Name] = c
	}
	return nil
}

// BindColumnByName returns the 1-based position of the named column, or
// -1 if no such column exists.
func (t *Table) BindColumnByName(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i + 1
		}
	}
	return -1
}

// Column returns the column at the given 0-based index, or nil if out of
// range.
func (t *Table) Column(i int) *Column {
	if i < 0 || i >= len(t.Columns) {
		return nil
	}
	return t.Columns[i]
}
