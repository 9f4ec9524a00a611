// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "fmt"

// Rewind resets the table's scan cursor to just before the first data
// page, so the next FetchRow call returns the first row.
func (t *Table) Rewind() error {
	t.curPgNum = 0
	t.curPhysPg = 0
	t.curRow = 0
	return nil
}

// FetchRow advances the cursor to the next non-deleted row (unless
// Options.NoSkipDeleted is set) that SargTree, when set, accepts, and
// returns its decoded values, one per column in Columns order. It
// returns (nil, nil) at end of table.
func (t *Table) FetchRow() ([]interface{}, error) {
	for {
		raw, err := t.readNextRawRow()
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}

		cells, err := crackRow(raw, t.db.layout, t.db.isJet3, t.Columns)
		if err != nil {
			if t.db.opts.strict() {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			t.db.logger.Warnf("table %s: skipping row: %v", t.Name, err)
			continue
		}

		values := make([]interface{}, len(t.Columns))
		for i, c := range t.Columns {
			v, err := t.decodeCell(c, cells[i])
			if err != nil {
				t.db.logger.Warnf("table %s: column %s: %v", t.Name, c.Name, err)
				continue
			}
			values[i] = v
		}
		if t.SargTree != nil {
			ok, err := (DefaultSargEvaluator{}).Eval(t.SargTree, t.Columns, values)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			if !ok {
				continue
			}
		}
		return values, nil
	}
}

// decodeCell converts one cracked cell's raw bytes to a typed Go value,
// resolving memo chains as needed.
func (t *Table) decodeCell(c *Column, raw []byte) (interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	if c.ColType == ColMemo {
		text, err := t.db.resolveMemo(raw, t.db.isJet3, t.db.codePage)
		if err != nil {
			return nil, err
		}
		return text, nil
	}
	return decodeValue(c, raw, t.db)
}

// readNextRawRow walks data pages via readNextDataPage and returns the
// next row's raw bytes (skipping deleted rows unless configured not to),
// or nil at end of table.
func (t *Table) readNextRawRow() ([]byte, error) {
	for {
		if t.curPhysPg == 0 {
			pg, err := t.readNextDataPage()
			if err != nil {
				return nil, err
			}
			if pg == 0 {
				return nil, nil
			}
			t.curPhysPg = pg
			t.curRow = 0
			if _, err := t.db.readPage(pg); err != nil {
				return nil, err
			}
		} else {
			if _, err := t.db.readPage(t.curPhysPg); err != nil {
				return nil, err
			}
		}

		numRowsOnPage, err := leU16(t.db.current, t.db.layout.rowCountOffset)
		if err != nil {
			return nil, err
		}
		if uint32(t.curRow) >= uint32(numRowsOnPage) {
			t.curPhysPg = 0
			continue
		}

		ext, err := t.db.findRow(t.curRow)
		row := t.curRow
		t.curRow++
		if err != nil {
			if t.db.opts.strict() {
				return nil, err
			}
			t.db.logger.Warnf("table %s row %d: skipping: %v", t.Name, row, err)
			continue
		}

		deleted := ext.startWithFlags&RowPointerDeletedFlag != 0
		if deleted && !t.db.opts.noSkipDeleted() {
			continue
		}

		start := uint32(ext.startWithFlags) & OffsetMask
		if uint64(start)+uint64(ext.length) > uint64(len(t.db.current)) {
			return nil, fmt.Errorf("table %s row %d: %w", t.Name, row, ErrOutOfBounds)
		}
		buf := make([]byte, ext.length)
		copy(buf, t.db.current[start:start+uint32(ext.length)])
		return buf, nil
	}
}

// readNextDataPage returns the next physical data page belonging to this
// table after curPgNum, or 0 at end of table. It follows the table's
// usage map for the common case and falls back to a brute-force linear
// scan of every page after FirstDataPg when the usage map yields nothing
// useful, guarding against looping forever on the same page. Every
// candidate, from either source, is validated before being reported: a
// valid data page has byte 0 == PageData and its "owning table"
// back-pointer at offset 4 equal to this table's root page.
func (t *Table) readNextDataPage() (uint32, error) {
	pg, err := t.usageMap.next(t.db, t.curPgNum)
	if err == ErrUnknownUsageMapType {
		t.db.logger.Warnf("table %s: %v, ending scan", t.Name, err)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if pg != 0 {
		ok, err := t.isOwnedDataPage(pg)
		if err != nil {
			return 0, err
		}
		if ok {
			t.curPgNum = pg
			return pg, nil
		}
		t.db.logger.Warnf("table %s: usage map page %d failed validation, falling back to scan", t.Name, pg)
	}

	// Brute-force fallback: scan forward from the highest page seen so
	// far looking for a page whose type byte marks it as table data and
	// whose "owning table" back-pointer (the 4-byte value at offset 4,
	// matching the table-definition page for Jet4) matches this table.
	start := t.curPgNum + 1
	if start <= uint32(t.FirstDataPg) {
		start = uint32(t.FirstDataPg)
	}
	limit := start + uint32(t.db.layout.pageSize)*8
	for candidate := start; candidate < limit; candidate++ {
		n, err := t.db.readAltPage(candidate)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break // past end of file
		}
		if t.db.alt[0] != PageData {
			continue
		}
		owner, err := leU32(t.db.alt, 4)
		if err != nil {
			return 0, err
		}
		if owner == t.RootPage {
			t.curPgNum = candidate
			return candidate, nil
		}
		if candidate == t.curPgNum {
			// Defensive guard: never re-report the page we are already
			// positioned on, which would spin readNextRawRow forever.
			continue
		}
	}
	return 0, nil
}

// isOwnedDataPage reports whether pg is a data page belonging to this
// table: type byte PageData and an offset-4 back-pointer equal to
// RootPage.
func (t *Table) isOwnedDataPage(pg uint32) (bool, error) {
	n, err := t.db.readAltPage(pg)
	if err != nil {
		return false, err
	}
	if n == 0 || t.db.alt[0] != PageData {
		return false, nil
	}
	owner, err := leU32(t.db.alt, 4)
	if err != nil {
		return false, err
	}
	return owner == t.RootPage, nil
}
