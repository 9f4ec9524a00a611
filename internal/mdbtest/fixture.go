// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdbtest hand-assembles synthetic Jet4 database images for
// tests, since no real .mdb/.accdb binary fixture is available. Every
// helper here mirrors the on-disk layout described by the parent
// package's table and row format, encoding rows the way crackRow
// decodes them rather than reproducing a real Microsoft Access file
// byte-for-byte.
package mdbtest

import (
	"crypto/rc4"
	"encoding/binary"
)

const (
	PageSize = 4096

	rowCountOffset = 0x0c

	tabNumRowsOffset  = 16
	tabNumColsOffset  = 45
	tabNumIdxsOffset  = 47
	tabNumRIdxsOffset = 51
	tabUsageMapOffset = 55
	tabFreeMapOffset  = 59
	tabColsStart      = 63
	tabColEntrySize   = 25

	colNumOffset   = 5
	colOffsetVar   = 7
	rowColNumOff   = 9
	colOffsetFixed = 21
	colSizeOffset  = 23
	colFlagsOffset = 15

	nameLenSize = 2
	colCountSize = 2

	headerKeyWindow = 128
)

var headerFixedKey = []byte{0xC7, 0xDA, 0x39, 0x6B}

// ColSpec describes one column of a synthetic table, enough to populate
// both its table-definition attribute record and to encode/decode row
// values against it.
type ColSpec struct {
	Name    string
	ColType byte
	ColNum  byte
	Size    uint16
	Fixed   bool
	FixedOffset uint16
	VarColNum   uint16
}

// page is a fixed PageSize byte buffer with little-endian write helpers.
type page struct {
	buf [PageSize]byte
}

func newPage(pageType byte) *page {
	p := &page{}
	p.buf[0] = pageType
	return p
}

func (p *page) putU16(off uint32, v uint16) { binary.LittleEndian.PutUint16(p.buf[off:], v) }
func (p *page) putU32(off uint32, v uint32) { binary.LittleEndian.PutUint32(p.buf[off:], v) }
func (p *page) putBytes(off uint32, b []byte) { copy(p.buf[off:], b) }

// putRow installs row bytes into the row-pointer directory at index idx,
// growing the directory's row count and writing the pointer + data so
// that findRow's extent computation (offset running backward from the
// previous pointer, or page end for row 0) recovers exactly `data`.
func (p *page) putRow(idx int, data []byte, dataEnd *uint32) {
	numRows := binary.LittleEndian.Uint16(p.buf[rowCountOffset:])
	if int(numRows) <= idx {
		p.putU16(rowCountOffset, uint16(idx+1))
	}

	start := *dataEnd - uint32(len(data))
	p.putBytes(start, data)
	p.putU16(rowCountOffset+2+uint32(idx)*2, uint16(start))
	*dataEnd = start
}

// BuildHeader returns a Jet4 page-0 header, obfuscated with the fixed
// header key the way a real database stores it, declaring dbKey=0 (no
// whole-file RC4 obfuscation) and codePage 1252.
func BuildHeader() []byte {
	p := newPage(0)
	p.buf[0x14] = 0x01 // Jet4

	plain := make([]byte, headerKeyWindow)
	binary.LittleEndian.PutUint16(plain[0x3c-0x18:], 1252) // codePage
	binary.LittleEndian.PutUint32(plain[0x3e-0x18:], 0)    // dbKey
	binary.LittleEndian.PutUint16(plain[0x6e-0x18:], 0x09) // langID

	c, err := rc4.NewCipher(headerFixedKey)
	if err != nil {
		panic(err)
	}
	enc := make([]byte, len(plain))
	c.XORKeyStream(enc, plain)
	p.putBytes(0x18, enc)

	return p.buf[:]
}

// BuildTableDefPage assembles a table-definition page: fixed header
// fields, one column attribute record per col, then the name block.
// usageMapPgRow/freeMapPgRow are page-row handles (page<<8|row) the
// caller has already placed usage-map bytes at.
func BuildTableDefPage(numRows uint32, cols []ColSpec, usageMapPgRow, freeMapPgRow uint32, firstDataPg uint16) []byte {
	p := newPage(0x02)

	numVarCols := 0
	for _, c := range cols {
		if !c.Fixed {
			numVarCols++
		}
	}

	p.putU32(tabNumRowsOffset, numRows)
	p.putU16(tabNumColsOffset-2, uint16(numVarCols))
	p.putU16(tabNumColsOffset, uint16(len(cols)))
	p.putU32(tabNumIdxsOffset, 0)
	p.putU32(tabNumRIdxsOffset, 0)
	p.putU32(tabUsageMapOffset, usageMapPgRow)
	p.putU32(tabFreeMapOffset, freeMapPgRow)

	cursor := uint32(tabColsStart)
	for _, c := range cols {
		rec := make([]byte, tabColEntrySize)
		rec[0] = c.ColType
		rec[colNumOffset] = c.ColNum
		binary.LittleEndian.PutUint16(rec[colOffsetVar:], c.VarColNum)
		binary.LittleEndian.PutUint16(rec[rowColNumOff:], c.VarColNum)
		if c.Fixed {
			rec[colFlagsOffset] = 0x01
		}
		binary.LittleEndian.PutUint16(rec[colOffsetFixed:], c.FixedOffset)
		binary.LittleEndian.PutUint16(rec[colSizeOffset:], c.Size)
		p.putBytes(cursor, rec)
		cursor += tabColEntrySize
	}

	for _, c := range cols {
		nameBytes := utf16le(c.Name)
		p.putU16(cursor, uint16(len(nameBytes)))
		cursor += nameLenSize
		p.putBytes(cursor, nameBytes)
		cursor += uint32(len(nameBytes))
	}

	_ = firstDataPg
	return p.buf[:]
}

// BuildDataPage assembles a data page for owner (the table-def page
// number, written at offset 4 so the brute-force table scan can confirm
// ownership) containing the given pre-encoded rows, most recently added
// row first in the on-page byte layout (rows grow backward from the end
// of the page, matching findRow's row-0-ends-at-page-end convention).
func BuildDataPage(owner uint32, rows [][]byte) []byte {
	p := newPage(0x01)
	p.putU32(4, owner)

	dataEnd := uint32(PageSize)
	for i, row := range rows {
		p.putRow(i, row, &dataEnd)
	}
	return p.buf[:]
}

// BuildInlineUsageMap returns a type-0 usage map bitmap naming pages
// starting at base, with the bits in pages set.
func BuildInlineUsageMap(base uint32, pages ...uint32) []byte {
	maxBit := uint32(0)
	for _, pg := range pages {
		if pg-base+1 > maxBit {
			maxBit = pg - base + 1
		}
	}
	bitmap := make([]byte, (maxBit+7)/8)
	for _, pg := range pages {
		bit := pg - base
		bitmap[bit/8] |= 1 << (bit % 8)
	}
	out := make([]byte, 5+len(bitmap))
	out[0] = 0
	binary.LittleEndian.PutUint32(out[1:], base)
	copy(out[5:], bitmap)
	return out
}

// PgRow packs a page number and row index into a 32-bit page-row handle.
func PgRow(page uint32, row int) uint32 { return page<<8 | uint32(row) }

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

// EncodeRow builds a Jet4-format row: fixed column data packed at each
// column's FixedOffset, variable column data concatenated in VarColNum
// order, a backward offset table, and a trailing null-mask whose bits
// follow the inverted-sense convention (set bit means present). values
// must align 1:1 with cols; a nil entry means NULL.
func EncodeRow(cols []ColSpec, values []interface{}) []byte {
	fixedLen := uint32(0)
	for _, c := range cols {
		if c.Fixed {
			end := uint32(c.FixedOffset) + uint32(c.Size)
			if end > fixedLen {
				fixedLen = end
			}
		}
	}
	fixed := make([]byte, fixedLen)

	var varCols []ColSpec
	for _, c := range cols {
		if !c.Fixed {
			varCols = append(varCols, c)
		}
	}
	varData := make([]byte, 0, 64)
	offsets := make([]uint16, len(varCols)+1)

	bitmaskSz := (len(cols) + 7) / 8
	nullMask := make([]byte, bitmaskSz)

	for i, c := range cols {
		v := values[i]
		if v == nil {
			continue
		}
		nullMask[c.ColNum/8] |= 1 << (c.ColNum % 8)

		if c.Fixed {
			b, _ := v.([]byte)
			copy(fixed[c.FixedOffset:], b)
		}
	}

	// Variable column offsets are row-relative, counting from byte 0 of
	// the row (the column count field), not from the start of varData.
	varStart := uint16(colCountSize) + uint16(len(fixed))
	for i, c := range varCols {
		offsets[i] = varStart + uint16(len(varData))
		if v := values[indexOf(cols, c)]; v != nil {
			b, _ := v.([]byte)
			varData = append(varData, b...)
		}
	}
	offsets[len(varCols)] = varStart + uint16(len(varData))

	out := make([]byte, 0, colCountSize+len(fixed)+len(varData)+2*len(offsets)+2+bitmaskSz)
	out = append(out, u16le(uint16(len(cols)))...)
	out = append(out, fixed...)
	out = append(out, varData...)
	for _, o := range offsets {
		out = append(out, u16le(o)...)
	}
	out = append(out, u16le(uint16(len(varCols)))...)
	out = append(out, nullMask...)
	return out
}

func indexOf(cols []ColSpec, target ColSpec) int {
	for i, c := range cols {
		if c.ColNum == target.ColNum {
			return i
		}
	}
	return -1
}

func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
