// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "fmt"

// crackRow splits a raw row buffer into one []byte slice per column, in
// column-number order, with a nil slice standing in for a null value.
//
// Row layout, from the start of the buffer: a column-count field
// (lay.colCountSize bytes), then fixed-length column data packed in
// column order, then variable-length column data, then a variable-column
// offset table, then a null-mask bitmap occupying the last
// ceil(numCols/8) bytes of the row. The null mask uses inverted sense:
// a set bit means the column is present, a clear bit means NULL.
func crackRow(buf []byte, lay layout, isJet3 bool, cols []*Column) ([][]byte, error) {
	numCols := len(cols)
	bitmaskSz := (numCols + 7) / 8
	if len(buf) < bitmaskSz {
		return nil, ErrOutOfBounds
	}
	nullMask := buf[len(buf)-bitmaskSz:]

	isNull := func(colNum int) bool {
		if colNum < 0 || colNum >= numCols {
			return true
		}
		return nullMask[colNum/8]&(1<<uint(colNum%8)) == 0
	}

	var varOffsets []uint32
	var err error
	if isJet3 {
		varOffsets, err = crackRowVarOffsetsJet3(buf, bitmaskSz)
	} else {
		varOffsets, err = crackRowVarOffsetsJet4(buf, bitmaskSz)
	}
	if err != nil {
		return nil, err
	}

	fixedBase := int(lay.colCountSize)

	out := make([][]byte, numCols)
	for i, c := range cols {
		if isNull(int(c.ColNum)) {
			continue
		}
		if c.IsFixed {
			if c.ColType == ColBool {
				// Booleans carry their value in the null mask bit itself:
				// "not null" means true, with no separate stored byte.
				out[i] = []byte{1}
				continue
			}
			start := fixedBase + int(c.FixedOffset)
			end := start + int(c.ColSize)
			if end > len(buf) || start < 0 {
				return nil, fmt.Errorf("%w: fixed column %s", ErrOutOfBounds, c.Name)
			}
			cell := make([]byte, c.ColSize)
			copy(cell, buf[start:end])
			out[i] = cell
			continue
		}

		vi := int(c.VarColNum)
		if vi < 0 || vi+1 >= len(varOffsets) {
			continue
		}
		start := int(varOffsets[vi])
		end := int(varOffsets[vi+1])
		if start > end || end > len(buf) || start < 0 {
			return nil, fmt.Errorf("%w: variable column %s", ErrOutOfBounds, c.Name)
		}
		cell := make([]byte, end-start)
		copy(cell, buf[start:end])
		out[i] = cell
	}

	return out, nil
}

// crackRowVarOffsetsJet4 reads the Jet4+ variable-column offset table:
// a 16-bit variable-column count stored right before the null mask, with
// the (count+1) 16-bit offsets immediately below it.
func crackRowVarOffsetsJet4(buf []byte, bitmaskSz int) ([]uint32, error) {
	countPos := len(buf) - bitmaskSz - 2
	if countPos < 0 {
		return nil, ErrOutOfBounds
	}
	count, err := leU16(buf, uint32(countPos))
	if err != nil {
		return nil, err
	}

	n := int(count) + 1
	tableStart := countPos - 2*n
	if tableStart < 0 {
		return nil, ErrOutOfBounds
	}

	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		v, err := leU16(buf, uint32(tableStart+2*i))
		if err != nil {
			return nil, err
		}
		offsets[i] = uint32(v)
	}
	return offsets, nil
}

// crackRowVarOffsetsJet3 reads the Jet3 variable-column offset table: an
// 8-bit variable-column count at rowEnd-bitmaskSz, then (count+1)
// single-byte offsets counting backward from colPtr, preceded by a jump
// table of breakpoint indices that each add 256 to every following
// offset once the loop index reaches them. numJumps is derived purely
// from the row's length, not from counting any particular byte value,
// and a final jump whose breakpoint lands beyond the addressable column
// range is treated as a dummy and discarded. buf is in row-local
// coordinates (row_start == 0), so the column pointer's upper bound is
// checked against len(buf) rather than the full page size.
func crackRowVarOffsetsJet3(buf []byte, bitmaskSz int) ([]uint32, error) {
	rowEnd := len(buf) - 1
	if rowEnd < 0 {
		return nil, ErrOutOfBounds
	}
	countPos := rowEnd - bitmaskSz
	if countPos < 0 || countPos >= len(buf) {
		return nil, ErrOutOfBounds
	}
	count := int(buf[countPos])
	n := count + 1

	numJumps := (len(buf) - 1) / 256
	colPtr := countPos - numJumps - 1

	if (colPtr-count)/256 < numJumps {
		numJumps--
	}

	if bitmaskSz+numJumps+1 > rowEnd {
		return nil, ErrOutOfBounds
	}
	if colPtr >= len(buf) || colPtr < count {
		return nil, ErrOutOfBounds
	}

	offsets := make([]uint32, n)
	jumpsUsed := 0
	for i := 0; i < n; i++ {
		for jumpsUsed < numJumps {
			jp := rowEnd - bitmaskSz - jumpsUsed - 1
			if jp < 0 || jp >= len(buf) {
				return nil, ErrOutOfBounds
			}
			if i != int(buf[jp]) {
				break
			}
			jumpsUsed++
		}
		bp := colPtr - i
		if bp < 0 || bp >= len(buf) {
			return nil, ErrOutOfBounds
		}
		offsets[i] = uint32(buf[bp]) + uint32(jumpsUsed)*256
	}
	return offsets, nil
}
