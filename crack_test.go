// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"encoding/binary"
	"testing"
)

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func TestCrackRowJet4FixedAndVar(t *testing.T) {
	cols := []*Column{
		{Name: "ID", ColType: ColLongInt, ColNum: 0, ColSize: 4, IsFixed: true, FixedOffset: 0},
		{Name: "Name", ColType: ColText, ColNum: 1, VarColNum: 0},
	}

	varData := []byte("hi")
	var row []byte
	row = append(row, u16(2)...)  // column count
	row = append(row, u32(42)...) // fixed ID = 42
	row = append(row, varData...) // variable data, starting at byte 6
	row = append(row, u16(6)...)  // var offset[0] = 6 (row-relative)
	row = append(row, u16(8)...)  // var offset[1] = 8
	row = append(row, u16(1)...)  // var column count = 1
	row = append(row, 0x03)       // nullmask: both columns present

	cells, err := crackRow(row, jet4Layout, false, cols)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 {
		t.Fatalf("got %d cells", len(cells))
	}
	id, err := leU32(cells[0], 0)
	if err != nil || id != 42 {
		t.Fatalf("id cell: %v %v", id, err)
	}
	if string(cells[1]) != "hi" {
		t.Fatalf("var cell: %q", cells[1])
	}
}

func TestCrackRowNullColumn(t *testing.T) {
	cols := []*Column{
		{Name: "ID", ColType: ColLongInt, ColNum: 0, ColSize: 4, IsFixed: true, FixedOffset: 0},
		{Name: "Name", ColType: ColText, ColNum: 1, VarColNum: 0},
	}

	var row []byte
	row = append(row, u16(2)...)
	row = append(row, u32(7)...)
	// no var data: both offsets sit at the row-relative start of var data
	row = append(row, u16(6)...)
	row = append(row, u16(6)...)
	row = append(row, u16(1)...)
	row = append(row, 0x01) // only column 0 present; column 1 is NULL

	cells, err := crackRow(row, jet4Layout, false, cols)
	if err != nil {
		t.Fatal(err)
	}
	if cells[1] != nil {
		t.Fatalf("expected nil for null var column, got %v", cells[1])
	}
}

// TestCrackRowVarOffsetsJet3Straddle builds a 261-byte Jet3 row (five bytes
// past the first 256-byte block) with a single jump-table entry, so the
// column pointer's single-byte offsets must pick up +256 once the loop
// index reaches the recorded breakpoint. This exercises the case a row
// shorter than 256 bytes never can: num_jumps derived from row length
// rather than from any particular byte value, and an offset that only
// resolves correctly once the jump is applied.
func TestCrackRowVarOffsetsJet3Straddle(t *testing.T) {
	const rowLen = 261
	buf := make([]byte, rowLen)

	buf[256] = 5   // contributes to offsets[1] once jumpsUsed reaches 1
	buf[257] = 10  // offsets[0], read before any jump fires
	buf[258] = 1   // jump table: breakpoint fires when loop index i == 1
	buf[259] = 1   // variable column count (row_var_cols)
	buf[260] = 0x3 // null mask byte

	offsets, err := crackRowVarOffsetsJet3(buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{10, 5 + 256}
	if len(offsets) != len(want) || offsets[0] != want[0] || offsets[1] != want[1] {
		t.Fatalf("offsets = %v, want %v", offsets, want)
	}
}
