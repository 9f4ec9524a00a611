// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"testing"

	"github.com/accesskit/mdb2csv/internal/mdbtest"
)

func utf16leBytes(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

// buildSyntheticDB assembles a tiny, internally consistent Jet4 image:
// MSysObjects (page 2) naming one user table "Widgets" (page 5), whose
// two rows live on page 7.
type testHelper interface {
	Helper()
}

func buildSyntheticDB(t testHelper) []byte {
	t.Helper()

	const pageSize = mdbtest.PageSize
	total := make([]byte, 8*pageSize)
	put := func(pg uint32, data []byte) {
		copy(total[uint32(pg)*pageSize:], data)
	}

	put(0, mdbtest.BuildHeader())

	msysCols := []mdbtest.ColSpec{
		{Name: "Id", ColType: ColLongInt, ColNum: 0, Size: 4, Fixed: true, FixedOffset: 0},
		{Name: "Name", ColType: ColText, ColNum: 1},
		{Name: "Type", ColType: ColInt, ColNum: 2, Size: 2, Fixed: true, FixedOffset: 4},
		{Name: "Flags", ColType: ColLongInt, ColNum: 3, Size: 4, Fixed: true, FixedOffset: 6},
	}
	put(2, mdbtest.BuildTableDefPage(1, msysCols, mdbtest.PgRow(3, 0), mdbtest.PgRow(3, 1), 4))

	put(3, mdbtest.BuildDataPage(0, [][]byte{
		mdbtest.BuildInlineUsageMap(4, 4),
		mdbtest.BuildInlineUsageMap(4),
	}))

	widgetsRow := mdbtest.EncodeRow(msysCols, []interface{}{
		u32(5), utf16leBytes("Widgets"), u16(uint16(ObjTypeTable)), u32(0),
	})
	put(4, mdbtest.BuildDataPage(2, [][]byte{widgetsRow}))

	widgetCols := []mdbtest.ColSpec{
		{Name: "ID", ColType: ColLongInt, ColNum: 0, Size: 4, Fixed: true, FixedOffset: 0},
		{Name: "Label", ColType: ColText, ColNum: 1},
	}
	put(5, mdbtest.BuildTableDefPage(2, widgetCols, mdbtest.PgRow(6, 0), mdbtest.PgRow(6, 1), 7))

	put(6, mdbtest.BuildDataPage(0, [][]byte{
		mdbtest.BuildInlineUsageMap(7, 7),
		mdbtest.BuildInlineUsageMap(7),
	}))

	row1 := mdbtest.EncodeRow(widgetCols, []interface{}{u32(1), utf16leBytes("foo")})
	row2 := mdbtest.EncodeRow(widgetCols, []interface{}{u32(2), utf16leBytes("bar")})
	put(7, mdbtest.BuildDataPage(5, [][]byte{row1, row2}))

	return total
}

func TestOpenBytesAndListTables(t *testing.T) {
	db, err := OpenBytes(buildSyntheticDB(t), &Options{Logger: NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if db.JetVersion() != VerJet4 {
		t.Fatalf("got version %#x", db.JetVersion())
	}
	if db.PageSize() != 4096 {
		t.Fatalf("got page size %d", db.PageSize())
	}

	names, err := db.ListTables()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "Widgets" {
		t.Fatalf("got tables %v", names)
	}
}

func TestOpenTableFetchRow(t *testing.T) {
	db, err := OpenBytes(buildSyntheticDB(t), &Options{Logger: NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	tbl, err := db.OpenTable("Widgets")
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Columns) != 2 {
		t.Fatalf("got %d columns", len(tbl.Columns))
	}

	var got []struct {
		id    int32
		label string
	}
	for {
		row, err := tbl.FetchRow()
		if err != nil {
			t.Fatal(err)
		}
		if row == nil {
			break
		}
		id, _ := row[0].(int32)
		label, _ := row[1].(string)
		got = append(got, struct {
			id    int32
			label string
		}{id, label})
	}

	if len(got) != 2 {
		t.Fatalf("got %d rows: %+v", len(got), got)
	}
	if got[0].id != 1 || got[0].label != "foo" {
		t.Fatalf("row 0: %+v", got[0])
	}
	if got[1].id != 2 || got[1].label != "bar" {
		t.Fatalf("row 1: %+v", got[1])
	}
}
