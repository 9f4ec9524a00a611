// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "testing"

// FuzzOpenBytes uses Go's native fuzzing support in place of a legacy
// external go-fuzz harness. It only asserts that Open never panics on
// arbitrary input; malformed input returning an error is the expected,
// successful outcome.
func FuzzOpenBytes(f *testing.F) {
	f.Add(buildSyntheticDBBytesForFuzz())
	f.Add([]byte{0x00})
	f.Add(make([]byte, 4096))

	f.Fuzz(func(t *testing.T, data []byte) {
		db, err := OpenBytes(data, &Options{Logger: NopLogger{}})
		if err != nil {
			return
		}
		defer db.Close()

		names, err := db.ListTables()
		if err != nil {
			return
		}
		for _, name := range names {
			tbl, err := db.OpenTable(name)
			if err != nil {
				continue
			}
			for i := 0; i < 1000; i++ {
				row, err := tbl.FetchRow()
				if err != nil || row == nil {
					break
				}
			}
		}
	})
}

// FuzzCrackRow exercises the row cracker directly against arbitrary byte
// strings, independent of the page store.
func FuzzCrackRow(f *testing.F) {
	cols := []*Column{
		{Name: "ID", ColType: ColLongInt, ColNum: 0, ColSize: 4, IsFixed: true, FixedOffset: 0},
		{Name: "Name", ColType: ColText, ColNum: 1, VarColNum: 0},
	}
	f.Add([]byte{0x02, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x00, 0x03})

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = crackRow(data, jet4Layout, false, cols)
	})
}

func buildSyntheticDBBytesForFuzz() []byte {
	return buildSyntheticDB(&syntheticHelper{})
}

// syntheticHelper adapts buildSyntheticDB's *testing.T-shaped Helper
// call so FuzzOpenBytes can reuse it as a seed corpus entry without a
// live *testing.T.
type syntheticHelper struct{}

func (syntheticHelper) Helper() {}
