// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "testing"

func TestDecodeNumeric(t *testing.T) {
	raw := make([]byte, 17)
	raw[0] = 0 // positive
	raw[16] = 0x7b // 123 in the low byte of the 16-byte magnitude
	got := decodeNumeric(raw, 0)
	want := int64(123)
	if got.Num().Int64() != want || got.Denom().Int64() != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeNumericNegativeScaled(t *testing.T) {
	raw := make([]byte, 17)
	raw[0] = 1 // negative
	raw[16] = 0x0a
	got := decodeNumeric(raw, 1) // scale 1 -> value/10
	f, _ := got.Float64()
	if f != -1.0 {
		t.Fatalf("got %v", f)
	}
}

func TestDecodeValueBool(t *testing.T) {
	c := &Column{ColType: ColBool}
	v, err := decodeValue(c, []byte{1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != true {
		t.Fatalf("got %v", v)
	}
}

func TestDecodeValueMoney(t *testing.T) {
	c := &Column{ColType: ColMoney}
	raw := u64le(50000) // 5.0000 scaled by 10000
	v, err := decodeValue(c, raw, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.(float64) != 5.0 {
		t.Fatalf("got %v", v)
	}
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
