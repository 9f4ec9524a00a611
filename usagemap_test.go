// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "testing"

func TestUsageMapInline(t *testing.T) {
	// base page 10, bits set for pages 10, 12, 17.
	bytes := make([]byte, 5+3)
	bytes[0] = 0
	bytes[1] = 10 // base, little-endian uint32
	bitmap := bytes[5:]
	set := func(pg uint32) {
		bit := pg - 10
		bitmap[bit/8] |= 1 << (bit % 8)
	}
	set(10)
	set(12)
	set(17)

	m, err := newUsageMap(bytes)
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.next(nil, 0)
	if err != nil || got != 10 {
		t.Fatalf("first: got %d, %v", got, err)
	}
	got, err = m.next(nil, 10)
	if err != nil || got != 12 {
		t.Fatalf("second: got %d, %v", got, err)
	}
	got, err = m.next(nil, 12)
	if err != nil || got != 17 {
		t.Fatalf("third: got %d, %v", got, err)
	}
	got, err = m.next(nil, 17)
	if err != nil || got != 0 {
		t.Fatalf("exhausted: got %d, %v", got, err)
	}
}

func TestUsageMapUnknownType(t *testing.T) {
	m, err := newUsageMap([]byte{2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.next(nil, 0); err != ErrUnknownUsageMapType {
		t.Fatalf("got %v", err)
	}
}

func TestUsageMapTooShort(t *testing.T) {
	if _, err := newUsageMap(nil); err != ErrUsageMapTooShort {
		t.Fatalf("got %v", err)
	}
}
