// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"testing"
	"time"
)

func TestLeReaders(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	if v, err := leU16(buf, 0); err != nil || v != 0x0201 {
		t.Fatalf("leU16 = %#x, %v", v, err)
	}
	if v, err := leU32(buf, 0); err != nil || v != 0x04030201 {
		t.Fatalf("leU32 = %#x, %v", v, err)
	}
	if v, err := leU64(buf, 0); err != nil || v != 0x0807060504030201 {
		t.Fatalf("leU64 = %#x, %v", v, err)
	}
	if _, err := leU32(buf, 6); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}

func TestRC4CryptRoundTrip(t *testing.T) {
	key := []byte{0xde, 0xad, 0xbe, 0xef}
	plain := []byte("the quick brown fox")

	cipher, err := rc4Crypt(key, plain)
	if err != nil {
		t.Fatal(err)
	}
	back, err := rc4Crypt(key, cipher)
	if err != nil {
		t.Fatal(err)
	}
	if string(back) != string(plain) {
		t.Fatalf("roundtrip mismatch: got %q", back)
	}
}

func TestHeaderDeobfuscateRoundTrip(t *testing.T) {
	plain := make([]byte, 0x18+jet3Layout.headerKeyWindow)
	copy(plain[0x3a:], []byte{0x09, 0x00})

	obfuscated := make([]byte, len(plain))
	copy(obfuscated, plain)
	enc, err := rc4Crypt(headerFixedKey[:], obfuscated[0x18:])
	if err != nil {
		t.Fatal(err)
	}
	copy(obfuscated[0x18:], enc)

	if err := headerDeobfuscate(obfuscated, jet3Layout.headerKeyWindow); err != nil {
		t.Fatal(err)
	}
	for i := range plain {
		if plain[i] != obfuscated[i] {
			t.Fatalf("byte %d: want %#x got %#x", i, plain[i], obfuscated[i])
		}
	}
}

func TestDecompressUnicode(t *testing.T) {
	// "AB" compressed (no mode switches) should expand to UTF-16LE "A\x00B\x00".
	got := decompressUnicode([]byte{'A', 'B'})
	want := []byte{'A', 0, 'B', 0}
	if string(got) != string(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDecompressUnicodeModeSwitch(t *testing.T) {
	// Compressed 'A', then a mode switch into expanded mode carrying one
	// literal UTF-16LE pair, then a switch back into compressed mode
	// carrying 'B'.
	src := []byte{'A', 0x00, 0x41, 0x00, 0x00, 'B'}
	got := decompressUnicode(src)
	want := []byte{'A', 0, 0x41, 0x00, 'B', 0}
	if string(got) != string(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSerialDateToTime(t *testing.T) {
	// Day 1 is 1899-12-31 in the Jet epoch.
	got := serialDateToTime(1.0)
	want := time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSerialDateToTimeLeapAnomaly(t *testing.T) {
	// Day 60 sits next to the Lotus-compatible phantom leap day
	// 1900-02-29. This checks only that it lands in February or March
	// 1900, without pinning the exact day, since time.Date silently
	// normalizes an out-of-range day into March.
	got := serialDateToTime(60.0)
	if got.Year() != 1900 || (got.Month() != time.February && got.Month() != time.March) {
		t.Fatalf("got %v", got)
	}
}

func TestCharmapForCodePage(t *testing.T) {
	if charmapForCodePage(65001) != nil {
		t.Fatal("65001 (UTF-8) should map to nil (treat as UTF-8)")
	}
	if charmapForCodePage(1252) == nil {
		t.Fatal("1252 should resolve to a charmap")
	}
}
