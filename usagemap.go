// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

// usageMap is a length-prefixed byte array describing which pages belong
// to a table's data chain. The first byte selects the encoding: 0 is an
// inline bitmap, 1 is an indirect array of bitmap-page pointers.
type usageMap struct {
	bytes []byte
}

func newUsageMap(b []byte) (usageMap, error) {
	if len(b) < 1 {
		return usageMap{}, ErrUsageMapTooShort
	}
	return usageMap{bytes: b}, nil
}

// mapUnknownType is returned by next when the leading type byte is
// neither 0 nor 1.
var mapUnknownType = ErrUnknownUsageMapType

// next returns the first data page strictly after startPg that the
// usage map marks present, 0 if the map is exhausted, or
// ErrUnknownUsageMapType if the encoding byte is unrecognized. db is used
// to dereference indirect bitmap pages via its alt buffer.
func (m usageMap) next(db *File, startPg uint32) (uint32, error) {
	if len(m.bytes) < 1 {
		return 0, ErrUsageMapTooShort
	}
	switch m.bytes[0] {
	case 0:
		return m.nextInline(startPg)
	case 1:
		return m.nextIndirect(db, startPg)
	default:
		return 0, mapUnknownType
	}
}

// nextInline implements type-0 ("inline bitmap") usage maps: bytes
// [1:5) hold the base page number, and every following bit (LSB first,
// byte by byte) marks one page starting at that base.
func (m usageMap) nextInline(startPg uint32) (uint32, error) {
	if len(m.bytes) < 5 {
		return 0, nil
	}
	base, err := leU32(m.bytes, 1)
	if err != nil {
		return 0, err
	}
	bitmap := m.bytes[5:]
	bitlen := uint32(len(bitmap)) * 8

	var start uint32
	if startPg >= base {
		start = startPg - base + 1
	}
	for i := start; i < bitlen; i++ {
		if bitmap[i/8]&(1<<(i%8)) != 0 {
			return base + i, nil
		}
	}
	return 0, nil
}

// nextIndirect implements type-1 ("indirect") usage maps: bytes after the
// type byte are a packed array of 4-byte page numbers, each naming a page
// that itself holds a 4-byte header followed by a bitmap covering
// (pageSize-4)*8 consecutive logical pages. A zero entry means "no pages
// in this span" and is skipped; the map index always advances on every
// iteration so a run of zero entries cannot stall the scan.
func (m usageMap) nextIndirect(db *File, startPg uint32) (uint32, error) {
	pageSize := db.layout.pageSize
	bitlen := (pageSize - 4) * 8
	maxMapPages := uint32(len(m.bytes)-1) / 4

	mapIndex := (startPg + 1) / bitlen
	offset := (startPg + 1) % bitlen

	for mapIndex < maxMapPages {
		mapPg, err := leU32(m.bytes, 1+mapIndex*4)
		if err != nil {
			return 0, err
		}
		if mapPg != 0 {
			n, err := db.readAltPage(mapPg)
			if err != nil {
				return 0, err
			}
			if uint32(n) < pageSize {
				return 0, ErrShortRead
			}
			bitmap := db.alt[4:]
			for i := offset; i < bitlen; i++ {
				if bitmap[i/8]&(1<<(i%8)) != 0 {
					return mapIndex*bitlen + i, nil
				}
			}
		}
		offset = 0
		mapIndex++
	}
	return 0, nil
}
