// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

// Jet/ACE on-disk format version, read from header offset 0x14.
const (
	VerJet3      = 0x00
	VerJet4      = 0x01
	VerACCDB2007 = 0x02
	VerACCDB2010 = 0x03
	VerACCDB2013 = 0x04
	VerACCDB2016 = 0x05
	VerACCDB2019 = 0x06
)

// Catalog object types, stored in MSysObjects.Type with the top bit used
// as a system-object flag (masked off with 0x7F).
const (
	ObjTypeForm         = 0
	ObjTypeTable        = 1
	ObjTypeMacro        = 2
	ObjTypeSystemTable  = 3
	ObjTypeReport       = 4
	ObjTypeQuery        = 5
	ObjTypeLinkedTable  = 6
	ObjTypeModule       = 7
	ObjTypeRelationship = 8
	ObjTypeDBProperty   = 11

	// ObjTypeAny is a sentinel meaning "accept any object type" when
	// filtering rows during catalog bootstrap.
	ObjTypeAny = -1
)

// ObjFlagsHiddenMask combines the hidden-object and system-object flag
// bits: a catalog entry is a user table only if neither bit is set.
const ObjFlagsHiddenMask = 0x80000002

// Page types, stored as the first byte of every non-header page.
const (
	PageDB    = 0
	PageData  = 1
	PageTable = 2
	PageIndex = 3
	PageLeaf  = 4
	PageMap   = 5
)

// Column data types.
const (
	ColBool     = 0x01
	ColByte     = 0x02
	ColInt      = 0x03
	ColLongInt  = 0x04
	ColMoney    = 0x05
	ColFloat    = 0x06
	ColDouble   = 0x07
	ColDateTime = 0x08
	ColBinary   = 0x09
	ColText     = 0x0a
	ColOLE      = 0x0b
	ColMemo     = 0x0c
	ColRepID    = 0x0f
	ColNumeric  = 0x10
	ColComplex  = 0x12
)

// ColTypeName returns a human-readable name for a column type, used in
// log messages; returns "UNKNOWN" for anything not listed above.
func ColTypeName(t byte) string {
	switch t {
	case ColBool:
		return "BOOL"
	case ColByte:
		return "BYTE"
	case ColInt:
		return "INT"
	case ColLongInt:
		return "LONGINT"
	case ColMoney:
		return "MONEY"
	case ColFloat:
		return "FLOAT"
	case ColDouble:
		return "DOUBLE"
	case ColDateTime:
		return "DATETIME"
	case ColBinary:
		return "BINARY"
	case ColText:
		return "TEXT"
	case ColOLE:
		return "OLE"
	case ColMemo:
		return "MEMO"
	case ColRepID:
		return "REPID"
	case ColNumeric:
		return "NUMERIC"
	case ColComplex:
		return "COMPLEX"
	default:
		return "UNKNOWN"
	}
}

// CatalogRootPage is the fixed physical page of the MSysObjects table,
// i.e. the root of the entire catalog.
const CatalogRootPage = 2

// OffsetMask recovers a row's true in-page offset from a row pointer by
// stripping the lookup (0x8000) and deleted (0x4000) flag bits.
const OffsetMask = 0x1fff

// RowPointerLookupFlag and RowPointerDeletedFlag are the two flag bits
// carried in the high bits of a row pointer.
const (
	RowPointerLookupFlag  = 0x8000
	RowPointerDeletedFlag = 0x4000
)

// MemoOverhead is the fixed size of a memo cell's length+pointer header.
const MemoOverhead = 12

// Memo flag bits, carried in the top byte of the memo cell's length word.
const (
	MemoFlagInline        = 0x80000000
	MemoFlagSinglePage    = 0x40000000
	MemoFlagMultiPageMask = 0xff000000
)

// headerFixedKey is the constant RC4 key used to deobfuscate the header
// window [0x18, 0x18+T), independent of the per-file db_key.
var headerFixedKey = [4]byte{0xC7, 0xDA, 0x39, 0x6B}

// layout holds every version-relative offset that differs between Jet3
// and Jet4+, selected once as a value at Open time.
type layout struct {
	pageSize uint32

	rowCountOffset uint32

	tabNumRowsOffset  uint32
	tabNumColsOffset  uint32
	tabNumIdxsOffset  uint32
	tabNumRIdxsOffset uint32
	tabUsageMapOffset uint32
	tabFreeMapOffset  uint32
	tabFirstDpgOffset uint32
	tabColsStart      uint32
	tabRIdxEntrySize  uint32
	tabColEntrySize   uint32

	colNumOffset   uint32
	colOffsetVar   uint32
	rowColNumOff   uint32
	colOffsetFixed uint32
	colSizeOffset  uint32
	colScaleOffset uint32
	colPrecOffset  uint32
	colFlagsOffset uint32

	// nameLenSize is the width, in bytes, of a column-name length prefix:
	// 1 for Jet3, 2 for Jet4+.
	nameLenSize uint32
	// colCountSize is the width of a row's leading packed-column count.
	colCountSize uint32

	headerKeyWindow uint32
}

var jet3Layout = layout{
	pageSize:          2048,
	rowCountOffset:    0x08,
	tabNumRowsOffset:  12,
	tabNumColsOffset:  25,
	tabNumIdxsOffset:  27,
	tabNumRIdxsOffset: 31,
	tabUsageMapOffset: 35,
	tabFreeMapOffset:  39,
	tabFirstDpgOffset: 36,
	tabColsStart:      43,
	tabRIdxEntrySize:  8,
	tabColEntrySize:   18,
	colNumOffset:      1,
	colOffsetVar:      3,
	rowColNumOff:      5,
	colOffsetFixed:    14,
	colSizeOffset:     16,
	colScaleOffset:    9,
	colPrecOffset:     10,
	colFlagsOffset:    13,
	nameLenSize:       1,
	colCountSize:      1,
	headerKeyWindow:   126,
}

var jet4Layout = layout{
	pageSize:          4096,
	rowCountOffset:    0x0c,
	tabNumRowsOffset:  16,
	tabNumColsOffset:  45,
	tabNumIdxsOffset:  47,
	tabNumRIdxsOffset: 51,
	tabUsageMapOffset: 55,
	tabFreeMapOffset:  59,
	tabFirstDpgOffset: 56,
	tabColsStart:      63,
	tabRIdxEntrySize:  12,
	tabColEntrySize:   25,
	colNumOffset:      5,
	colOffsetVar:      7,
	rowColNumOff:      9,
	colOffsetFixed:    21,
	colSizeOffset:     23,
	colScaleOffset:    11,
	colPrecOffset:     12,
	colFlagsOffset:    15,
	nameLenSize:       2,
	colCountSize:      2,
	headerKeyWindow:   128,
}

func layoutForVersion(v byte) (layout, bool) {
	switch v {
	case VerJet3:
		return jet3Layout, true
	case VerJet4, VerACCDB2007, VerACCDB2010, VerACCDB2013, VerACCDB2016, VerACCDB2019:
		return jet4Layout, true
	default:
		return layout{}, false
	}
}
