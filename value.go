// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"math/big"
)

// decodeValue converts one non-null, non-memo cell's raw bytes into a
// typed Go value appropriate to the column's declared type. Unrecognized
// or not-yet-supported types (OLE, REPID, COMPLEX) decode to the empty
// string, a best-effort to_string for data not interpreted further.
func decodeValue(c *Column, raw []byte, db *File) (interface{}, error) {
	switch c.ColType {
	case ColBool:
		return len(raw) > 0, nil

	case ColByte:
		if len(raw) < 1 {
			return nil, ErrOutOfBounds
		}
		return raw[0], nil

	case ColInt:
		v, err := leU16(raw, 0)
		if err != nil {
			return nil, err
		}
		return int16(v), nil

	case ColLongInt:
		v, err := leU32(raw, 0)
		if err != nil {
			return nil, err
		}
		return int32(v), nil

	case ColMoney:
		v, err := leU64(raw, 0)
		if err != nil {
			return nil, err
		}
		// Money is a 64-bit fixed-point value scaled by 10000.
		return float64(int64(v)) / 10000.0, nil

	case ColFloat:
		v, err := leF32(raw, 0)
		if err != nil {
			return nil, err
		}
		// Full precision is preserved here; csvSink.printCol renders only
		// the integer part.
		return v, nil

	case ColDouble:
		v, err := leF64(raw, 0)
		if err != nil {
			return nil, err
		}
		return v, nil

	case ColDateTime:
		v, err := leF64(raw, 0)
		if err != nil {
			return nil, err
		}
		return serialDateToTime(v), nil

	case ColBinary:
		// Hand back the raw bytes; export.go renders each one as its
		// decimal value followed by a literal "X".
		return append([]byte(nil), raw...), nil

	case ColText:
		return db.unicode2ASCII(raw)

	case ColNumeric:
		return decodeNumeric(raw, c.ColScale), nil

	case ColOLE, ColRepID, ColComplex:
		return "", nil

	default:
		if db != nil {
			db.logger.Warnf("column %s: unsupported type 0x%02x, rendering as empty string", c.Name, c.ColType)
		}
		return "", nil
	}
}

// decodeNumeric decodes a NUMERIC column: a sign byte followed by 16
// bytes of big-endian magnitude, scaled by 10^-scale. Accumulates the
// magnitude one byte at a time (m = m*16 + byte) using math/big for
// exact arbitrary-precision arithmetic.
func decodeNumeric(raw []byte, scale byte) *big.Rat {
	if len(raw) < 17 {
		return new(big.Rat)
	}
	negative := raw[0] != 0
	mag := new(big.Int)
	sixteen := big.NewInt(16)
	for _, b := range raw[1:17] {
		mag.Mul(mag, sixteen)
		mag.Add(mag, big.NewInt(int64(b)))
	}
	if negative {
		mag.Neg(mag)
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	return new(big.Rat).SetFrac(mag, denom)
}
