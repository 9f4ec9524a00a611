// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"crypto/rc4"
	"encoding/binary"
	"math"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// leU16 reads a little-endian uint16 at offset, bounds-checked against
// len(buf).
func leU16(buf []byte, offset uint32) (uint16, error) {
	if uint64(offset)+2 > uint64(len(buf)) {
		return 0, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint16(buf[offset:]), nil
}

// leU32 reads a little-endian uint32 at offset, bounds-checked.
func leU32(buf []byte, offset uint32) (uint32, error) {
	if uint64(offset)+4 > uint64(len(buf)) {
		return 0, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint32(buf[offset:]), nil
}

// leU64 reads a little-endian uint64 at offset, bounds-checked.
func leU64(buf []byte, offset uint32) (uint64, error) {
	if uint64(offset)+8 > uint64(len(buf)) {
		return 0, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint64(buf[offset:]), nil
}

// beU32 reads a big-endian uint32, bounds-checked.
func beU32(buf []byte, offset uint32) (uint32, error) {
	if uint64(offset)+4 > uint64(len(buf)) {
		return 0, ErrOutOfBounds
	}
	return binary.BigEndian.Uint32(buf[offset:]), nil
}

// leByte reads a single byte at offset, bounds-checked.
func leByte(buf []byte, offset uint32) (byte, error) {
	if uint64(offset)+1 > uint64(len(buf)) {
		return 0, ErrOutOfBounds
	}
	return buf[offset], nil
}

// leF32 reads a little-endian IEEE-754 single-precision float.
func leF32(buf []byte, offset uint32) (float32, error) {
	u, err := leU32(buf, offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// leF64 reads a little-endian IEEE-754 double-precision float.
func leF64(buf []byte, offset uint32) (float64, error) {
	u, err := leU64(buf, offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// rc4Crypt runs RC4 (symmetric: the same call encrypts or decrypts) over
// buf with the given key, returning a new slice. RC4 is a named stream
// cipher and stdlib crypto/rc4 is its canonical Go implementation.
func rc4Crypt(key, buf []byte) ([]byte, error) {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(buf))
	c.XORKeyStream(out, buf)
	return out, nil
}

// decompressUnicode expands the Jet4 compressed-text encoding: a stream
// alternates between "compressed" mode (each byte is a UTF-16 code unit
// whose high byte is implicitly zero) and
// "expanded" mode (literal UTF-16LE byte pairs), toggled by a zero byte.
// The caller is expected to have already stripped the leading 0xFF 0xFE
// marker. Output is UTF-16LE bytes.
func decompressUnicode(src []byte) []byte {
	dst := make([]byte, 0, len(src)*2)
	compress := true
	i := 0
	for i < len(src) {
		if src[i] == 0 {
			compress = !compress
			i++
			continue
		}
		if compress {
			dst = append(dst, src[i], 0)
			i++
			continue
		}
		if i+1 < len(src) {
			dst = append(dst, src[i], src[i+1])
			i += 2
			continue
		}
		break
	}
	return dst
}

var utf16LEDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// decodeUTF16LE decodes raw UTF-16LE bytes to a Go string.
func decodeUTF16LE(b []byte) (string, error) {
	out, err := utf16LEDecoder.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeCodePage decodes raw bytes using the database's declared Windows
// code page. Jet3 stores TEXT data in the system code page rather than
// UTF-16; decoding as UTF-8 is only correct when the code page is 65001
// or the data is pure ASCII. This honors the header's code_page field via
// golang.org/x/text/encoding/charmap where a mapping is known, falling
// back to UTF-8 (correct for 65001 and for plain ASCII) otherwise.
func decodeCodePage(b []byte, codePage uint16) (string, error) {
	enc := charmapForCodePage(codePage)
	if enc == nil {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), nil
	}
	return string(out), nil
}

// charmapForCodePage maps a handful of common Windows/OEM code pages to
// golang.org/x/text charmap encodings. Unrecognized or UTF-8 (65001)
// code pages return nil, meaning "treat as UTF-8".
func charmapForCodePage(codePage uint16) *charmap.Charmap {
	switch codePage {
	case 1252:
		return charmap.Windows1252
	case 1250:
		return charmap.Windows1250
	case 1251:
		return charmap.Windows1251
	case 1253:
		return charmap.Windows1253
	case 1254:
		return charmap.Windows1254
	case 1255:
		return charmap.Windows1255
	case 1256:
		return charmap.Windows1256
	case 850:
		return charmap.CodePage850
	case 437:
		return charmap.CodePage437
	default:
		return nil
	}
}

// unicode2ASCII decodes a column's raw text bytes: Jet3 text is
// code-page text; Jet4+ text is UTF-16LE, optionally preceded by an
// 0xFF 0xFE marker indicating the compressed encoding.
func unicode2ASCII(src []byte, isJet3 bool, codePage uint16) (string, error) {
	if isJet3 {
		return decodeCodePage(src, codePage)
	}
	if len(src) >= 2 && src[0] == 0xff && src[1] == 0xfe {
		expanded := decompressUnicode(src[2:])
		return decodeUTF16LE(expanded)
	}
	return decodeUTF16LE(src)
}

// dateEpochDays is the number of days from 1/1/1 to 12/31/1899.
const dateEpochDays = 693593

var noLeapCal = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
var leapCal = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}

// serialDateToTime converts a Jet DATETIME serial value (days since
// 1899-12-30, fractional part is time of day) to a time.Time, using a
// 400/100/4/1-year Julian-calendar step. Year 1900 is looked up in the
// leap-year month table (the Lotus-compatible anomaly): day 60 is
// 1900-02-28 and day 61 lands on the nonexistent 1900-02-29, which
// time.Date normalizes to 1900-03-01.
func serialDateToTime(d float64) time.Time {
	if d < 0.0 || d > 1e6 {
		return time.Time{}
	}

	day := int64(d)
	frac := d - float64(day)
	secOfDay := frac*86400.0 + 0.5
	hour := int(secOfDay / 3600)
	minute := int(secOfDay/60) % 60
	second := int(secOfDay) % 60

	day += dateEpochDays

	yr := int64(1)

	q := day / 146097
	yr += 400 * q
	day -= q * 146097

	q = day / 36524
	if q > 3 {
		q = 3
	}
	yr += 100 * q
	day -= q * 36524

	q = day / 1461
	yr += 4 * q
	day -= q * 1461

	q = day / 365
	if q > 3 {
		q = 3
	}
	yr += q
	day -= q * 365

	// Year 1900 is hardcoded leap to reproduce the Lotus 1-2-3 bug that
	// Jet/ACE's DATETIME serial format stays bit-compatible with: day 61
	// falls on the nonexistent 1900-02-29.
	leap := yr == 1900 || (yr%4 == 0 && (yr%100 != 0 || yr%400 == 0))
	cal := &noLeapCal
	if leap {
		cal = &leapCal
	}

	month := 0
	for month = 0; month < 12; month++ {
		if int(day) < cal[month+1] {
			break
		}
	}
	mday := int(day) - cal[month] + 1

	return time.Date(int(yr), time.Month(month+1), mday, hour, minute, second, 0, time.UTC)
}

// headerDeobfuscate decrypts the fixed-key header window [0x18, 0x18+T)
// with the constant key C7 DA 39 6B, independent of the per-file db_key.
func headerDeobfuscate(buf []byte, window uint32) error {
	end := 0x18 + window
	if uint64(end) > uint64(len(buf)) {
		return ErrOutOfBounds
	}
	plain, err := rc4Crypt(headerFixedKey[:], buf[0x18:end])
	if err != nil {
		return err
	}
	copy(buf[0x18:end], plain)
	return nil
}

// pageKey derives the per-page RC4 key db_key XOR page, encoded
// little-endian over 4 bytes.
func pageKey(dbKey, page uint32) []byte {
	k := dbKey ^ page
	return []byte{byte(k), byte(k >> 8), byte(k >> 16), byte(k >> 24)}
}
