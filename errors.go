// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "errors"

// Fatal errors. These abort opening the database, opening a table, or a
// single page-store operation; they are always returned to the caller.
var (
	// ErrTooSmall is returned when a file is too short to hold a page 0.
	ErrTooSmall = errors.New("mdb: file too small to contain a database header")

	// ErrBadHeader is returned when the first byte of page 0 is not zero.
	ErrBadHeader = errors.New("mdb: invalid database header")

	// ErrUnknownVersion is returned when the Jet version byte at header
	// offset 0x14 does not match any known Jet3/Jet4/ACCDB version.
	ErrUnknownVersion = errors.New("mdb: unknown Jet/ACE version")

	// ErrShortRead is returned when a page read comes back shorter than
	// the database's page size.
	ErrShortRead = errors.New("mdb: short page read")

	// ErrOutOfBounds is returned when a requested offset/length would read
	// outside the page or file bounds.
	ErrOutOfBounds = errors.New("mdb: read outside page bounds")

	// ErrBadTableDefPage is returned when a table-definition page does not
	// begin with the expected 0x02 marker byte.
	ErrBadTableDefPage = errors.New("mdb: not a table definition page")

	// ErrUsageMapTooShort is returned when a dereferenced usage map has no
	// type byte.
	ErrUsageMapTooShort = errors.New("mdb: usage map shorter than one byte")

	// ErrUnknownUsageMapType is returned by the usage map walker when the
	// leading type byte is neither 0 (inline) nor 1 (indirect).
	ErrUnknownUsageMapType = errors.New("mdb: unrecognized usage map type")

	// ErrTableNotFound is returned by OpenTable when no catalog entry
	// matches the requested name.
	ErrTableNotFound = errors.New("mdb: table not found")

	// ErrColumnNotBound is returned when code attempts to read a bound
	// value for a column that was never successfully bound.
	ErrColumnNotBound = errors.New("mdb: column not bound")

	// ErrRowTooWide is returned by findRow when a row index exceeds the
	// configured maximum (Options.MaxRowColumns).
	ErrRowTooWide = errors.New("mdb: row column count exceeds limit")
)
