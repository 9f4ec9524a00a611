// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

// DefaultMaxRowColumns bounds the row index findRow accepts within one
// page, rejecting any index above 1000 as a sanity check against a
// corrupt page.
const DefaultMaxRowColumns = 1000

// Options controls how a database is opened and how tolerant the reader
// is of malformed rows.
type Options struct {

	// Logger receives warnings for skippable errors (bad rows, unknown
	// column types, memo inconsistencies). Defaults to a logrus-backed
	// logger writing to stderr when nil.
	Logger Logger

	// NoSkipDeleted, when true, yields rows whose row pointer has the
	// deleted bit (0x4000) set instead of silently skipping them.
	NoSkipDeleted bool

	// MaxRowColumns caps the row index findRow accepts within one page.
	// Zero selects DefaultMaxRowColumns.
	MaxRowColumns int

	// Strict turns row/parse errors that would otherwise be skipped with
	// a warning into hard errors returned from FetchRow.
	Strict bool
}

func (o *Options) maxRowColumns() int {
	if o == nil || o.MaxRowColumns <= 0 {
		return DefaultMaxRowColumns
	}
	return o.MaxRowColumns
}

func (o *Options) logger() Logger {
	if o == nil || o.Logger == nil {
		return defaultLogger()
	}
	return o.Logger
}

func (o *Options) noSkipDeleted() bool {
	return o != nil && o.NoSkipDeleted
}

func (o *Options) strict() bool {
	return o != nil && o.Strict
}
