// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

// Column describes one column of a table, as parsed from its
// table-definition page.
type Column struct {
	Name        string
	ColType     byte
	ColNum      byte
	ColSize     uint16
	FixedOffset uint16
	VarColNum   uint16
	RowColNum   uint16
	IsFixed     bool
	IsLongAuto  bool
	IsUUIDAuto  bool
	ColScale    byte
	ColPrec     byte

	// props carries a column-level "Format" property (e.g. "Short Date"),
	// when available, used by value.go to pick the DATETIME rendering.
	props map[string]string
}

// IsShortDate reports whether this column's "Format" property is
// "Short Date", selecting the short date format string in value.go.
func (c *Column) IsShortDate() bool {
	return c.props != nil && c.props["Format"] == "Short Date"
}

// TypeName returns the human-readable name of the column's data type.
func (c *Column) TypeName() string { return ColTypeName(c.ColType) }
