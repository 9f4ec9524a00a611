// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ExportOptions controls Table.Export's field/record delimiters and
// header behavior: semicolon fields, newline records, header row
// emitted, values never quoted, by default.
type ExportOptions struct {
	FieldSep   string
	RecordSep  string
	WithHeader bool
	DateFormat string
}

// DefaultExportOptions returns the default delimited-text export settings.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		FieldSep:   ";",
		RecordSep:  "\n",
		WithHeader: true,
		DateFormat: "2006-01-02",
	}
}

// RowSink receives one exported table's rows. csvSink is the built-in
// implementation; callers may supply their own (e.g. to stream into a
// database) to whatever sink their program needs.
type RowSink interface {
	Header(cols []*Column) error
	Row(cols []*Column, values []interface{}) error
}

// csvSink writes delimited text to an io.Writer: fields joined by
// FieldSep, records by RecordSep, no quoting, and BINARY columns
// rendered as each byte's decimal value followed by a literal "X".
type csvSink struct {
	w    io.Writer
	opts ExportOptions
}

// NewCSVSink returns a RowSink that writes delimited text to w.
func NewCSVSink(w io.Writer, opts ExportOptions) RowSink {
	return &csvSink{w: w, opts: opts}
}

func (s *csvSink) Header(cols []*Column) error {
	if !s.opts.WithHeader {
		return nil
	}
	for i, c := range cols {
		if i > 0 {
			if _, err := io.WriteString(s.w, s.opts.FieldSep); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(s.w, c.Name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.w, s.opts.RecordSep)
	return err
}

func (s *csvSink) Row(cols []*Column, values []interface{}) error {
	for i, v := range values {
		if i > 0 {
			if _, err := io.WriteString(s.w, s.opts.FieldSep); err != nil {
				return err
			}
		}
		text := s.printCol(cols[i], v)
		if _, err := io.WriteString(s.w, text); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.w, s.opts.RecordSep)
	return err
}

// printCol formats one value for delimited-text output: nil renders as
// the empty string, BINARY as each byte's decimal value followed by a
// literal "X" (e.g. two bytes 65, 66 render as "65X66X"), DATETIME with
// short-date formatting when the column's Format property calls for it,
// FLOAT/DOUBLE as the integer part of fmt.Sprint's output (cut at the
// decimal point), and everything else via fmt.Sprint.
func (s *csvSink) printCol(c *Column, v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case []byte:
		var sb strings.Builder
		for _, b := range val {
			sb.WriteString(strconv.Itoa(int(b)))
			sb.WriteByte('X')
		}
		return sb.String()
	case time.Time:
		if c.IsShortDate() {
			return val.Format(s.opts.DateFormat)
		}
		return val.Format("2006-01-02 15:04:05")
	case bool:
		if val {
			return "1"
		}
		return "0"
	case float32, float64:
		text := fmt.Sprint(val)
		if c.ColType == ColFloat || c.ColType == ColDouble {
			if i := strings.IndexByte(text, '.'); i >= 0 {
				text = text[:i]
			}
		}
		return text
	default:
		return fmt.Sprint(val)
	}
}

// Export scans every remaining row (from the current cursor position)
// into sink, writing a header first when the sink wants one.
func (t *Table) Export(sink RowSink) error {
	if err := sink.Header(t.Columns); err != nil {
		return err
	}
	for {
		row, err := t.FetchRow()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}
		if err := sink.Row(t.Columns, row); err != nil {
			return err
		}
	}
}
