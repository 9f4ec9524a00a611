// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import "fmt"

// resolveMemo decodes a MEMO/LongBinary cell. The cell's first 4 bytes
// are a length word whose top byte carries flag bits (MemoFlagInline,
// MemoFlagSinglePage) and whose low 24 bits give the text length; the
// next 4 bytes (when not inline) are a page-row handle naming either the
// single page holding the text or the head of a multi-page chain.
func (db *File) resolveMemo(raw []byte, isJet3 bool, codePage uint16) (string, error) {
	if len(raw) < MemoOverhead {
		if len(raw) >= 4 {
			return db.memoInlineText(raw, isJet3, codePage)
		}
		return "", nil
	}

	lengthWord, err := leU32(raw, 0)
	if err != nil {
		return "", err
	}
	length := lengthWord & 0x00ffffff
	flags := lengthWord & MemoFlagMultiPageMask

	switch {
	case flags&MemoFlagInline != 0:
		body := raw[MemoOverhead:]
		n := int(length)
		if n > len(body) {
			n = len(body)
		}
		return unicode2ASCII(body[:n], isJet3, codePage)

	case flags&MemoFlagSinglePage != 0:
		pgRow, err := leU32(raw, 4)
		if err != nil {
			return "", err
		}
		buf, off, avail, err := db.findPgRow(pgRow)
		if err != nil {
			return "", fmt.Errorf("memo single page: %w", err)
		}
		n := int(length)
		if n > avail {
			db.logger.Warnf("memo single page: declared length %d exceeds available %d, truncating", n, avail)
			n = avail
		}
		return unicode2ASCII(buf[off:off+uint32(n)], isJet3, codePage)

	default:
		return db.resolveMemoChain(raw, length, isJet3, codePage)
	}
}

// memoInlineText decodes a memo value stored entirely within the row
// cell itself (the common case for short memo/hyperlink text).
func (db *File) memoInlineText(raw []byte, isJet3 bool, codePage uint16) (string, error) {
	if len(raw) < 4 {
		return unicode2ASCII(raw, isJet3, codePage)
	}
	length, err := leU32(raw, 0)
	if err != nil {
		return "", err
	}
	n := int(length & 0x00ffffff)
	body := raw[4:]
	if n > len(body) {
		n = len(body)
	}
	return unicode2ASCII(body[:n], isJet3, codePage)
}

// resolveMemoChain walks a multi-page memo: the cell's page-row handle
// points at the head of a chain of rows, each dereferenced through
// findPgRow and beginning with a 4-byte "next page-row" handle (0
// terminates the chain) followed by memo text bytes. Truncates and
// warns, rather than failing the whole row, if the chain runs short of
// the declared length.
func (db *File) resolveMemoChain(raw []byte, length uint32, isJet3 bool, codePage uint16) (string, error) {
	pgRow, err := leU32(raw, 4)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, length)
	remaining := int(length)
	seen := map[uint32]bool{}
	for pgRow != 0 && remaining > 0 {
		if seen[pgRow] {
			db.logger.Warnf("memo chain: page-row %#x revisited, stopping", pgRow)
			break
		}
		seen[pgRow] = true

		buf, off, rowLen, err := db.findPgRow(pgRow)
		if err != nil {
			return "", err
		}
		if rowLen < 4 {
			break
		}
		next, err := leU32(buf, off)
		if err != nil {
			return "", err
		}
		body := buf[off+4 : off+uint32(rowLen)]
		take := len(body)
		if take > remaining {
			take = remaining
		}
		out = append(out, body[:take]...)
		remaining -= take
		pgRow = next
	}
	if remaining > 0 {
		db.logger.Warnf("memo chain ended with %d bytes undelivered", remaining)
	}

	return unicode2ASCII(out, isJet3, codePage)
}
