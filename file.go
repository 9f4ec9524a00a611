// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// File is an open handle on a Jet/ACE database. It owns the page store:
// the memory-mapped (or in-memory) raw bytes, the detected version
// layout, the obfuscation key, and the two page buffers used while
// walking usage maps and dereferencing page-row handles.
//
// A File is not safe for concurrent use. Independent File handles opened
// on the same or different paths are safe to use concurrently, because
// every read is a positional read against a read-only mapping.
type File struct {
	data mmap.MMap // nil when opened via OpenBytes
	raw  []byte     // the bytes actually read from (mapping or plain slice)
	f    *os.File   // nil when opened via OpenBytes

	layout    layout
	jetVer    byte
	isJet3    bool
	langID    uint16
	codePage  uint16
	dbKey     uint32

	current []byte // the "current" page buffer
	alt     []byte // the "alt" page buffer, used by findPgRow/usage map walks

	opts   *Options
	logger Logger

	cachedCatalog *Catalog
}

// Open memory-maps the file at path and parses its header.
func Open(path string, opts *Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	db := &File{data: data, raw: data, f: f, opts: opts, logger: opts.logger()}
	if err := db.init(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenBytes parses a database already resident in memory, without
// touching the filesystem. Useful for tests and for callers that already
// hold the file contents (e.g. fetched over the network).
func OpenBytes(data []byte, opts *Options) (*File, error) {
	db := &File{raw: data, opts: opts, logger: opts.logger()}
	if err := db.init(); err != nil {
		return nil, err
	}
	return db, nil
}

// Close releases the memory mapping and closes the underlying file, if
// any. It is a no-op for handles opened with OpenBytes.
func (db *File) Close() error {
	if db.data != nil {
		_ = db.data.Unmap()
	}
	if db.f != nil {
		return db.f.Close()
	}
	return nil
}

// PageSize returns the database's page size (2048 for Jet3, 4096 for
// Jet4 and ACCDB).
func (db *File) PageSize() uint32 { return db.layout.pageSize }

// JetVersion returns the raw version byte read from the header.
func (db *File) JetVersion() byte { return db.jetVer }

func (db *File) init() error {
	if len(db.raw) < 0x18 {
		return ErrTooSmall
	}

	// Read page 0 raw: the header occupies the whole first page, but we
	// only need pageSize bytes once the version (and therefore page
	// size) is known, so read the header window first.
	if db.raw[0] != 0 {
		return ErrBadHeader
	}

	jetVer, err := leByte(db.raw, 0x14)
	if err != nil {
		return err
	}
	lay, ok := layoutForVersion(jetVer)
	if !ok {
		return fmt.Errorf("%w: 0x%02x", ErrUnknownVersion, jetVer)
	}
	db.layout = lay
	db.jetVer = jetVer
	db.isJet3 = jetVer == VerJet3

	if uint64(lay.pageSize) > uint64(len(db.raw)) {
		return ErrTooSmall
	}

	header := make([]byte, lay.pageSize)
	copy(header, db.raw[:lay.pageSize])

	if err := headerDeobfuscate(header, lay.headerKeyWindow); err != nil {
		return err
	}

	if db.isJet3 {
		db.langID, _ = leU16(header, 0x3a)
	} else {
		db.langID, _ = leU16(header, 0x6e)
	}
	db.codePage, err = leU16(header, 0x3c)
	if err != nil {
		return err
	}
	db.dbKey, err = leU32(header, 0x3e)
	if err != nil {
		return err
	}

	db.current = make([]byte, lay.pageSize)
	db.alt = make([]byte, lay.pageSize)
	copy(db.current, header)
	return nil
}

// readPageInto copies page pg (obfuscating-aware) into dst, which must be
// lay.pageSize bytes long. Returns the number of bytes copied, which is
// less than pageSize only at end of file.
func (db *File) readPageInto(pg uint32, dst []byte) (int, error) {
	offset := uint64(pg) * uint64(db.layout.pageSize)
	if offset >= uint64(len(db.raw)) {
		return 0, nil
	}
	end := offset + uint64(db.layout.pageSize)
	if end > uint64(len(db.raw)) {
		end = uint64(len(db.raw))
	}
	n := copy(dst, db.raw[offset:end])

	if pg != 0 && db.dbKey != 0 {
		key := pageKey(db.dbKey, pg)
		plain, err := rc4Crypt(key, dst[:n])
		if err != nil {
			return 0, err
		}
		copy(dst, plain)
	}
	return n, nil
}

// readPage reads page pg into the current buffer.
func (db *File) readPage(pg uint32) (int, error) {
	return db.readPageInto(pg, db.current)
}

// readAltPage reads page pg into the alt buffer.
func (db *File) readAltPage(pg uint32) (int, error) {
	return db.readPageInto(pg, db.alt)
}

// rowExtent is the result of locating a row's bytes within a page
// buffer: start (with the lookup/deleted flag bits still present in the
// high bits) and length.
type rowExtent struct {
	startWithFlags uint16
	length         int
}

// findRow locates row within buf (a page buffer shaped like current or
// alt): the row pointer directory starts at rowCountOffset, row pointers
// are 16-bit, and a row's extent runs from its own pointer's offset to
// the previous pointer's offset (or page end for row 0). A row index
// above maxRow is rejected with ErrRowTooWide.
func findRow(buf []byte, lay layout, row int, maxRow int) (rowExtent, error) {
	if row > maxRow {
		return rowExtent{}, ErrRowTooWide
	}
	rco := lay.rowCountOffset

	start, err := leU16(buf, rco+2+uint32(row)*2)
	if err != nil {
		return rowExtent{}, err
	}

	var nextStart uint32
	if row == 0 {
		nextStart = lay.pageSize
	} else {
		prevPtr, err := leU16(buf, rco+uint32(row)*2)
		if err != nil {
			return rowExtent{}, err
		}
		nextStart = uint32(prevPtr) & OffsetMask
	}

	startOffset := uint32(start) & OffsetMask
	if startOffset >= lay.pageSize || startOffset > nextStart || nextStart > lay.pageSize {
		return rowExtent{}, ErrOutOfBounds
	}

	return rowExtent{startWithFlags: start, length: int(nextStart - startOffset)}, nil
}

// findRow finds a row in the current page buffer.
func (db *File) findRow(row int) (rowExtent, error) {
	return findRow(db.current, db.layout, row, db.opts.maxRowColumns())
}

// pgRowHandle splits a 32-bit page-row handle into its page number (top
// 24 bits) and row index (low 8 bits).
func pgRowHandle(pgRow uint32) (page uint32, row int) {
	return pgRow >> 8, int(pgRow & 0xff)
}

/// findPgRow dereferences a page-row handle: it reads the target page into
// the alt buffer and locates the row within it. It returns a borrowed
// view over db.alt valid until the next call that mutates the alt
// buffer (readAltPage, or another findPgRow), avoiding a swap into the
// current page buffer and back.
func (db *File) findPgRow(pgRow uint32) (buf []byte, offset uint32, length int, err error) {
	page, row := pgRowHandle(pgRow)
	n, err := db.readAltPage(page)
	if err != nil {
		return nil, 0, 0, err
	}
	if n < int(db.layout.pageSize) {
		return nil, 0, 0, ErrShortRead
	}
	ext, err := findRow(db.alt, db.layout, row, db.opts.maxRowColumns())
	if err != nil {
		return nil, 0, 0, err
	}
	return db.alt, uint32(ext.startWithFlags) & OffsetMask, ext.length, nil
}

// readPageRun accumulates n bytes starting at cursor from a logical
// stream that spans pages via an 8-byte header (type+padding then a
// 4-byte "next page" pointer at offset 4); when the cursor runs off the
// end of a page it follows that pointer and resumes at offset 8. This is
// used to stream the table-definition's column attribute and name
// blocks, which routinely span a page boundary.
func (db *File) readPageRun(cursor uint32, n uint32) ([]byte, uint32, error) {
	out := make([]byte, 0, n)
	pageSize := db.layout.pageSize

	for cursor >= pageSize {
		nextPg, err := leU32(db.current, 4)
		if err != nil {
			return nil, 0, err
		}
		if _, err := db.readPage(nextPg); err != nil {
			return nil, 0, err
		}
		cursor -= pageSize - 8
	}

	for cursor+n >= pageSize {
		pieceLen := pageSize - cursor
		if uint64(cursor)+uint64(pieceLen) > uint64(len(db.current)) {
			return nil, 0, ErrOutOfBounds
		}
		out = append(out, db.current[cursor:cursor+pieceLen]...)
		n -= pieceLen
		nextPg, err := leU32(db.current, 4)
		if err != nil {
			return nil, 0, err
		}
		if _, err := db.readPage(nextPg); err != nil {
			return nil, 0, err
		}
		cursor = 8
	}

	if n > 0 {
		if uint64(cursor)+uint64(n) > uint64(len(db.current)) {
			return nil, 0, ErrOutOfBounds
		}
		out = append(out, db.current[cursor:cursor+n]...)
		cursor += n
	}

	return out, cursor, nil
}

// readPageRunU8 reads a single byte via readPageRun.
func (db *File) readPageRunU8(cursor uint32) (byte, uint32, error) {
	b, cur, err := db.readPageRun(cursor, 1)
	if err != nil {
		return 0, 0, err
	}
	return b[0], cur, nil
}

// readPageRunU16 reads a little-endian uint16 via readPageRun.
func (db *File) readPageRunU16(cursor uint32) (uint16, uint32, error) {
	b, cur, err := db.readPageRun(cursor, 2)
	if err != nil {
		return 0, 0, err
	}
	v, err := leU16(b, 0)
	return v, cur, err
}

// readPageRunU32 reads a little-endian uint32 via readPageRun.
func (db *File) readPageRunU32(cursor uint32) (uint32, uint32, error) {
	b, cur, err := db.readPageRun(cursor, 4)
	if err != nil {
		return 0, 0, err
	}
	v, err := leU32(b, 0)
	return v, cur, err
}

// unicode2ASCII decodes raw column bytes per this database's version and
// code page.
func (db *File) unicode2ASCII(src []byte) (string, error) {
	return unicode2ASCII(src, db.isJet3, db.codePage)
}
