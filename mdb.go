// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mdb reads Microsoft Jet/ACE (.mdb/.accdb) database files
// directly from their on-disk page format, without any dependency on the
// Windows JET/ACE engine or ODBC drivers.
package mdb

import "fmt"

// catalog lazily bootstraps and caches this database's MSysObjects
// contents.
func (db *File) catalog() (*Catalog, error) {
	if db.cachedCatalog == nil {
		cat, err := bootstrapCatalog(db)
		if err != nil {
			return nil, err
		}
		db.cachedCatalog = cat
	}
	return db.cachedCatalog, nil
}

// ListTables returns the names of every ordinary user table in the
// database, in catalog order.
func (db *File) ListTables() ([]string, error) {
	cat, err := db.catalog()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cat.Entries))
	for _, e := range cat.Tables() {
		names = append(names, e.ObjectName)
	}
	return names, nil
}

// OpenTable opens a user or system table by name and returns a cursor
// positioned before its first row.
func (db *File) OpenTable(name string) (*Table, error) {
	cat, err := db.catalog()
	if err != nil {
		return nil, err
	}
	entry, ok := cat.Find(name, ObjTypeTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	t, err := openTable(db, entry)
	if err != nil {
		return nil, err
	}
	if err := t.Rewind(); err != nil {
		return nil, err
	}
	return t, nil
}
