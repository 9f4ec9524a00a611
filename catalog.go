// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdb

// msysObjectsName is the fixed name of the root catalog table.
const msysObjectsName = "MSysObjects"

// CatalogEntry is one row of MSysObjects: the name, type, and root page of
// a table, query, or other catalog object.
type CatalogEntry struct {
	Id         uint32
	ObjectName string
	ObjType    int
	Flags      uint32
	TablePage  uint32
}

// IsUserTable reports whether this entry names an ordinary user table:
// object type ObjTypeTable and neither hidden nor a system object per
// ObjFlagsHiddenMask.
func (e CatalogEntry) IsUserTable() bool {
	if e.ObjType != ObjTypeTable {
		return false
	}
	if e.Flags&ObjFlagsHiddenMask != 0 {
		return false
	}
	return true
}

// Catalog is the parsed contents of MSysObjects: every object the
// database declares, in catalog order. Find looks entries up by name.
type Catalog struct {
	Entries []CatalogEntry
}

// Tables returns the subset of catalog entries that are ordinary user
// tables, per IsUserTable.
func (c *Catalog) Tables() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c.Entries {
		if e.IsUserTable() {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the catalog entry with the given name, or false if none
// exists. objType may be ObjTypeAny to match any object type.
func (c *Catalog) Find(name string, objType int) (CatalogEntry, bool) {
	for _, e := range c.Entries {
		if e.ObjectName == name && (objType == ObjTypeAny || e.ObjType == objType) {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// bootstrapCatalog opens the fixed MSysObjects root page, parses it as an
// ordinary table definition, and scans every one of its rows into catalog
// entries.
func bootstrapCatalog(db *File) (*Catalog, error) {
	msys := &Table{db: db, Name: msysObjectsName, RootPage: CatalogRootPage}
	if err := msys.readTableDef(); err != nil {
		return nil, err
	}
	if err := msys.readColumns(); err != nil {
		return nil, err
	}

	idCol := msys.BindColumnByName("Id")
	nameCol := msys.BindColumnByName("Name")
	typeCol := msys.BindColumnByName("Type")
	flagsCol := msys.BindColumnByName("Flags")
	lvCol := msys.BindColumnByName("LvProp")
	_ = lvCol // LvProp (the catalog entry's own property-block pgRow) is not exposed further by this module.

	if err := msys.Rewind(); err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for {
		row, err := msys.FetchRow()
		if err != nil {
			return nil, err
		}
		if row == nil {
			break
		}

		entry := CatalogEntry{}
		if idCol > 0 {
			if v, ok := row[idCol-1].(int32); ok {
				entry.Id = uint32(v)
				entry.TablePage = uint32(v) & 0x00ffffff
			}
		}
		if nameCol > 0 {
			if v, ok := row[nameCol-1].(string); ok {
				entry.ObjectName = v
			}
		}
		if typeCol > 0 {
			switch v := row[typeCol-1].(type) {
			case int16:
				entry.ObjType = int(v) & 0x7f
			case int32:
				entry.ObjType = int(v) & 0x7f
			}
		}
		if flagsCol > 0 {
			if v, ok := row[flagsCol-1].(int32); ok {
				entry.Flags = uint32(v)
			}
		}

		cat.Entries = append(cat.Entries, entry)
	}

	return cat, nil
}
