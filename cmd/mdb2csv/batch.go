// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// batchExport exports table from every Access file in entries under dir
// to outDir, one goroutine per file coordinated by an errgroup so the
// first error is returned to the caller once every goroutine has
// finished.
func batchExport(entries []os.DirEntry, dir, table, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var g errgroup.Group
	for _, e := range entries {
		e := e
		if e.IsDir() || !isAccessFile(e.Name()) {
			continue
		}
		g.Go(func() error {
			base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			out := filepath.Join(outDir, base+".csv")
			return exportOne(filepath.Join(dir, e.Name()), table, out)
		})
	}
	return g.Wait()
}
