// Copyright 2026 The mdb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	mdb "github.com/accesskit/mdb2csv"
)

var (
	verbose       bool
	noSkipDeleted bool
	outDir        string
)

func openDB(path string) (*mdb.File, error) {
	return mdb.Open(path, &mdb.Options{NoSkipDeleted: noSkipDeleted})
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer db.Close()

	names, err := db.ListTables()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func exportOne(path, table, outPath string) error {
	db, err := openDB(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	t, err := db.OpenTable(table)
	if err != nil {
		return fmt.Errorf("opening table %s in %s: %w", table, path, err)
	}

	var out *os.File
	if outPath == "-" || outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	return t.Export(mdb.NewCSVSink(out, mdb.DefaultExportOptions()))
}

func runExport(cmd *cobra.Command, args []string) error {
	path, table := args[0], args[1]
	outPath, _ := cmd.Flags().GetString("out")
	return exportOne(path, table, outPath)
}

// runBatch exports the same table from every .mdb/.accdb file in a
// directory concurrently, writing each result to outDir/<basename>.csv.
func runBatch(cmd *cobra.Command, args []string) error {
	dir, table := args[0], args[1]
	if outDir == "" {
		outDir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	return batchExport(entries, dir, table, outDir)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdb2csv",
		Short: "A Jet/ACE (.mdb/.accdb) database reader",
		Long:  "mdb2csv reads Microsoft Jet/ACE database files directly from their on-disk page format and exports table contents as delimited text.",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("mdb2csv version 0.1.0")
		},
	}

	listCmd := &cobra.Command{
		Use:   "list <database>",
		Short: "List the user tables in a database",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export <database> <table>",
		Short: "Export one table as delimited text",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().StringP("out", "o", "-", "output file, or - for stdout")

	batchCmd := &cobra.Command{
		Use:   "batch <directory> <table>",
		Short: "Export the same table from every database file in a directory, concurrently",
		Args:  cobra.ExactArgs(2),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory to write <basename>.csv files into")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noSkipDeleted, "no-skip-deleted", false, "include rows whose pointer carries the deleted bit")

	rootCmd.AddCommand(versionCmd, listCmd, exportCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isAccessFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".mdb" || ext == ".accdb"
}
