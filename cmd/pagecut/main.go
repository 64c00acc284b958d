// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// pagecut trims scanned roster PDFs before extraction: remove cover and
// index pages, keep only the roster section, or split a volume into
// single-page files.
package main

import (
	"flag"
	"fmt"
	"os"

	"roster-scan/internal/pagecut"
	"roster-scan/internal/version"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: pagecut -mode remove|keep|split [-pages SPEC] input.pdf output

Modes:
  remove  delete the pages in SPEC, write the rest to output
  keep    keep only the pages in SPEC, write them to output
  split   write every page as a standalone PDF into the output directory

SPEC is a 1-based comma-separated list of pages and ranges, e.g. 1,3,5-7.
`)
	flag.PrintDefaults()
}

func main() {
	mode := flag.String("mode", "remove", "Page operation: remove, keep, or split")
	pages := flag.String("pages", "", "Page spec, e.g. 1,3,5-7 (required for remove and keep)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	inFile, out := args[0], args[1]

	cutter := pagecut.NewCutter()

	var err error
	switch *mode {
	case "remove":
		if *pages == "" {
			fmt.Fprintln(os.Stderr, "Error: -pages is required for remove")
			os.Exit(2)
		}
		err = cutter.Remove(inFile, out, *pages)
	case "keep":
		if *pages == "" {
			fmt.Fprintln(os.Stderr, "Error: -pages is required for keep")
			os.Exit(2)
		}
		err = cutter.Keep(inFile, out, *pages)
	case "split":
		err = cutter.Split(inFile, out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *mode)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
