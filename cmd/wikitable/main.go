// Command wikitable extracts normalized tables from HTML pages and
// writes them as fully quoted CSV (or JSON), optionally following a
// link column into secondary pages to pull extra values into each row.
//
// A one-off extraction is described entirely by flags:
//
//	wikitable -s https://en.wikipedia.org/wiki/... \
//	    --filter class=toccolours --header --link-column 1 \
//	    --pattern 'Transmitter.*' --offset 0,1 --cap 1 \
//	    --link-filter class=infobox -o stations.csv
//
// Repeated extractions live in a TOML job file:
//
//	wikitable --config jobs.toml
//
// Existing output files are skipped unless --force is given.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
