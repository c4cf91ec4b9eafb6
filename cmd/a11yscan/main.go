// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan drives a headless browser across a configured list of pages,
// runs the axe-core accessibility engine on each, and writes one xlsx
// result file per page with violations. A separate merge command
// consolidates all result files into a master list and a de-duplicated
// work list.
//
// Usage:
//
//	a11yscan scan [site...]
//	a11yscan merge
//
// See --help for all available options.
package main

// main is the entry point for a11yscan.
func main() {
	Execute()
}
