// Package report serializes violation records to and from result files.
// Result files are xlsx spreadsheets with one sheet, a header row naming
// the record fields, and one row per flattened violation. The package
// also provides a Markdown summary writer for merged work lists.
package report
