// Package pipeline orchestrates page visits. A Pipeline runs the steps
// of a single visit (navigate and scan, flatten, write) in order; a
// BatchProcessor fans visits out across a bounded number of goroutines,
// each with its own locally accumulated PageResult.
package pipeline
