// Package merge implements the consolidation pipeline: discover result
// files in a directory, concatenate their records, write the master
// list, collapse duplicate violations, and write the work list.
package merge
