// Package model defines the data structures shared across the scan and
// merge pipelines: violation records, the axe-core result contract, and
// impact severity levels.
package model
