// Package database persists scan history in SQLite. Each completed page
// visit becomes one row, so violation counts can be inspected across
// runs with the history subcommand.
package database
