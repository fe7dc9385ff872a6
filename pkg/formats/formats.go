// Package formats reads and writes heightmap files.
//
// A heightmap file is plain text: a "width length" header line followed by
// one line per row of space separated heights with four decimals.
package formats
