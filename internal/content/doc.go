// Package content decides the payload written by write and create.
//
// A literal command-line argument always wins. Otherwise piped standard
// input is read to EOF, bounded by the service's node size limit so an
// oversized payload is rejected before any remote call is made.
package content
