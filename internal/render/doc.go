// Package render formats namespace data for the terminal: colored node
// names, tree connectors for traversal entries and rounded tables for
// long listings and node metadata.
//
// Nothing here talks to the server; callers pass in paths and Stat values
// they already fetched.
package render
