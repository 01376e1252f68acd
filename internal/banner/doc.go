// Package banner renders horizontal rule banners with an optional centered
// title for separating sections of console output.
//
// Loosely typed inputs are normalized through NormalizeOptions before any text
// is produced, and Printer delivers the finished banner to its sink in a single
// write.
package banner
