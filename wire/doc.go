// Package wire defines the fixed binary layout of market-data messages.
// Every record uses explicit field order, fixed widths, little-endian
// integers and no implicit padding, so the same bytes parse identically
// on both sides of any process or language boundary.
package wire
