// Package frame holds the typed data model of the coordinate reference
// frame: validated coordinates, reference points, polar pairs, geodesic
// paths, and the uniform violation record produced by the validators.
//
// Coordinates can only be built through NewCoordinate, which rejects any
// value mapping that does not cover exactly the registered axis set with
// in-range values. Everything downstream of construction can therefore
// assume a well-formed coordinate.
package frame
