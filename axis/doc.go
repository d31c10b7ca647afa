// Package axis defines the fixed bipolar axes of the archetype coordinate
// space.
//
// The space has exactly eight axes. Each axis spans two named poles: the low
// pole sits at 0.0, the high pole at 1.0, and the origin of the space sits at
// 0.5 on every axis. The axis set is a compile-time constant table; records
// reference axes by identifier and any identifier outside the table is a data
// error, never a new axis.
package axis
