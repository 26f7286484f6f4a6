// Package mux provides the 3-bit, 8-row lookup multiplexer (c_mux3) that the
// windowed constant-base scalar multiplication (spec §4.7) uses to select a
// table row per 3-bit window. The spec lists mux3 among the gadgets whose
// I/O contract, not internal optimization, matters here, so row selection is
// built from the already-available Signal primitives (nested Switch calls)
// rather than a dedicated small-cost linear-combination trick.
package mux

import (
	"github.com/jubjub-zk/circuit/circuit/boolean"
	"github.com/jubjub-zk/circuit/circuit/signal"
)

// CMux3 selects table[k] where k = bits[0] + 2*bits[1] + 4*bits[2], bits
// being little-endian. table must have exactly 8 rows.
func CMux3(bits [3]boolean.CBool, table [8]*signal.CNum) *signal.CNum {
	// Fold the low bit first, halving the row count at each of the 3 levels.
	level0 := make([]*signal.CNum, 4)
	for i := 0; i < 4; i++ {
		level0[i] = table[2*i+1].Switch(bits[0].ToNum(), table[2*i])
	}
	level1 := make([]*signal.CNum, 2)
	for i := 0; i < 2; i++ {
		level1[i] = level0[2*i+1].Switch(bits[1].ToNum(), level0[2*i])
	}
	return level1[1].Switch(bits[2].ToNum(), level1[0])
}
