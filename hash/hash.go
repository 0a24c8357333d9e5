// Package hash implements the xorshift modular hash used to derive per-layer weight initialization seeds
package hash

import "math"

// Hash mixes n with salt s and reduces the result into [0, max)
func Hash(n uint32, s uint32, max uint32) uint32 {
	var m = n - s

	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	// multiply shift instead of modulo, see
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// Seed derives the seed of stream n (such as a layer position) from a model seed
func Seed(seed int64, n int) int64 {
	lo := Hash(uint32(n), uint32(seed), math.MaxUint32)
	hi := Hash(uint32(n)^0x9e3779b9, uint32(seed>>32)^lo, math.MaxUint32)
	return int64(hi)<<32 | int64(lo)
}
