// Package ring implements constant-time arithmetic over the rings R3 =
// Z[x]/(3, x^p-x-1) and Rq = Z[x]/(q, x^p-x-1) used by the sntrup primitives:
// the 14-bit modular-reduction helpers, the freeze/recip field operators, and
// the R3/Rq polynomial types built on top of them.
package ring

// highBit is 2^31: divModUint14 divides it by m to get its fixed-point
// reciprocal, and int32DivModUint14 adds it to a signed dividend to move it
// into the unsigned range.
const highBit uint32 = 0x80000000

// divModUint14 computes (x/m, x%m) for a 16-bit-or-smaller modulus m and a
// 32-bit unsigned dividend x without dividing x (the only division is 2^31/m,
// which depends on m alone) and without a data-dependent branch on x, by two
// rounds of multiplying by a fixed-point reciprocal of m and correcting the
// one-off error with a single masked subtract.
func divModUint14(x uint32, m uint16) (q uint32, r uint16) {
	v := highBit / uint32(m)

	qpart := uint32((uint64(x) * uint64(v)) >> 31)
	x -= qpart * uint32(m)
	q = qpart

	qpart = uint32((uint64(x) * uint64(v)) >> 31)
	x -= qpart * uint32(m)
	q += qpart

	q++
	subX := x - uint32(m)
	mask := -(subX >> 31)

	x = subX + (mask & uint32(m))
	q += mask

	return q, uint16(x)
}

// int32DivModUint14 extends divModUint14 to signed 32-bit dividends by
// shifting x into the unsigned range by 2^31 before reducing, then
// subtracting off the shift's own quotient/remainder contribution.
func int32DivModUint14(x int32, m uint16) (q uint32, r uint32) {
	uq, ur16 := divModUint14(highBit+uint32(x), m)
	ur := uint32(ur16)

	uq2, ur2 := divModUint14(highBit, m)

	ur -= uint32(ur2)
	uq -= uq2

	mask := -(ur >> 31)

	ur += mask & uint32(m)
	uq += mask

	return uq, ur
}

func int32ModUint14(x int32, m uint16) uint32 {
	_, r := int32DivModUint14(x, m)
	return r
}

// Freeze3 returns the canonical representative of x mod 3 in {-1, 0, +1}.
func Freeze3(x int16) int8 {
	r := int32ModUint14(int32(x)+1, 3)
	return int8(r) - 1
}

// FreezeQ returns the canonical representative of x mod q in [-q12, q12].
func FreezeQ(x int32, q, q12 uint16) int16 {
	r := int32ModUint14(x+int32(q12), q)
	return int16(r) - int16(q12)
}

// RecipQ computes a^-1 mod q for a != 0 (mod q) via the Fermat identity
// a^(q-2) = a^-1, by repeated multiply-and-freeze. Called only a handful of
// times per key generation / inversion, never in a hot loop.
func RecipQ(a int16, q, q12 uint16) int16 {
	ai := a
	for i := int32(1); i < int32(q)-2; i++ {
		ai = FreezeQ(int32(a)*int32(ai), q, q12)
	}
	return ai
}

// negativeMask returns all-ones if x < 0, else all-zeros — the sign-probe
// building block the extended-Euclidean inversions use to branch without
// branching. The source's own i16_negative_mask/i16_nonzero_mask helpers are
// referenced by the inversion routines but never defined in the retrievable
// tree, so these are authored fresh from the standard arithmetic-shift
// sign-mask idiom.
func negativeMask(x int32) int32 {
	return x >> 31
}

// nonzeroMask returns all-ones if x != 0, else all-zeros.
func nonzeroMask(x int32) int32 {
	return negativeMask(x) | negativeMask(-x)
}
