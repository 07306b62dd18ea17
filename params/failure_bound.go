package params

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NegligibleFailureBound returns a coarse upper bound on the probability
// that a single sntrup decrypt call returns the wrong polynomial for a
// legally-drawn short input: 2^-w, computed at enough precision that the
// result is meaningful for the largest w this package names (492).
//
// This is not the tight correctness analysis of the scheme (that requires
// modeling the convolution noise distribution induced by mult_r3, which is
// outside what this spec's §4.5 correctness note asks for) — it exists so
// callers can sanity-check that a candidate parameter set's w is large
// enough to make decryption failure cryptographically negligible, in the
// same spirit as the precision estimates lattigo computes for its own
// schemes with the same library.
func NegligibleFailureBound(w int) *big.Float {
	const precision = 256
	two := new(big.Float).SetPrec(precision).SetInt64(2)
	exponent := new(big.Float).SetPrec(precision).SetInt64(int64(-w))
	return bigfloat.Pow(two, exponent)
}
