package core

import "github.com/tuneinsight/sntrup/ring"

// Encrypt implements r3_encrypt: hr = round_to_nearest_multiple_of_3(h*r).
func Encrypt(r *ring.R3, pk *PublicKey) *ring.Rq {
	hr := pk.H.MultR3(r)
	return hr.RoundToNearestMultipleOf3()
}

// Decrypt implements rq_decrypt, the mask-based decryption-failure-
// absorbing policy: on any decoding anomaly (recovered weight != w) the
// result silently falls back to deterministic default coefficients rather
// than returning an error, per the streamlined-sntrup decryption policy. w
// is the parameter set's target weight, needed to tell a correct decrypt
// from a decryption failure.
func Decrypt(c *ring.Rq, sk *PrivateKey, w int) *ring.R3 {
	p := sk.FAsR3.P
	cf := c.MultR3(sk.FAsR3)
	cf3 := cf.MultInt(3)
	e := cf3.R3FromRq()
	ev := e.Mult(sk.GInv)

	weight := 0
	for _, coeff := range ev.Coeffs {
		if coeff != 0 {
			weight++
		}
	}
	mask := weightWMask(weight, w)

	out := make([]int8, p)
	for i := 0; i < w && i < p; i++ {
		out[i] = int8((int16(ev.Coeffs[i]^1) &^ mask) ^ 1)
	}
	for i := w; i < p; i++ {
		out[i] = int8(int16(ev.Coeffs[i]) &^ mask)
	}
	return &ring.R3{P: p, Coeffs: out}
}

// weightWMask returns 0 if the recovered polynomial has weight exactly w,
// otherwise all-ones, mirroring the source's weightw_mask: the decrypt
// caller does not branch on the comparison result, only masks with it.
func weightWMask(weight, w int) int16 {
	if weight == w {
		return 0
	}
	return -1
}
