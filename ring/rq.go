package ring

import (
	"encoding/binary"
	"fmt"
)

// Rq is a length-p polynomial over Z[x]/(q, x^p-x-1), coefficients canonical
// in [-q12, q12].
type Rq struct {
	P, Q, Q12 int
	Coeffs    []int16
}

// NewRq returns the zero polynomial for the given parameter triple.
func NewRq(p, q, q12 int) *Rq {
	return &Rq{P: p, Q: q, Q12: q12, Coeffs: make([]int16, p)}
}

func (a *Rq) freeze(x int32) int16 {
	return FreezeQ(x, uint16(a.Q), uint16(a.Q12))
}

// EqOne reports whether a equals the constant polynomial 1.
func (a *Rq) EqOne() bool {
	if a.Coeffs[0] != 1 {
		return false
	}
	for _, c := range a.Coeffs[1:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// MultR3 computes a*g reduced modulo (x^p - x - 1) in Rq, where g has
// ternary {-1,0,1} coefficients; each schoolbook MAC step is reduced with
// FreezeQ and the top half folded down via x^p = x + 1.
func (a *Rq) MultR3(g *R3) *Rq {
	p := a.P
	f := a.Coeffs
	gc := g.Coeffs
	fg := make([]int16, p+p-1)

	for i := 0; i < p; i++ {
		var r int16
		for j := 0; j <= i; j++ {
			r = a.freeze(int32(r) + int32(f[j])*int32(gc[i-j]))
		}
		fg[i] = r
	}
	for i := p; i < p+p-1; i++ {
		var r int16
		for j := i - p + 1; j < p; j++ {
			r = a.freeze(int32(r) + int32(f[j])*int32(gc[i-j]))
		}
		fg[i] = r
	}

	for i := p + p - 2; i >= p; i-- {
		fg[i-p] = a.freeze(int32(fg[i-p]) + int32(fg[i]))
		fg[i-p+1] = a.freeze(int32(fg[i-p+1]) + int32(fg[i]))
	}

	out := make([]int16, p)
	copy(out, fg[:p])
	return &Rq{P: p, Q: a.Q, Q12: a.Q12, Coeffs: out}
}

// MultInt computes n*a coefficient-wise in Rq.
func (a *Rq) MultInt(n int16) *Rq {
	out := make([]int16, a.P)
	for i, c := range a.Coeffs {
		out[i] = a.freeze(int32(n) * int32(c))
	}
	return &Rq{P: a.P, Q: a.Q, Q12: a.Q12, Coeffs: out}
}

// RoundToNearestMultipleOf3 subtracts the F3 residue of each coefficient,
// producing a polynomial all of whose coefficients are divisible by 3.
func (a *Rq) RoundToNearestMultipleOf3() *Rq {
	out := make([]int16, a.P)
	for i, c := range a.Coeffs {
		out[i] = c - int16(Freeze3(c))
	}
	return &Rq{P: a.P, Q: a.Q, Q12: a.Q12, Coeffs: out}
}

// R3FromRq reduces a coefficient-wise into R3 via Freeze3.
func (a *Rq) R3FromRq() *R3 {
	out := make([]int8, a.P)
	for i, c := range a.Coeffs {
		out[i] = Freeze3(c)
	}
	return &R3{P: a.P, Coeffs: out}
}

// RqFromR3 lifts a ternary polynomial into Rq via FreezeQ.
func RqFromR3(a *R3, q, q12 int) *Rq {
	out := make([]int16, a.P)
	for i, c := range a.Coeffs {
		out[i] = FreezeQ(int32(c), uint16(q), uint16(q12))
	}
	return &Rq{P: a.P, Q: q, Q12: q12, Coeffs: out}
}

// RecipScaled computes out such that ratio*a*out === 1 (mod q, x^p-x-1),
// via the same extended-Euclidean skeleton as R3.Recip generalized to Fq:
// r is seeded with RecipQ(ratio) instead of 1 and every update goes through
// FreezeQ instead of Freeze3.
func (a *Rq) RecipScaled(ratio int16) (*Rq, error) {
	p := a.P
	q, q12 := uint16(a.Q), uint16(a.Q12)
	input := a.Coeffs

	f := make([]int32, p+1)
	g := make([]int32, p+1)
	v := make([]int32, p+1)
	r := make([]int32, p+1)

	r[0] = int32(RecipQ(ratio, q, q12))
	f[0] = 1
	f[p-1] = -1
	f[p] = -1

	for i := 0; i < p; i++ {
		g[p-1-i] = int32(input[i])
	}
	g[p] = 0

	delta := int32(1)

	quotient := func(out []int32, f0, g0 int32, fv []int32) {
		for i := range out {
			x := f0*out[i] - g0*fv[i]
			out[i] = int32(FreezeQ(x, q, q12))
		}
	}

	for iter := 0; iter < 2*p-1; iter++ {
		for i := p; i >= 1; i-- {
			v[i] = v[i-1]
		}
		v[0] = 0

		swap := negativeMask(-delta) & nonzeroMask(g[0])
		delta ^= swap & (delta ^ -delta)
		delta++

		for i := 0; i <= p; i++ {
			t := swap & (f[i] ^ g[i])
			f[i] ^= t
			g[i] ^= t
			t = swap & (v[i] ^ r[i])
			v[i] ^= t
			r[i] ^= t
		}

		f0, g0 := f[0], g[0]
		quotient(g, f0, g0, f)
		quotient(r, f0, g0, v)

		for i := 0; i < p; i++ {
			g[i] = g[i+1]
		}
		g[p] = 0
	}

	scale := RecipQ(int16(f[0]), q, q12)
	out := make([]int16, p)
	for i := 0; i < p; i++ {
		out[i] = FreezeQ(int32(scale)*v[p-1-i], q, q12)
	}

	if nonzeroMask(delta) != 0 {
		return nil, fmt.Errorf("rq recip_scaled: %w", ErrNoInverse)
	}
	return &Rq{P: p, Q: a.Q, Q12: a.Q12, Coeffs: out}, nil
}

// Bytes encodes a per the fixed-size Rq wire format: each coefficient as a
// canonical two-byte big-endian signed value.
func (a *Rq) Bytes() []byte {
	out := make([]byte, a.P*2)
	for i, c := range a.Coeffs {
		binary.BigEndian.PutUint16(out[i*2:], uint16(c))
	}
	return out
}

// RqFromBytes decodes the format produced by Bytes for a given parameter
// triple.
func RqFromBytes(p, q, q12 int, b []byte) (*Rq, error) {
	if len(b) != p*2 {
		return nil, fmt.Errorf("rq decode: expected %d bytes, got %d", p*2, len(b))
	}
	out := make([]int16, p)
	for i := range out {
		out[i] = int16(binary.BigEndian.Uint16(b[i*2:]))
	}
	return &Rq{P: p, Q: q, Q12: q12, Coeffs: out}, nil
}
