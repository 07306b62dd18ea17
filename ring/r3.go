package ring

import (
	"errors"
	"fmt"
)

// ErrNoInverse is returned by Recip/RecipScaled when the extended-Euclidean
// algorithm terminates with a nonzero delta: the input has no inverse in the
// target ring.
var ErrNoInverse = errors.New("ring: no inverse")

// R3 is a length-p polynomial over Z[x]/(3, x^p-x-1), coefficients in
// {-1, 0, +1}.
type R3 struct {
	P      int
	Coeffs []int8
}

// NewR3 returns the zero polynomial of degree < p.
func NewR3(p int) *R3 {
	return &R3{P: p, Coeffs: make([]int8, p)}
}

// EqZero reports whether every coefficient is zero.
func (a *R3) EqZero() bool {
	for _, c := range a.Coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// EqOne reports whether a equals the constant polynomial 1.
func (a *R3) EqOne() bool {
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

// Weight returns the Hamming weight (count of nonzero coefficients).
func (a *R3) Weight() int {
	w := 0
	for _, c := range a.Coeffs {
		w -= int(nonzeroMask(int32(c)))
	}
	return w
}

func freeze3Sum(r, f, g int8) int8 {
	x := int16(r) + int16(f)*int16(g)
	return Freeze3(x)
}

// Mult computes a*g reduced modulo (x^p - x - 1) in R3, by schoolbook
// multiplication into a length-(2p-1) buffer followed by folding the top
// half down using x^p = x + 1.
func (a *R3) Mult(g *R3) *R3 {
	p := a.P
	f := a.Coeffs
	gc := g.Coeffs
	fg := make([]int8, p+p-1)

	for i := 0; i < p; i++ {
		var r int8
		for j := 0; j <= i; j++ {
			r = freeze3Sum(r, f[j], gc[i-j])
		}
		fg[i] = r
	}
	for i := p; i < p+p-1; i++ {
		var r int8
		for j := i - p + 1; j < p; j++ {
			r = freeze3Sum(r, f[j], gc[i-j])
		}
		fg[i] = r
	}

	for i := p + p - 2; i >= p; i-- {
		x0 := int16(fg[i-p]) + int16(fg[i])
		x1 := int16(fg[i-p+1]) + int16(fg[i])
		fg[i-p] = Freeze3(x0)
		fg[i-p+1] = Freeze3(x1)
	}

	out := make([]int8, p)
	copy(out, fg[:p])
	return &R3{P: p, Coeffs: out}
}

// Recip computes the inverse of a in R3 via extended Euclid in F3, following
// the constant-time swap-mask formulation described for this ring: four
// length-(p+1) working polynomials (f, g, v, r) and a running delta, updated
// over 2p-1 rounds with no data-dependent branch.
func (a *R3) Recip() (*R3, error) {
	p := a.P
	input := a.Coeffs

	f := make([]int32, p+1)
	g := make([]int32, p+1)
	v := make([]int32, p+1)
	r := make([]int32, p+1)

	r[0] = 1
	f[0] = 1
	f[p-1] = -1
	f[p] = -1

	for i := 0; i < p; i++ {
		g[p-1-i] = int32(input[i])
	}
	g[p] = 0

	delta := int32(1)

	quotient := func(gv, sign, fv int32) int32 {
		return int32(Freeze3(int16(gv + sign*fv)))
	}

	for iter := 0; iter < 2*p-1; iter++ {
		for i := p; i >= 1; i-- {
			v[i] = v[i-1]
		}
		v[0] = 0

		sign := -g[0] * f[0]
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

		for i := 0; i <= p; i++ {
			g[i] = quotient(g[i], sign, f[i])
		}
		for i := 0; i <= p; i++ {
			r[i] = quotient(r[i], sign, v[i])
		}

		for i := 0; i < p; i++ {
			g[i] = g[i+1]
		}
		g[p] = 0
	}

	sign := f[0]
	out := make([]int8, p)
	for i := 0; i < p; i++ {
		out[i] = int8(sign * v[p-1-i])
	}

	if nonzeroMask(delta) != 0 {
		return nil, fmt.Errorf("r3 recip: %w", ErrNoInverse)
	}
	return &R3{P: p, Coeffs: out}, nil
}

// Bytes encodes a per the fixed-size R3 wire format: four trits per byte,
// each shifted to {0,1,2} and packed two bits apart (position i%4 occupies
// bits 2*(i%4)..2*(i%4)+1).
func (a *R3) Bytes() []byte {
	out := make([]byte, (a.P+3)/4)
	for i, c := range a.Coeffs {
		shift := uint((i % 4) * 2)
		out[i/4] |= byte(c+1) << shift
	}
	return out
}

// R3FromBytes decodes the format produced by Bytes for a ring of degree p.
func R3FromBytes(p int, b []byte) (*R3, error) {
	if len(b) != (p+3)/4 {
		return nil, fmt.Errorf("r3 decode: expected %d bytes, got %d", (p+3)/4, len(b))
	}
	out := make([]int8, p)
	for i := range out {
		shift := uint((i % 4) * 2)
		v := (b[i/4] >> shift) & 0x3
		out[i] = int8(v) - 1
	}
	return &R3{P: p, Coeffs: out}, nil
}
