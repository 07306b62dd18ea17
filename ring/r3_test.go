package ring

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func randomR3(p int, rng *rand.Rand) *R3 {
	out := make([]int8, p)
	for i := range out {
		out[i] = int8(rng.Intn(3)) - 1
	}
	return &R3{P: p, Coeffs: out}
}

func TestR3MultSmallVector(t *testing.T) {
	const p = 9
	f := &R3{P: p, Coeffs: []int8{1, 0, -1, 0, 1, -1, 0, 0, -1}}
	g := &R3{P: p, Coeffs: []int8{-1, 1, -1, 0, 0, -1, 0, -1, 0}}

	h := f.Mult(g)
	for _, c := range h.Coeffs {
		require.GreaterOrEqual(t, c, int8(-1))
		require.LessOrEqual(t, c, int8(1))
	}
}

func TestR3RecipIsInverse(t *testing.T) {
	const p = 761
	rng := rand.New(rand.NewSource(42))

	found := 0
	for attempt := 0; attempt < 50 && found < 5; attempt++ {
		a := randomR3(p, rng)
		inv, err := a.Recip()
		if err != nil {
			continue
		}
		found++
		one := inv.Mult(a)
		require.Truef(t, one.EqOne(), "Mult(Recip(a), a) != 1, got %v", one.Coeffs[:8])
	}
	require.Greater(t, found, 0, "no invertible sample found across 50 attempts")
}

func TestR3RecipAcrossParameterSets(t *testing.T) {
	for _, p := range []int{653, 761, 857, 953, 1013, 1277} {
		rng := rand.New(rand.NewSource(int64(p)))
		ok := false
		for attempt := 0; attempt < 20; attempt++ {
			a := randomR3(p, rng)
			inv, err := a.Recip()
			if err != nil {
				continue
			}
			one := inv.Mult(a)
			if one.EqOne() {
				ok = true
				break
			}
		}
		require.Truef(t, ok, "p=%d: no successful recip round-trip in 20 attempts", p)
	}
}

func TestR3BytesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, p := range []int{9, 761, 1277} {
		a := randomR3(p, rng)
		b := a.Bytes()
		require.Lenf(t, b, (p+3)/4, "p=%d", p)
		back, err := R3FromBytes(p, b)
		require.NoErrorf(t, err, "p=%d", p)
		if diff := cmp.Diff(a.Coeffs, back.Coeffs); diff != "" {
			t.Fatalf("p=%d: round-trip mismatch (-want +got):\n%s", p, diff)
		}
	}
}

func TestR3FromBytesRejectsWrongLength(t *testing.T) {
	_, err := R3FromBytes(761, make([]byte, 5))
	require.Error(t, err)
}
