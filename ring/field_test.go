package ring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// referenceFreeze3 mirrors the alternate Barrett-style constant the source
// tree keeps alongside the 14-bit-modulus formulation, as a cross-check.
func referenceFreeze3(a int32) int8 {
	b := a - 3*((10923*a)>>15)
	c := b - 3*((89478485*b+134217728)>>28)
	return int8(c)
}

func TestFreeze3MatchesReferenceFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		x := int16(rng.Uint32())
		got := Freeze3(x)
		want := referenceFreeze3(int32(x))
		require.Equalf(t, want, got, "Freeze3(%d)", x)
	}
}

func TestFreeze3Contract(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 5000; i++ {
		x := int16(rng.Uint32())
		f := Freeze3(x)
		require.GreaterOrEqualf(t, f, int8(-1), "Freeze3(%d)", x)
		require.LessOrEqualf(t, f, int8(1), "Freeze3(%d)", x)
		require.Zerof(t, (int32(x)-int32(f))%3, "Freeze3(%d) = %d not congruent mod 3", x, f)
	}
}

func referenceFreezeQ(a int32, q, q12 int32) int16 {
	// Q=4591-specific magic constants from the source's cross-check test;
	// only exercised for that modulus.
	b := a
	b -= q * ((228 * b) >> 20)
	b -= q * ((58470*b + 134217728) >> 28)
	_ = q12
	return int16(b)
}

func TestFreezeQMatchesReferenceFormula4591(t *testing.T) {
	const q, q12 = 4591, 2295
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		x := int32(int16(rng.Uint32()))
		got := FreezeQ(x, q, q12)
		want := referenceFreezeQ(x, q, q12)
		require.Equalf(t, want, got, "FreezeQ(%d)", x)
	}
}

func TestFreezeQContract(t *testing.T) {
	const q, q12 = 4591, 2295
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 5000; i++ {
		x := int32(rng.Int31()) - (1 << 30)
		f := FreezeQ(x, q, q12)
		require.GreaterOrEqualf(t, int(f), -q12, "FreezeQ(%d)", x)
		require.LessOrEqualf(t, int(f), q12, "FreezeQ(%d)", x)
		diff := int64(x) - int64(f)
		require.Zerof(t, diff%q, "FreezeQ(%d) = %d not congruent mod q", x, f)
	}
}

func TestRecipQIsMultiplicativeInverse(t *testing.T) {
	const q, q12 = 4591, 2295
	for a := int16(1); a < 500; a++ {
		inv := RecipQ(a, q, q12)
		prod := FreezeQ(int32(a)*int32(inv), q, q12)
		require.Equalf(t, int16(1), prod, "RecipQ(%d) = %d, a*inv mod q", a, inv)
	}
}
