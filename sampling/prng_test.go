package sampling

import (
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

func testKeyNonce(seed byte) (key [32]byte, nonce [12]byte) {
	for i := range key {
		key[i] = seed + byte(i)
	}
	for i := range nonce {
		nonce[i] = seed ^ byte(i)
	}
	return key, nonce
}

func TestChaCha20PRNGDeterministic(t *testing.T) {
	key, nonce := testKeyNonce(7)
	a, err := NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)
	b, err := NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		require.Equalf(t, b.Uint32(), a.Uint32(), "same key/nonce produced divergent streams at draw %d", i)
	}
}

func TestRandomSmallDistribution(t *testing.T) {
	key, nonce := testKeyNonce(1)
	rng, err := NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)

	const draws = 20000
	vals := make([]float64, 0, draws)
	for i := 0; i < draws; i++ {
		small := RandomSmall(1, rng)
		vals = append(vals, float64(small[0]))
	}
	mean, err := stats.Mean(vals)
	require.NoError(t, err)
	require.InDeltaf(t, 0, mean, 0.05, "mean of random_range_3 draws = %f, want close to 0", mean)
}

func TestShortRandomWeightAndLength(t *testing.T) {
	key, nonce := testKeyNonce(3)
	rng, err := NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)

	const p, w = 761, 286
	out, err := ShortRandom(p, w, rng)
	require.NoError(t, err)
	require.Len(t, out, p)
	weight := 0
	for _, c := range out {
		require.GreaterOrEqual(t, c, int16(-1))
		require.LessOrEqual(t, c, int16(1))
		if c != 0 {
			weight++
		}
	}
	require.Equal(t, w, weight)
}

func TestShortRandomRejectsWTooLarge(t *testing.T) {
	key, nonce := testKeyNonce(5)
	rng, err := NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)
	_, err = ShortRandom(4, 5, rng)
	require.Error(t, err)
}

func TestShuffleUnshuffleRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	arr := make([]int8, 761)
	for i := range arr {
		arr[i] = int8(r.Intn(3) - 1)
	}
	original := append([]int8(nil), arr...)

	const seed = uint64(0xdeadbeefcafef00d)
	require.NoError(t, ShuffleArray(arr, seed))

	shuffled := false
	for i := range arr {
		if arr[i] != original[i] {
			shuffled = true
			break
		}
	}
	require.True(t, shuffled, "shuffle left array unchanged (statistically implausible for n=761)")

	require.NoError(t, UnshuffleArray(arr, seed))
	require.Equal(t, original, arr)
}

func TestExpandChunkSeedDeterministic(t *testing.T) {
	k1, n1 := ExpandChunkSeed(12345)
	k2, n2 := ExpandChunkSeed(12345)
	require.Equal(t, k1, k2)
	require.Equal(t, n1, n2)
	k3, _ := ExpandChunkSeed(12346)
	require.NotEqual(t, k1, k3)
}
