// Package sampling implements the sntrup RNG contract: a ChaCha20-backed
// PRNG, the random_small/short_random ternary samplers built on it, and the
// chunk-seed expansion the chunked bytes codec uses to derive per-chunk
// shuffle keys.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/crypto/chacha20"
)

// ErrRNG is wrapped with a reason whenever the randomness source is
// exhausted or a sampler's internal consistency checks fail.
var ErrRNG = errors.New("sampling: rng error")

// PRNG is the abstract randomness source the sntrup layers depend on: a
// stream of uniform 32-bit and 64-bit draws. Implementations never fail at
// draw time (a DRBG keystream does not run out); construction is where
// failure, if any, belongs.
type PRNG interface {
	Uint32() uint32
	Uint64() uint64
}

// ChaCha20PRNG is a PRNG backed by a keyed ChaCha20 keystream, matching the
// source's own choice of ChaCha20 as its CSPRNG for shuffling and sampling.
type ChaCha20PRNG struct {
	cipher *chacha20.Cipher
}

// NewChaCha20PRNG constructs a PRNG from an explicit key and nonce, for
// deterministic/reproducible draws (tests, or the per-chunk shuffle keys
// derived by ExpandChunkSeed).
func NewChaCha20PRNG(key [chacha20.KeySize]byte, nonce [chacha20.NonceSize]byte) (*ChaCha20PRNG, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("sampling: new cipher: %w", err)
	}
	return &ChaCha20PRNG{cipher: c}, nil
}

// NewSystemPRNG seeds a ChaCha20PRNG from the operating system's
// cryptographically secure random source.
func NewSystemPRNG() (*ChaCha20PRNG, error) {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("%w: seeding key: %v", ErrRNG, err)
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: seeding nonce: %v", ErrRNG, err)
	}
	return NewChaCha20PRNG(key, nonce)
}

func (c *ChaCha20PRNG) fill(buf []byte) {
	zero := make([]byte, len(buf))
	c.cipher.XORKeyStream(buf, zero)
}

// Uint32 combines four keystream bytes little-endian, the way the source's
// urandom32 combines four rng.gen::<u8>() draws.
func (c *ChaCha20PRNG) Uint32() uint32 {
	var b [4]byte
	c.fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Uint64 is used for the chunking seed.
func (c *ChaCha20PRNG) Uint64() uint64 {
	var b [8]byte
	c.fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Intn returns a uniform value in [0, n) via rejection sampling over Uint32,
// the Go-idiomatic equivalent of rand::gen_range(0..n) used by the source's
// Fisher-Yates shuffle.
func Intn(rng PRNG, n int) int {
	if n <= 0 {
		panic("sampling: Intn requires n > 0")
	}
	limit := uint32(n) * (0xFFFFFFFF / uint32(n))
	for {
		v := rng.Uint32()
		if v < limit {
			return int(v % uint32(n))
		}
	}
}

// RandomSign draws a uniform +-1 value, used to top up a chunk to weight w
// beyond the real plaintext's cut point.
func RandomSign(rng PRNG) int8 {
	if rng.Uint32()&1 == 1 {
		return 1
	}
	return -1
}

func randomRange3(rng PRNG) int8 {
	r := rng.Uint32()
	return int8(((r&0x3fffffff)*3)>>30) - 1
}

// RandomSmall draws p coefficients i.i.d. uniform on {-1,0,+1} by a
// rejection-free base-3 mapping from the low 30 bits of a 32-bit draw (the
// upper 2 bits are discarded).
func RandomSmall(p int, rng PRNG) []int8 {
	out := make([]int8, p)
	for i := range out {
		out[i] = randomRange3(rng)
	}
	return out
}

// ShortRandom draws a uniformly random weight-exactly-w element of
// {-1,0,+1}^p: p 32-bit draws with the low bits forced to encode a sign
// parity constraint, sorted, then mapped to ternary symbols in sorted
// order. Returns ErrRNG if any of the source's own consistency checks on
// the drawn values fail (parity, range, total weight) — extremely rare,
// and recovered by the key-gen loop redrawing.
func ShortRandom(p, w int, rng PRNG) ([]int16, error) {
	if w > p {
		return nil, fmt.Errorf("%w: w=%d exceeds p=%d", ErrRNG, w, p)
	}
	list := make([]uint32, p)
	for i := range list {
		v := rng.Uint32()
		if i < w {
			v &^= 1
		} else {
			v = (v &^ 3) | 1
		}
		list[i] = v
	}

	for i := 0; i < w; i++ {
		if list[i]%2 != 0 {
			return nil, fmt.Errorf("%w: expected even value below w", ErrRNG)
		}
	}
	for i := w; i < p; i++ {
		if list[i]%4 != 1 {
			return nil, fmt.Errorf("%w: expected value == 1 mod 4 at/after w", ErrRNG)
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	out := make([]int16, p)
	sum := 0
	for i, v := range list {
		nv := int32(v%4) - 1
		if nv > 1 {
			return nil, fmt.Errorf("%w: symbol %d out of range", ErrRNG, nv)
		}
		out[i] = int16(nv)
		if nv < 0 {
			sum -= int(nv)
		} else {
			sum += int(nv)
		}
	}
	if sum != w {
		return nil, fmt.Errorf("%w: weight %d != w=%d", ErrRNG, sum, w)
	}
	return out, nil
}
