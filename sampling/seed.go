package sampling

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20"
)

// ExpandChunkSeed derives a ChaCha20 key and nonce from a single 64-bit
// chunk seed using BLAKE3 as an XOF. The chunked codec's seed is a u64 (the
// source draws it from rng.next_u64()) but the shuffle primitive wants a
// [32]byte key; blake3's extendable output closes that gap deterministically
// so a receiver can reproduce the exact same shuffle key from the seed
// carried in the trailer.
func ExpandChunkSeed(seed uint64) (key [chacha20.KeySize]byte, nonce [chacha20.NonceSize]byte) {
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)

	h := blake3.New()
	h.Write(seedBytes[:])
	digest := h.Digest()

	var out [chacha20.KeySize + chacha20.NonceSize]byte
	if _, err := digest.Read(out[:]); err != nil {
		panic("sampling: blake3 xof read failed: " + err.Error())
	}
	copy(key[:], out[:chacha20.KeySize])
	copy(nonce[:], out[chacha20.KeySize:])
	return key, nonce
}

func prngForSeed(seed uint64) (*ChaCha20PRNG, error) {
	key, nonce := ExpandChunkSeed(seed)
	return NewChaCha20PRNG(key, nonce)
}

// ShuffleArray performs an in-place Fisher-Yates shuffle of arr, driven by
// the ChaCha20 stream keyed from seed, matching the source's
// shuffle_array: walk i from 0 to len(arr)-1, swap arr[i] with arr[j] for a
// uniform j drawn from the full range [0, len(arr)).
func ShuffleArray(arr []int8, seed uint64) error {
	rng, err := prngForSeed(seed)
	if err != nil {
		return err
	}
	n := len(arr)
	for i := 0; i < n; i++ {
		j := Intn(rng, n)
		arr[i], arr[j] = arr[j], arr[i]
	}
	return nil
}

// UnshuffleArray reverses the permutation ShuffleArray applied for the same
// seed, by replaying the same sequence of swap indices and undoing them in
// reverse order (matching the source's unshuffle_array).
func UnshuffleArray(arr []int8, seed uint64) error {
	rng, err := prngForSeed(seed)
	if err != nil {
		return err
	}
	n := len(arr)
	swaps := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		j := Intn(rng, n)
		swaps = append(swaps, [2]int{i, j})
	}
	for k := len(swaps) - 1; k >= 0; k-- {
		i, j := swaps[k][0], swaps[k][1]
		arr[i], arr[j] = arr[j], arr[i]
	}
	return nil
}
