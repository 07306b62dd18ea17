package codec

import (
	"github.com/tuneinsight/sntrup/params"
	"github.com/tuneinsight/sntrup/sampling"
)

// Chunks is the output of SplitIntoChunks: a sequence of weight-w,
// length-p polynomials ready for one-shot encryption, the real-content
// length recorded for each so MergeFromChunks knows where to cut off the
// random top-up, and the base seed the per-chunk shuffle keys derive from.
type Chunks struct {
	Parts [][]int8
	Cuts  []int
	Seed  uint64
}

// SplitIntoChunks packs a ternary stream into fixed-length, fixed-weight
// chunks of degree p and weight w: each chunk copies real input until its
// running absolute-value sum reaches LIMIT = w - Difficult(w), records that
// cut point, tops up with random +-1 symbols until the sum reaches w
// exactly, then shuffles the chunk with a seed unique to its position so
// the real-content prefix is not visible from the chunk's symbol order
// alone.
func SplitIntoChunks(input []int8, lit params.Literal, rng sampling.PRNG) (*Chunks, error) {
	p, w := lit.P, lit.W
	limit := lit.Limit()

	numChunks := (len(input) + p - 1) / p
	originSeed := rng.Uint64() - uint64(len(input)/p)

	chunks := &Chunks{
		Parts: make([][]int8, 0, numChunks),
		Cuts:  make([]int, 0, numChunks),
		Seed:  originSeed,
	}

	seed := originSeed
	inputPtr := 0
	for inputPtr != len(input) {
		part := make([]int8, p)
		partPtr := 0
		sum := 0

		for sum != limit {
			if inputPtr >= len(input) {
				break
			}
			value := input[inputPtr]
			if value < 0 {
				sum += int(-value)
			} else {
				sum += int(value)
			}
			inputPtr++
			part[partPtr] = value
			partPtr++
		}

		chunks.Cuts = append(chunks.Cuts, partPtr)

		for sum != w {
			part[partPtr] = sampling.RandomSign(rng)
			sum++
			partPtr++
		}

		if err := sampling.ShuffleArray(part, seed); err != nil {
			return nil, err
		}
		chunks.Parts = append(chunks.Parts, part)

		seed++
	}

	return chunks, nil
}

// MergeFromChunks reverses SplitIntoChunks: unshuffle each chunk with its
// position-derived seed, then keep only its recorded cut-point prefix.
func MergeFromChunks(parts [][]int8, cuts []int, seed uint64) ([]int8, error) {
	total := 0
	for _, c := range cuts {
		total += c
	}
	out := make([]int8, 0, total)

	for i, part := range parts {
		chunkSeed := seed + uint64(i)
		buf := append([]int8(nil), part...)
		if err := sampling.UnshuffleArray(buf, chunkSeed); err != nil {
			return nil, err
		}
		cut := cuts[i]
		out = append(out, buf[:cut]...)
	}
	return out, nil
}
