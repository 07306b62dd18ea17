package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformedCiphertext is wrapped by Unpack whenever the trailer cannot
// be parsed out of the given bytes.
var ErrMalformedCiphertext = errors.New("codec: malformed ciphertext")

const wordSize = 8 // bytes per encoded cut-point / length / seed field

// Pack appends the trailer to cipherBytes: each cut point as an 8-byte
// little-endian word, then the byte length of the cuts block, then the
// chunk-seed, all little-endian. The source encodes this trailer with
// platform-native endianness (to_ne_bytes); fixing it to little-endian
// here makes the wire format portable across architectures.
func Pack(cipherBytes []byte, cuts []int, seed uint64) []byte {
	cutsLen := len(cuts) * wordSize
	out := make([]byte, 0, len(cipherBytes)+cutsLen+wordSize+wordSize)
	out = append(out, cipherBytes...)

	var word [wordSize]byte
	for _, c := range cuts {
		binary.LittleEndian.PutUint64(word[:], uint64(c))
		out = append(out, word[:]...)
	}

	binary.LittleEndian.PutUint64(word[:], uint64(cutsLen))
	out = append(out, word[:]...)

	binary.LittleEndian.PutUint64(word[:], seed)
	out = append(out, word[:]...)

	return out
}

// Unpack splits data produced by Pack back into the ciphertext bytes, the
// per-chunk cut points, and the chunk seed. rqBytes is the fixed
// per-chunk Rq wire size, used only to check that the recovered
// cipher-bytes region is a whole number of chunks and that the number of
// chunks equals the number of cut points.
func Unpack(data []byte, rqBytes int) (cipherBytes []byte, cuts []int, seed uint64, err error) {
	if len(data) < 2*wordSize {
		return nil, nil, 0, fmt.Errorf("%w: trailer too short", ErrMalformedCiphertext)
	}

	n := len(data)
	seed = binary.LittleEndian.Uint64(data[n-wordSize:])
	cutsLen := binary.LittleEndian.Uint64(data[n-2*wordSize : n-wordSize])

	if cutsLen%wordSize != 0 {
		return nil, nil, 0, fmt.Errorf("%w: cuts length %d not a multiple of %d", ErrMalformedCiphertext, cutsLen, wordSize)
	}
	headerLen := uint64(2 * wordSize)
	if cutsLen > uint64(n)-headerLen {
		return nil, nil, 0, fmt.Errorf("%w: declared cuts length %d exceeds buffer", ErrMalformedCiphertext, cutsLen)
	}

	cutsStart := uint64(n) - headerLen - cutsLen
	cutsBytes := data[cutsStart : cutsStart+cutsLen]
	numCuts := int(cutsLen / wordSize)
	cuts = make([]int, numCuts)
	for i := 0; i < numCuts; i++ {
		cuts[i] = int(binary.LittleEndian.Uint64(cutsBytes[i*wordSize:]))
	}

	cipherBytes = data[:cutsStart]
	if rqBytes > 0 && len(cipherBytes)%rqBytes != 0 {
		return nil, nil, 0, fmt.Errorf("%w: cipher bytes length %d not a multiple of chunk size %d", ErrMalformedCiphertext, len(cipherBytes), rqBytes)
	}
	if rqBytes > 0 && len(cipherBytes)/rqBytes != numCuts {
		return nil, nil, 0, fmt.Errorf("%w: chunk count %d does not match cut count %d", ErrMalformedCiphertext, len(cipherBytes)/rqBytes, numCuts)
	}

	return cipherBytes, cuts, seed, nil
}
