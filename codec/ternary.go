// Package codec implements the byte-level framing around the core sntrup
// primitives: the ternary byte codec, the weight-bounded chunk splitter,
// the ciphertext trailer, and the worker-pooled bytes_encrypt/bytes_decrypt
// entry points.
package codec

// digitsPerByte is the number of base-3 digits packed into one byte; since
// 3^6 = 729 >= 256 this mapping is injective.
const digitsPerByte = 6

// BytesToTernary expands each byte of b into 6 ternary symbols in
// {-1,0,+1}, most-significant digit first, with digit 0 -> 0, 1 -> +1,
// 2 -> -1.
func BytesToTernary(b []byte) []int8 {
	out := make([]int8, 0, len(b)*digitsPerByte)
	for _, by := range b {
		out = append(out, ternaryDigitsOf(by)...)
	}
	return out
}

func ternaryDigitsOf(b byte) [digitsPerByte]int8 {
	var digits [digitsPerByte]int8
	n := b
	for i := digitsPerByte - 1; i >= 0; i-- {
		d := n % 3
		n /= 3
		switch d {
		case 0:
			digits[i] = 0
		case 1:
			digits[i] = 1
		default:
			digits[i] = -1
		}
	}
	return digits
}

// TernaryToBytes folds groups of 6 ternary symbols back into bytes, the
// inverse of BytesToTernary. len(t) need not be a multiple of 6; a short
// final group is treated as zero-padded on the low end.
func TernaryToBytes(t []int8) []byte {
	out := make([]byte, 0, (len(t)+digitsPerByte-1)/digitsPerByte)
	for start := 0; start < len(t); start += digitsPerByte {
		end := start + digitsPerByte
		if end > len(t) {
			end = len(t)
		}
		var group [digitsPerByte]int8
		copy(group[:], t[start:end])
		out = append(out, symbolGroupToByte(group))
	}
	return out
}

func symbolGroupToByte(group [digitsPerByte]int8) byte {
	var result int16
	for _, sym := range group {
		var digit int16
		switch sym {
		case 0:
			digit = 0
		case 1:
			digit = 1
		case -1:
			digit = 2
		}
		result = result*3 + digit
	}
	return byte(result)
}
