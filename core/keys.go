// Package core implements sntrup key generation and the one-shot
// encrypt/decrypt primitives over single R3/Rq polynomials.
package core

import (
	"fmt"

	"github.com/tuneinsight/sntrup/params"
	"github.com/tuneinsight/sntrup/ring"
)

// PrivateKey is (f_as_R3, ginv): the short key polynomial reduced to R3,
// and the R3 inverse of the companion g. Lit records the parameter set the
// key was generated for, so UnmarshalBinary knows how to size its decode.
type PrivateKey struct {
	Lit   params.Literal
	FAsR3 *ring.R3
	GInv  *ring.R3
}

// PublicKey is h = g/(3f) in Rq.
type PublicKey struct {
	Lit params.Literal
	H   *ring.Rq
}

// NewPrivateKey returns a private key shell for lit, ready to be populated
// by UnmarshalBinary.
func NewPrivateKey(lit params.Literal) *PrivateKey {
	return &PrivateKey{Lit: lit, FAsR3: ring.NewR3(lit.P), GInv: ring.NewR3(lit.P)}
}

// NewPublicKey returns a public key shell for lit, ready to be populated
// by UnmarshalBinary.
func NewPublicKey(lit params.Literal) *PublicKey {
	return &PublicKey{Lit: lit, H: ring.NewRq(lit.P, lit.Q, lit.Q12())}
}

// MarshalBinary encodes a private key as ginv-bytes then f_as_R3-bytes, per
// the wire layout: 2*SmallBytes total.
func (k *PrivateKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(k.GInv.Bytes())+len(k.FAsR3.Bytes()))
	out = append(out, k.GInv.Bytes()...)
	out = append(out, k.FAsR3.Bytes()...)
	return out, nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary into
// k, which must already carry the parameter set the bytes were encoded
// for (see NewPrivateKey).
func (k *PrivateKey) UnmarshalBinary(b []byte) error {
	want := k.Lit.PrivateKeyBytes()
	if len(b) != want {
		return fmt.Errorf("core: private key must be %d bytes, got %d", want, len(b))
	}
	half := k.Lit.SmallBytes()
	ginv, err := ring.R3FromBytes(k.Lit.P, b[:half])
	if err != nil {
		return fmt.Errorf("core: decoding ginv: %w", err)
	}
	f, err := ring.R3FromBytes(k.Lit.P, b[half:])
	if err != nil {
		return fmt.Errorf("core: decoding f_as_R3: %w", err)
	}
	k.GInv, k.FAsR3 = ginv, f
	return nil
}

// MarshalBinary encodes a public key as its Rq polynomial bytes.
func (k *PublicKey) MarshalBinary() ([]byte, error) {
	return k.H.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary into
// k, which must already carry the parameter set the bytes were encoded
// for (see NewPublicKey).
func (k *PublicKey) UnmarshalBinary(b []byte) error {
	h, err := ring.RqFromBytes(k.Lit.P, k.Lit.Q, k.Lit.Q12(), b)
	if err != nil {
		return fmt.Errorf("core: decoding public key: %w", err)
	}
	k.H = h
	return nil
}
