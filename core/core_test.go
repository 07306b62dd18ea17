package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/sntrup/params"
	"github.com/tuneinsight/sntrup/ring"
	"github.com/tuneinsight/sntrup/sampling"
)

func testKeyGen(t *testing.T, lit params.Literal, seedByte byte) (*PrivateKey, *PublicKey) {
	t.Helper()
	var key [32]byte
	var nonce [12]byte
	for i := range key {
		key[i] = seedByte + byte(i)
	}
	for i := range nonce {
		nonce[i] = seedByte ^ byte(i*7)
	}
	rng, err := sampling.NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)
	kg := &KeyGenerator{Params: lit, RNG: rng}
	priv, pub, err := kg.GenKeyPair()
	require.NoError(t, err)
	return priv, pub
}

func TestGenKeyPairSatisfiesI4(t *testing.T) {
	priv, _ := testKeyGen(t, params.SNTRP761, 1)
	g, err := priv.GInv.Recip()
	require.NoError(t, err, "ginv should itself be invertible")
	h := g.Mult(priv.GInv)
	require.True(t, h.EqOne(), "ginv*g != 1 in R3 (invariant I4 violated)")
}

func TestPublicKeyReconstructionMatchesKeyGen(t *testing.T) {
	lit := params.SNTRP761
	priv, pub := testKeyGen(t, lit, 2)

	reconstructed, err := PublicKeyFromPrivateKey(priv, lit)
	require.NoError(t, err)
	if diff := cmp.Diff(pub.H.Coeffs, reconstructed.H.Coeffs); diff != "" {
		t.Fatalf("reconstructed h differs from keygen h (-want +got):\n%s", diff)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	lit := params.SNTRP761
	priv, pub := testKeyGen(t, lit, 3)

	var key [32]byte
	var nonce [12]byte
	for i := range key {
		key[i] = byte(40 + i)
	}
	rng, err := sampling.NewChaCha20PRNG(key, nonce)
	require.NoError(t, err)

	for trial := 0; trial < 5; trial++ {
		short, err := sampling.ShortRandom(lit.P, lit.W, rng)
		require.NoErrorf(t, err, "trial %d", trial)
		r := &ring.R3{P: lit.P, Coeffs: make([]int8, lit.P)}
		for i, v := range short {
			r.Coeffs[i] = int8(v)
		}

		c := Encrypt(r, pub)
		decrypted := Decrypt(c, priv, lit.W)

		if diff := cmp.Diff(r.Coeffs, decrypted.Coeffs); diff != "" {
			t.Fatalf("trial %d: round-trip mismatch (-want +got):\n%s", trial, diff)
		}
	}
}

func TestPrivateKeyAndPublicKeyByteRoundTrip(t *testing.T) {
	lit := params.SNTRP761
	priv, pub := testKeyGen(t, lit, 4)

	privBytes, err := priv.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, privBytes, lit.PrivateKeyBytes())

	back := NewPrivateKey(lit)
	require.NoError(t, back.UnmarshalBinary(privBytes))
	if diff := cmp.Diff(priv.FAsR3.Coeffs, back.FAsR3.Coeffs); diff != "" {
		t.Fatalf("f_as_R3 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(priv.GInv.Coeffs, back.GInv.Coeffs); diff != "" {
		t.Fatalf("ginv mismatch (-want +got):\n%s", diff)
	}

	pubBytes, err := pub.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, pubBytes, lit.RQBytes())

	pubBack := NewPublicKey(lit)
	require.NoError(t, pubBack.UnmarshalBinary(pubBytes))
	if diff := cmp.Diff(pub.H.Coeffs, pubBack.H.Coeffs); diff != "" {
		t.Fatalf("h mismatch (-want +got):\n%s", diff)
	}
}
