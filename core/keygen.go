package core

import (
	"errors"
	"fmt"

	"github.com/tuneinsight/sntrup/params"
	"github.com/tuneinsight/sntrup/ring"
	"github.com/tuneinsight/sntrup/sampling"
)

// ErrKeyGenExhausted is returned when key generation exceeds its bounded
// number of attempts without drawing an invertible (f, g) pair. This is
// cryptographically rare — uninvertibility of a random g in R3 has density
// well under 1 — and is surfaced to the caller as a retryable condition.
var ErrKeyGenExhausted = errors.New("core: key generation exhausted its attempt budget")

// maxKeyGenAttempts bounds the key-gen retry loop, matching the source's
// own MAX_TRY.
const maxKeyGenAttempts = 100

// KeyGenerator draws sntrup key pairs for a fixed parameter set from a
// caller-supplied PRNG.
type KeyGenerator struct {
	Params params.Literal
	RNG    sampling.PRNG
}

// GenKeyPair draws f via short_random, g via random_small, computes
// finv = 1/(3f) in Rq (RecipScaled(3)) and ginv = 1/g in R3, and derives
// h = g*finv = g/(3f), retrying on either inversion failure up to
// maxKeyGenAttempts times.
func (kg *KeyGenerator) GenKeyPair() (*PrivateKey, *PublicKey, error) {
	lit := kg.Params
	for attempt := 0; attempt < maxKeyGenAttempts; attempt++ {
		fShort, err := sampling.ShortRandom(lit.P, lit.W, kg.RNG)
		if err != nil {
			continue
		}
		gSmall := sampling.RandomSmall(lit.P, kg.RNG)

		f := &ring.Rq{P: lit.P, Q: lit.Q, Q12: lit.Q12(), Coeffs: fShort}
		g := &ring.R3{P: lit.P, Coeffs: gSmall}

		finv, err := f.RecipScaled(3)
		if err != nil {
			continue
		}
		ginv, err := g.Recip()
		if err != nil {
			continue
		}

		h := finv.MultR3(g)
		priv := &PrivateKey{Lit: lit, FAsR3: f.R3FromRq(), GInv: ginv}
		pub := &PublicKey{Lit: lit, H: h}
		return priv, pub, nil
	}
	return nil, nil, fmt.Errorf("%w: exceeded %d attempts", ErrKeyGenExhausted, maxKeyGenAttempts)
}

// PublicKeyFromPrivateKey reconstructs h = g/(3f) from an existing
// private key, recovering g via recip(ginv) and finv = 1/(3f) via
// recip_scaled(f_as_R3, 3).
func PublicKeyFromPrivateKey(priv *PrivateKey, lit params.Literal) (*PublicKey, error) {
	g, err := priv.GInv.Recip()
	if err != nil {
		return nil, fmt.Errorf("core: recovering g from ginv: %w", err)
	}
	fRq := ring.RqFromR3(priv.FAsR3, lit.Q, lit.Q12())
	finv, err := fRq.RecipScaled(3)
	if err != nil {
		return nil, fmt.Errorf("core: recomputing finv from f: %w", err)
	}
	h := finv.MultR3(g)
	return &PublicKey{Lit: lit, H: h}, nil
}
