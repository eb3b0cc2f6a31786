// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Linkable Spontaneous Anonymous Group (LSAG) ring signatures. A
// signature proves that the signer knows the discrete log of one of
// the ring's public points, without revealing which one, while
// exposing a key image that is deterministic in the signer's secret
// scalar alone — the same secret always produces the same key image,
// regardless of ring, message, or position, which is what lets a
// caller detect a double spend by comparing key images.
package zkp

import "github.com/GelapLabs/gelap-cryptography/crypto/group"

const (
	dsHashToPoint = "HASH_TO_POINTS_V1"
	dsRingSig     = "RING_SIG_V1"
)

// Ring is an ordered list of public points, the true signer's point
// among them at an index the ring signature never reveals.
type Ring = []group.Point

// RingSignature is (I, c0, r[0..n)): the key image, the
// canonical starting challenge, and one response scalar per ring
// member. Deliberately does not carry the full c[] array the way a
// naive transcription of the signing loop would — serializing c0
// alone and having the verifier recompute the rest starting at index
// 0 (never at the signer's index) is what keeps the signature from
// leaking the signer's position.
type RingSignature struct {
	KeyImage group.Point
	C0       group.Scalar
	R        []group.Scalar
}

// keyImagePoint is the hashed base I is computed against: Hs =
// hash_to_point_G(DS_HP || encode(pubkey)). Keying the hash by the
// signer's own public point means I has no discovered relation to g,
// so a verifier cannot derive or invert I from the public key alone.
func keyImagePoint(pubKey group.Point) group.Point {
	enc := pubKey.Bytes()
	return group.HashToPoint([]byte(dsHashToPoint), enc[:])
}

// SignRing produces an LSAG ring signature over msg for secret x at
// ring[secretIndex] == x*g. Reports ErrRingTooShort or
// ErrSecretIndexOutOfRange for caller misuse rather than panicking,
// since unlike Verify this is not adversarial-input-facing — but it
// is still a bug, not a recoverable condition, to call this with an
// out-of-range index, so callers should treat a non-nil error here as
// fatal.
func SignRing(msg []byte, x group.Scalar, secretIndex int, ring Ring) (RingSignature, error) {
	n := len(ring)
	if n == 0 {
		return RingSignature{}, ErrRingTooShort
	}
	if secretIndex < 0 || secretIndex >= n {
		return RingSignature{}, ErrSecretIndexOutOfRange
	}

	hs := keyImagePoint(ring[secretIndex])
	keyImage := x.MulPoint(hs)

	alpha, err := group.RandomScalar()
	if err != nil {
		return RingSignature{}, err
	}

	c := make([]group.Scalar, n)
	r := make([]group.Scalar, n)

	lS := alpha.ScalarBaseMul()
	rS := alpha.MulPoint(hs)
	next := (secretIndex + 1) % n
	c[next] = challenge(msg, lS, rS)

	for i := next; i != secretIndex; i = (i + 1) % n {
		ri, err := group.RandomScalar()
		if err != nil {
			return RingSignature{}, err
		}
		r[i] = ri

		hi := keyImagePoint(ring[i])
		li := ri.ScalarBaseMul().Add(c[i].MulPoint(ring[i]))
		rri := ri.MulPoint(hi).Add(c[i].MulPoint(keyImage))

		nextI := (i + 1) % n
		c[nextI] = challenge(msg, li, rri)
	}

	r[secretIndex] = alpha.Sub(c[secretIndex].Mul(x))

	return RingSignature{
		KeyImage: keyImage,
		C0:       c[0],
		R:        r,
	}, nil
}

// VerifyRing walks the ring starting at index 0 — never at the
// signer's index, which the verifier does not know — reconstructing
// each challenge from the previous one, and accepts iff the walk
// closes: the challenge recomputed after the last ring member equals
// the supplied c0. Never panics; malformed input is rejected as
// false.
func VerifyRing(sig RingSignature, msg []byte, ring Ring) bool {
	n := len(ring)
	if n == 0 || len(sig.R) != n {
		return false
	}
	if sig.KeyImage.IsIdentity() {
		return false
	}

	c := sig.C0
	for i := 0; i < n; i++ {
		hi := keyImagePoint(ring[i])
		li := sig.R[i].ScalarBaseMul().Add(c.MulPoint(ring[i]))
		ri := sig.R[i].MulPoint(hi).Add(c.MulPoint(sig.KeyImage))
		c = challenge(msg, li, ri)
	}
	return c.Equal(sig.C0)
}

func challenge(msg []byte, l, r group.Point) group.Scalar {
	lb := l.Bytes()
	rb := r.Bytes()
	data := make([]byte, 0, len(msg)+64)
	data = append(data, msg...)
	data = append(data, lb[:]...)
	data = append(data, rb[:]...)
	return group.HashToScalar([]byte(dsRingSig), data)
}
