// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Pedersen commitment implementation for confidential transactions.
// Amounts are hidden behind C = a*g + r*h, where g is the group's
// standard generator and h is an independent, nothing-up-my-sleeve
// generator derived once by crypto/group.
package zkp

import "github.com/GelapLabs/gelap-cryptography/crypto/group"

// Commitment is a Pedersen commitment to a 64-bit amount.
type Commitment = group.Point

// Commit returns a*g + r*h. Pure and total: every (amount, blinding)
// pair has exactly one commitment.
func Commit(amount uint64, blinding group.Scalar) Commitment {
	aG := group.ScalarFromUint64(amount).ScalarBaseMul()
	rH := blinding.MulPoint(group.H())
	return aG.Add(rH)
}

// VerifyCommit reports, in constant time, whether c opens to amount
// under blinding.
func VerifyCommit(c Commitment, amount uint64, blinding group.Scalar) bool {
	return c.Equal(Commit(amount, blinding))
}

// AddCommitments returns c1 + c2. By the homomorphism this equals
// Commit(a1+a2, r1+r2) for whatever (a,r) c1 and c2 open to.
func AddCommitments(c1, c2 Commitment) Commitment {
	return c1.Add(c2)
}

// SubCommitments returns c1 - c2.
func SubCommitments(c1, c2 Commitment) Commitment {
	return c1.Sub(c2)
}

// CommitmentBytes encodes a commitment to its 32-byte compressed wire
// form.
func CommitmentBytes(c Commitment) [32]byte {
	return c.Bytes()
}

// CommitmentFromBytes decodes a 32-byte compressed commitment,
// rejecting non-canonical or off-curve encodings.
func CommitmentFromBytes(b [32]byte) (Commitment, error) {
	p, err := group.PointFromCanonicalBytes(b)
	if err != nil {
		return group.Point{}, wrapDecoding("commitment", err)
	}
	return p, nil
}

func wrapDecoding(what string, err error) error {
	return &decodingError{what: what, err: err}
}

type decodingError struct {
	what string
	err  error
}

func (e *decodingError) Error() string {
	return "zkp: invalid " + e.what + ": " + e.err.Error()
}

func (e *decodingError) Unwrap() error { return ErrDecoding }
