// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.

package zkp

import (
	"testing"

	"github.com/GelapLabs/gelap-cryptography/crypto/group"
)

func randScalar(t *testing.T) group.Scalar {
	t.Helper()
	s, err := group.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	return s
}

func TestCommitVerify(t *testing.T) {
	r := randScalar(t)
	c := Commit(100, r)
	if !VerifyCommit(c, 100, r) {
		t.Fatal("commitment must verify against its own opening")
	}
	if VerifyCommit(c, 99, r) {
		t.Fatal("commitment must not verify against a different amount")
	}
	other := randScalar(t)
	if VerifyCommit(c, 100, other) {
		t.Fatal("commitment must not verify against a different blinding")
	}
}

func TestCommitHomomorphic(t *testing.T) {
	r1, r2 := randScalar(t), randScalar(t)
	c1 := Commit(50, r1)
	c2 := Commit(30, r2)
	sum := AddCommitments(c1, c2)
	if !VerifyCommit(sum, 80, r1.Add(r2)) {
		t.Fatal("commit(a1,r1)+commit(a2,r2) must equal commit(a1+a2, r1+r2)")
	}
}

func TestCommitmentSerializationRoundTrip(t *testing.T) {
	r := randScalar(t)
	c := Commit(42, r)
	b := CommitmentBytes(c)
	back, err := CommitmentFromBytes(b)
	if err != nil {
		t.Fatalf("CommitmentFromBytes: %v", err)
	}
	if !back.Equal(c) {
		t.Fatal("round trip changed the commitment")
	}
}

func TestCommitmentRejectsGarbage(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	if _, err := CommitmentFromBytes(b); err == nil {
		t.Fatal("expected garbage bytes to be rejected")
	}
}

func TestHGeneratorIndependentOfG(t *testing.T) {
	if group.H().Equal(group.G()) {
		t.Fatal("h must not equal g")
	}
}

func TestCommitDeterministic(t *testing.T) {
	r := randScalar(t)
	c1 := Commit(100, r)
	c2 := Commit(100, r)
	if !c1.Equal(c2) {
		t.Fatal("Commit must be a pure function of its inputs")
	}
}

func TestManyRandomCommitmentLaws(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a1 := uint64(i)
		a2 := uint64(2 * i)
		r1, r2 := randScalar(t), randScalar(t)

		c1 := Commit(a1, r1)
		c2 := Commit(a2, r2)

		if !VerifyCommit(c1, a1, r1) {
			t.Fatalf("iter %d: commitment 1 did not verify", i)
		}
		sum := AddCommitments(c1, c2)
		if !VerifyCommit(sum, a1+a2, r1.Add(r2)) {
			t.Fatalf("iter %d: additive homomorphism failed", i)
		}
	}
}
