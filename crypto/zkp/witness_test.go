// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.

package zkp

import (
	"testing"

	"github.com/GelapLabs/gelap-cryptography/crypto/group"
)

func buildTestWitness(t *testing.T) Witness {
	t.Helper()

	rIn := randScalar(t)
	rOut1 := randScalar(t)
	rOut2 := randScalar(t)

	secrets, ring := makeRing(t, 3)
	sig, err := SignRing([]byte("msg"), secrets[1], 1, ring)
	if err != nil {
		t.Fatalf("SignRing: %v", err)
	}

	view, _ := RandomSecp256k1PrivateKey()
	spend, _ := RandomSecp256k1PrivateKey()
	rec, _, err := GenerateStealth(view.PubKey(), spend.PubKey())
	if err != nil {
		t.Fatalf("GenerateStealth: %v", err)
	}

	return Witness{
		InputCommitments:  []Commitment{Commit(100, rIn)},
		OutputCommitments: []Commitment{Commit(60, rOut1), Commit(40, rOut2)},
		KeyImage:          sig.KeyImage,
		Ring:              ring,
		StealthRecords: []StealthWitnessRecord{
			{PubKey: rec.Ephemeral.SerializeCompressed(), Address: rec.Address},
		},
		InputAmounts:    []uint64{100},
		InputBlindings:  []group.Scalar{rIn},
		OutputAmounts:   []uint64{60, 40},
		OutputBlindings: []group.Scalar{rOut1, rOut2},
		RingSigC:        padWithC0(sig.C0, len(ring)),
		RingSigR:        sig.R,
		SecretIndex:     1,
	}
}

func padWithC0(c0 group.Scalar, n int) []group.Scalar {
	out := make([]group.Scalar, n)
	out[0] = c0
	for i := 1; i < n; i++ {
		out[i] = group.ScalarFromUint64(0)
	}
	return out
}

func TestWitnessEncodeDecodeRoundTrip(t *testing.T) {
	w := buildTestWitness(t)
	encoded, err := EncodeWitness(w)
	if err != nil {
		t.Fatalf("EncodeWitness: %v", err)
	}
	decoded, err := DecodeWitness(encoded)
	if err != nil {
		t.Fatalf("DecodeWitness: %v", err)
	}

	if len(decoded.InputCommitments) != len(w.InputCommitments) {
		t.Fatal("input commitment count mismatch")
	}
	if !decoded.InputCommitments[0].Equal(w.InputCommitments[0]) {
		t.Fatal("input commitment value mismatch")
	}
	if !decoded.KeyImage.Equal(w.KeyImage) {
		t.Fatal("key image mismatch")
	}
	if decoded.SecretIndex != w.SecretIndex {
		t.Fatal("secret index mismatch")
	}
	if len(decoded.StealthRecords) != 1 || decoded.StealthRecords[0].Address != w.StealthRecords[0].Address {
		t.Fatal("stealth record mismatch")
	}
}

func TestEncodeWitnessRejectsMismatchedLengths(t *testing.T) {
	w := buildTestWitness(t)
	w.InputAmounts = append(w.InputAmounts, 1)
	if _, err := EncodeWitness(w); err == nil {
		t.Fatal("expected EncodeWitness to reject mismatched input array lengths")
	}
}

func TestDecodeWitnessRejectsTruncatedInput(t *testing.T) {
	w := buildTestWitness(t)
	encoded, err := EncodeWitness(w)
	if err != nil {
		t.Fatalf("EncodeWitness: %v", err)
	}
	if _, err := DecodeWitness(encoded[:len(encoded)-5]); err == nil {
		t.Fatal("expected DecodeWitness to reject truncated input")
	}
}

func TestDecodeWitnessRejectsTrailingBytes(t *testing.T) {
	w := buildTestWitness(t)
	encoded, err := EncodeWitness(w)
	if err != nil {
		t.Fatalf("EncodeWitness: %v", err)
	}
	encoded = append(encoded, 0x00)
	if _, err := DecodeWitness(encoded); err == nil {
		t.Fatal("expected DecodeWitness to reject trailing bytes")
	}
}

func TestPublicOutputEncodeDecodeRoundTrip(t *testing.T) {
	w := buildTestWitness(t)
	o := PublicOutput{
		InputCommitments:  w.InputCommitments,
		OutputCommitments: w.OutputCommitments,
		KeyImage:          w.KeyImage,
		Ring:              w.Ring,
	}
	encoded := EncodePublicOutput(o)
	decoded, err := DecodePublicOutput(encoded)
	if err != nil {
		t.Fatalf("DecodePublicOutput: %v", err)
	}
	if len(decoded.Ring) != len(o.Ring) {
		t.Fatal("ring length mismatch")
	}
	if !decoded.KeyImage.Equal(o.KeyImage) {
		t.Fatal("key image mismatch")
	}
}

func TestDecodeWitnessRejectsCorruptedKeyImage(t *testing.T) {
	w := buildTestWitness(t)
	encoded, err := EncodeWitness(w)
	if err != nil {
		t.Fatalf("EncodeWitness: %v", err)
	}
	// Corrupt the key_image field (right after the two commitment
	// length-prefixed arrays) with all-0xff bytes, which does not
	// decode to a valid curve point.
	offset := 8 + len(w.InputCommitments)*32 + 8 + len(w.OutputCommitments)*32
	for i := 0; i < 32; i++ {
		encoded[offset+i] = 0xff
	}
	if _, err := DecodeWitness(encoded); err == nil {
		t.Fatal("expected DecodeWitness to reject a corrupted key image")
	}
}
