// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Stealth addresses over secp256k1, chosen to be Ethereum-compatible.
// A sender derives a one-time payee address
// from the receiver's published view/spend public keys and an
// ephemeral secret; the receiver scans published (R, A) pairs with
// their view secret to discover payments addressed to them, without
// either side learning anything an outside observer couldn't also
// compute from the public record — except which R, if any, is theirs.
package zkp

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/sha3"
)

// EthAddress is a 20-byte Ethereum-style address.
type EthAddress [20]byte

const dsStealth = "STEALTH_PAYMENT_V1"

// StealthRecord is a published (R, A) pair: the sender's ephemeral
// public key and the one-time address it derives.
type StealthRecord struct {
	Ephemeral *secp256k1.PublicKey
	Address   EthAddress
}

// GenerateStealth runs the sender side of the stealth-address
// protocol against a receiver's published view key and spend key. It
// returns the record to publish and the ephemeral secret used to
// produce it (the sender has no further use for the secret once the
// record is published, but callers that build transaction proofs may
// need it as a witness value).
func GenerateStealth(view, spend *secp256k1.PublicKey) (StealthRecord, *secp256k1.PrivateKey, error) {
	ephemeral, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return StealthRecord{}, nil, err
	}

	shared := ecdhPoint(ephemeral, view)
	tag := stealthTag(shared)
	oneTime := addTweak(spend, tag)

	return StealthRecord{
		Ephemeral: ephemeral.PubKey(),
		Address:   addressFromPubkey(oneTime),
	}, ephemeral, nil
}

// ScanStealth runs the receiver side: given a published record and
// the receiver's view secret and spend public key, it recomputes the
// one-time address and, if it matches, returns the tweak scalar t
// such that the receiver's spending key for this output is
// s_spend + t (mod N). Returns ErrStealthNotMine when the record is
// not addressed to this key.
func ScanStealth(rec StealthRecord, viewSecret *secp256k1.PrivateKey, spendPub *secp256k1.PublicKey) (*secp256k1.ModNScalar, error) {
	shared := ecdhPoint(viewSecret, rec.Ephemeral)
	tag := stealthTag(shared)
	oneTime := addTweak(spendPub, tag)

	if addressFromPubkey(oneTime) != rec.Address {
		return nil, ErrStealthNotMine
	}
	return &tag, nil
}

// ecdhPoint computes secret * pub as a secp256k1 public key: the ECDH
// shared point used by both GenerateStealth and ScanStealth.
func ecdhPoint(secret *secp256k1.PrivateKey, pub *secp256k1.PublicKey) *secp256k1.PublicKey {
	var scalar secp256k1.ModNScalar
	scalar.Set(&secret.Key)

	var pj, rj secp256k1.JacobianPoint
	pub.AsJacobian(&pj)
	secp256k1.ScalarMultNonConst(&scalar, &pj, &rj)
	rj.ToAffine()
	return secp256k1.NewPublicKey(&rj.X, &rj.Y)
}

// stealthTag reduces Keccak256(DS_SA || compressed shared point) into
// a secp256k1 scalar.
func stealthTag(shared *secp256k1.PublicKey) secp256k1.ModNScalar {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(dsStealth))
	h.Write(shared.SerializeCompressed())
	sum := h.Sum(nil)

	var b [32]byte
	copy(b[:], sum)
	var tag secp256k1.ModNScalar
	tag.SetBytes(&b)
	return tag
}

// addTweak returns pub + tweak*g_E.
func addTweak(pub *secp256k1.PublicKey, tweak secp256k1.ModNScalar) *secp256k1.PublicKey {
	var tweakJ, pubJ, sumJ secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&tweak, &tweakJ)
	pub.AsJacobian(&pubJ)
	secp256k1.AddNonConst(&tweakJ, &pubJ, &sumJ)
	sumJ.ToAffine()
	return secp256k1.NewPublicKey(&sumJ.X, &sumJ.Y)
}

// addressFromPubkey derives an Ethereum-style address: the last 20
// bytes of Keccak256 of the uncompressed public key's x||y.
func addressFromPubkey(pub *secp256k1.PublicKey) EthAddress {
	uncompressed := pub.SerializeUncompressed()
	h := sha3.NewLegacyKeccak256()
	h.Write(uncompressed[1:]) // drop the 0x04 prefix byte
	sum := h.Sum(nil)

	var addr EthAddress
	copy(addr[:], sum[len(sum)-20:])
	return addr
}

// RandomSecp256k1PrivateKey draws a fresh secp256k1 key pair, used by
// callers assembling receiver view/spend keys for tests and demos.
func RandomSecp256k1PrivateKey() (*secp256k1.PrivateKey, error) {
	return secp256k1.GeneratePrivateKey()
}
