// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Transaction verifier: the program a zero-knowledge virtual machine
// executes over a confidential transfer's witness. It is a pure
// function of its input bytes — no ambient randomness, no wall-clock
// reads, no shared mutable state — and it is monolithically
// all-or-nothing: any failing check aborts before any public output
// is computed, let alone emitted.
package core

import (
	"errors"
	"math/big"

	"github.com/GelapLabs/gelap-cryptography/crypto/group"
	"github.com/GelapLabs/gelap-cryptography/crypto/zkp"
)

const dsTxBind = "TX_BIND_V1"

// maxAmount is the mandatory guardrail in place of a missing
// non-negativity range proof: no amount may reach 2^63, closing off
// 64-bit wraparound attacks on the balance check.
var maxAmount = new(big.Int).Lsh(big.NewInt(1), 63)

// VerifyTransaction parses witnessBytes, runs every structural,
// balance, and signature check, and returns the encoded public
// output. Any failure — structural, a commitment mismatch, an
// imbalance, or a bad signature — aborts with a *FatalError and no
// output bytes.
func VerifyTransaction(witnessBytes []byte) ([]byte, error) {
	w, err := zkp.DecodeWitness(witnessBytes)
	if err != nil {
		return nil, fatal("decode", err)
	}

	if err := checkShape(w); err != nil {
		return nil, err
	}
	if err := checkCommitments(w); err != nil {
		return nil, err
	}
	if err := checkBalance(w); err != nil {
		return nil, err
	}
	if err := checkRingSignature(w); err != nil {
		return nil, err
	}

	output := zkp.PublicOutput{
		InputCommitments:  w.InputCommitments,
		OutputCommitments: w.OutputCommitments,
		KeyImage:          w.KeyImage,
		Ring:              w.Ring,
	}
	return zkp.EncodePublicOutput(output), nil
}

// checkShape enforces the array-length and bound invariants a
// well-formed witness must satisfy before any cryptographic check
// runs. A violation here can only come from a malformed or
// adversarial witness, never honest use, so it is fatal.
func checkShape(w zkp.Witness) error {
	k := len(w.InputCommitments)
	m := len(w.OutputCommitments)
	n := len(w.Ring)

	if k == 0 {
		return fatal("shape", errors.New("witness has no inputs"))
	}
	if m == 0 {
		return fatal("shape", errors.New("witness has no outputs"))
	}
	if len(w.InputAmounts) != k || len(w.InputBlindings) != k {
		return fatal("shape", errors.New("input amount/blinding count mismatch"))
	}
	if len(w.OutputAmounts) != m || len(w.OutputBlindings) != m {
		return fatal("shape", errors.New("output amount/blinding count mismatch"))
	}
	if len(w.RingSigR) != n || len(w.RingSigC) != n {
		return fatal("shape", errors.New("ring signature scalar count mismatch"))
	}
	if w.SecretIndex >= uint64(n) {
		return fatal("index_out_of_range", errors.New("secret_index >= ring size"))
	}

	for _, a := range w.InputAmounts {
		if err := checkAmountBound(a); err != nil {
			return err
		}
	}
	for _, a := range w.OutputAmounts {
		if err := checkAmountBound(a); err != nil {
			return err
		}
	}
	return nil
}

// checkAmountBound rejects any amount ≥ 2^63, the mandatory
// substitute for a missing range proof.
func checkAmountBound(amount uint64) error {
	if new(big.Int).SetUint64(amount).Cmp(maxAmount) >= 0 {
		return fatal("balance_overflow", errors.New("amount exceeds the 2^63 guardrail"))
	}
	return nil
}

// checkCommitments reconstructs every input and output commitment
// from its claimed opening and requires a constant-time match against
// the witness-supplied commitment.
func checkCommitments(w zkp.Witness) error {
	for i, amount := range w.InputAmounts {
		want := zkp.Commit(amount, w.InputBlindings[i])
		if !want.Equal(w.InputCommitments[i]) {
			return fatal("commitment_mismatch", errors.New("input commitment does not match its opening"))
		}
	}
	for i, amount := range w.OutputAmounts {
		want := zkp.Commit(amount, w.OutputBlindings[i])
		if !want.Equal(w.OutputCommitments[i]) {
			return fatal("commitment_mismatch", errors.New("output commitment does not match its opening"))
		}
	}
	return nil
}

// checkBalance sums inputs and outputs with checked accumulators wide
// enough that overflow is unreachable for any witness that already
// passed checkAmountBound, and asserts the two sums are equal. Fee is
// mandatory zero until a fee field is introduced.
func checkBalance(w zkp.Witness) error {
	sumIn := new(big.Int)
	for _, a := range w.InputAmounts {
		sumIn.Add(sumIn, new(big.Int).SetUint64(a))
	}
	sumOut := new(big.Int)
	for _, a := range w.OutputAmounts {
		sumOut.Add(sumOut, new(big.Int).SetUint64(a))
	}
	if sumIn.Cmp(sumOut) != 0 {
		return fatal("balance", errors.New("sum(inputs) != sum(outputs)"))
	}
	return nil
}

// checkRingSignature rebuilds the message-binding transcript and
// invokes the ring-signature verifier. The wire format carries a
// single key_image field rather than one on the witness and a
// second, independent one on the signature, so the two values are
// the same field by construction; VerifyRing still rejects an
// identity key image outright.
func checkRingSignature(w zkp.Witness) error {
	sig := zkp.RingSignature{
		KeyImage: w.KeyImage,
		C0:       w.RingSigC[0],
		R:        w.RingSigR,
	}

	msg := bindTxMessage(w.InputCommitments, w.OutputCommitments)
	if !zkp.VerifyRing(sig, msg, w.Ring) {
		return fatal("signature", errors.New("ring signature failed to verify"))
	}
	return nil
}

// bindTxMessage builds the TX_BIND_V1-domain message the ring
// signature must be over: the domain tag followed by every input
// commitment then every output commitment, in witness order. Binding
// to the exact commitments is what makes a signature valid for one
// transaction unusable, unmodified, against another.
func bindTxMessage(inputs, outputs []group.Point) []byte {
	msg := make([]byte, 0, len(dsTxBind)+32*(len(inputs)+len(outputs)))
	msg = append(msg, []byte(dsTxBind)...)
	for _, c := range inputs {
		b := c.Bytes()
		msg = append(msg, b[:]...)
	}
	for _, c := range outputs {
		b := c.Bytes()
		msg = append(msg, b[:]...)
	}
	return msg
}
