// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.

package zkp

import "errors"

var (
	// ErrDecoding is returned when wire bytes are not a canonical
	// encoding of the scalar, point, or record they claim to be.
	ErrDecoding = errors.New("zkp: invalid encoding")
	// ErrVerificationFailed names the failure of a commitment or ring
	// signature to match the claimed opening or message. No function
	// in this package returns it: VerifyCommit and VerifyRing report
	// a bool.
	ErrVerificationFailed = errors.New("zkp: verification failed")
	// ErrStealthNotMine is returned by ScanStealth when a record does
	// not belong to the scanning viewing key.
	ErrStealthNotMine = errors.New("zkp: stealth record is not addressed to this key")
	// ErrRingTooShort is returned by SignRing when asked to sign over
	// an empty ring. VerifyRing rejects an empty ring by returning
	// false.
	ErrRingTooShort = errors.New("zkp: ring must have at least one member")
	// ErrSecretIndexOutOfRange is returned by SignRing when the
	// caller's secret index does not name a position in the ring.
	// This is a caller bug, not an adversarial input, so SignRing
	// reports it as an error rather than silently producing a bogus
	// signature.
	ErrSecretIndexOutOfRange = errors.New("zkp: secret index out of range")
)
