// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Package zkp provides the cryptographic primitives a confidential
// transaction is built from and verified against.
//
// The package implements:
//   - Pedersen commitments: hiding amounts with a homomorphic add/sub
//   - LSAG ring signatures: sender anonymity with a linkable key image
//   - Stealth addresses: one-time receiver addresses over secp256k1
//   - A bridge from secp256k1 into the commitment group, for decoy
//     ring members drawn from Ethereum-style keys
//   - The fixed wire codec a transaction witness and its public
//     output are exchanged in
//
// Security for the commitment and ring-signature primitives rests on
// the discrete logarithm problem over BN254's G1 (see crypto/group);
// the stealth-address and bridge primitives rest on the same problem
// over secp256k1.
package zkp
