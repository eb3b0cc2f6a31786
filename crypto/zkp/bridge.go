// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Cross-curve bridge from secp256k1 (curve E, used for stealth
// addresses) into G (used for commitments and ring signatures). The
// map is a one-way hash: nothing here, or anywhere else in this
// package, uses a bridged point or address to sign against G. The
// bridge exists only so a ring's decoy members can include entries
// derived from stealth-address material without mixing curves inside
// a single scalar-multiplication relation.
package zkp

import (
	"github.com/GelapLabs/gelap-cryptography/crypto/group"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	dsBridgePoint   = "BRIDGE_P_V1"
	dsBridgeAddress = "BRIDGE_A_V1"
)

// BridgePointToG maps a secp256k1 public key into a point of G with
// no discoverable discrete-log relation to anything in curve E. The
// output carries no further structure an observer could exploit
// beyond what hash_to_point_G already gives HashToPoint callers
// elsewhere in this package.
func BridgePointToG(p *secp256k1.PublicKey) group.Point {
	return group.HashToPoint([]byte(dsBridgePoint), p.SerializeCompressed())
}

// BridgeAddressToG maps an Ethereum-style stealth address into a
// point of G, for ring members that should be indistinguishable by
// curve alone from a genuine commitment-bearing key.
func BridgeAddressToG(addr EthAddress) group.Point {
	return group.HashToPoint([]byte(dsBridgeAddress), addr[:])
}
