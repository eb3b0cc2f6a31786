// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Wire encoding for the transaction witness and the public output the
// verifier commits. The layout is fixed, length-prefixed, and
// little-endian throughout so that host and guest agree on bytes
// without a shared schema library.
package zkp

import (
	"encoding/binary"
	"fmt"

	"github.com/GelapLabs/gelap-cryptography/crypto/group"
)

// StealthWitnessRecord is a stealth record as carried inside a
// Witness: the ephemeral public key in its wire encoding plus the
// derived address.
type StealthWitnessRecord struct {
	PubKey  []byte // var-len, E-curve compressed public key
	Address EthAddress
}

// Witness is the verifier's full input: everything the spender knows,
// public and private.
type Witness struct {
	InputCommitments  []Commitment
	OutputCommitments []Commitment
	KeyImage          group.Point
	Ring              Ring
	StealthRecords    []StealthWitnessRecord
	InputAmounts      []uint64
	InputBlindings    []group.Scalar
	OutputAmounts     []uint64
	OutputBlindings   []group.Scalar
	// RingSigC is n c-scalars wide to match the wire layout; only
	// index 0 (the canonical starting challenge) is consulted by the
	// verifier, which recomputes every other c_i from scratch rather
	// than trusting a witness-supplied value.
	RingSigC []group.Scalar
	RingSigR []group.Scalar
	SecretIndex       uint64
}

// PublicOutput is the fixed subset of a Witness the verifier commits:
// commitments, the key image, and the ring. Amounts, blindings, and
// secret_index never appear here.
type PublicOutput struct {
	InputCommitments  []Commitment
	OutputCommitments []Commitment
	KeyImage          group.Point
	Ring              Ring
}

// EncodeWitness serializes w to the fixed wire layout described in
// the witness wire format.
func EncodeWitness(w Witness) ([]byte, error) {
	k := len(w.InputCommitments)
	m := len(w.OutputCommitments)
	n := len(w.Ring)
	q := len(w.StealthRecords)

	if len(w.InputAmounts) != k || len(w.InputBlindings) != k {
		return nil, fmt.Errorf("zkp: witness input arrays mismatched: k=%d amounts=%d blindings=%d", k, len(w.InputAmounts), len(w.InputBlindings))
	}
	if len(w.OutputAmounts) != m || len(w.OutputBlindings) != m {
		return nil, fmt.Errorf("zkp: witness output arrays mismatched: m=%d amounts=%d blindings=%d", m, len(w.OutputAmounts), len(w.OutputBlindings))
	}
	if len(w.RingSigC) != n || len(w.RingSigR) != n {
		return nil, fmt.Errorf("zkp: witness ring signature arrays mismatched: n=%d c=%d r=%d", n, len(w.RingSigC), len(w.RingSigR))
	}

	buf := newWireBuffer()
	buf.putU64(uint64(k))
	for _, c := range w.InputCommitments {
		buf.putBytes32(c.Bytes())
	}
	buf.putU64(uint64(m))
	for _, c := range w.OutputCommitments {
		buf.putBytes32(c.Bytes())
	}
	buf.putBytes32(w.KeyImage.Bytes())
	buf.putU64(uint64(n))
	for _, p := range w.Ring {
		buf.putBytes32(p.Bytes())
	}
	buf.putU64(uint64(q))
	for _, sr := range w.StealthRecords {
		buf.putVarBytes(sr.PubKey)
		buf.putBytes(sr.Address[:])
	}
	for _, a := range w.InputAmounts {
		buf.putU64(a)
	}
	for _, b := range w.InputBlindings {
		buf.putBytes32(b.Bytes())
	}
	for _, a := range w.OutputAmounts {
		buf.putU64(a)
	}
	for _, b := range w.OutputBlindings {
		buf.putBytes32(b.Bytes())
	}
	for _, c := range w.RingSigC {
		buf.putBytes32(c.Bytes())
	}
	for _, r := range w.RingSigR {
		buf.putBytes32(r.Bytes())
	}
	buf.putU64(w.SecretIndex)

	return buf.bytes(), nil
}

// DecodeWitness parses the fixed wire layout, rejecting any
// non-canonical scalar or point encoding and any truncated or
// over-long input.
func DecodeWitness(data []byte) (Witness, error) {
	r := newWireReader(data)

	k, err := r.u64()
	if err != nil {
		return Witness{}, wrapDecoding("witness.k", err)
	}
	inCommits, err := r.points(k)
	if err != nil {
		return Witness{}, wrapDecoding("witness.input_commitments", err)
	}

	m, err := r.u64()
	if err != nil {
		return Witness{}, wrapDecoding("witness.m", err)
	}
	outCommits, err := r.points(m)
	if err != nil {
		return Witness{}, wrapDecoding("witness.output_commitments", err)
	}

	keyImageBytes, err := r.bytes32()
	if err != nil {
		return Witness{}, wrapDecoding("witness.key_image", err)
	}
	keyImage, err := group.PointFromCanonicalBytes(keyImageBytes)
	if err != nil {
		return Witness{}, wrapDecoding("witness.key_image", err)
	}

	n, err := r.u64()
	if err != nil {
		return Witness{}, wrapDecoding("witness.n", err)
	}
	ring, err := r.points(n)
	if err != nil {
		return Witness{}, wrapDecoding("witness.ring", err)
	}

	q, err := r.u64()
	if err != nil {
		return Witness{}, wrapDecoding("witness.q", err)
	}
	stealth := make([]StealthWitnessRecord, q)
	for i := range stealth {
		pk, err := r.varBytes()
		if err != nil {
			return Witness{}, wrapDecoding("witness.stealth.pubkey", err)
		}
		addrBytes, err := r.bytesN(20)
		if err != nil {
			return Witness{}, wrapDecoding("witness.stealth.address", err)
		}
		var addr EthAddress
		copy(addr[:], addrBytes)
		stealth[i] = StealthWitnessRecord{PubKey: pk, Address: addr}
	}

	inAmounts, err := r.u64s(k)
	if err != nil {
		return Witness{}, wrapDecoding("witness.input_amounts", err)
	}
	inBlindings, err := r.scalars(k)
	if err != nil {
		return Witness{}, wrapDecoding("witness.input_blindings", err)
	}
	outAmounts, err := r.u64s(m)
	if err != nil {
		return Witness{}, wrapDecoding("witness.output_amounts", err)
	}
	outBlindings, err := r.scalars(m)
	if err != nil {
		return Witness{}, wrapDecoding("witness.output_blindings", err)
	}
	sigC, err := r.scalars(n)
	if err != nil {
		return Witness{}, wrapDecoding("witness.ring_sig_c", err)
	}
	sigR, err := r.scalars(n)
	if err != nil {
		return Witness{}, wrapDecoding("witness.ring_sig_r", err)
	}
	secretIndex, err := r.u64()
	if err != nil {
		return Witness{}, wrapDecoding("witness.secret_index", err)
	}

	if !r.exhausted() {
		return Witness{}, wrapDecoding("witness", fmt.Errorf("trailing bytes after expected fields"))
	}

	return Witness{
		InputCommitments:  inCommits,
		OutputCommitments: outCommits,
		KeyImage:          keyImage,
		Ring:              ring,
		StealthRecords:    stealth,
		InputAmounts:       inAmounts,
		InputBlindings:    inBlindings,
		OutputAmounts:     outAmounts,
		OutputBlindings:   outBlindings,
		RingSigC:          sigC,
		RingSigR:          sigR,
		SecretIndex:       secretIndex,
	}, nil
}

// EncodePublicOutput serializes the fixed public-output layout.
func EncodePublicOutput(o PublicOutput) []byte {
	buf := newWireBuffer()
	buf.putU64(uint64(len(o.InputCommitments)))
	for _, c := range o.InputCommitments {
		buf.putBytes32(c.Bytes())
	}
	buf.putU64(uint64(len(o.OutputCommitments)))
	for _, c := range o.OutputCommitments {
		buf.putBytes32(c.Bytes())
	}
	buf.putBytes32(o.KeyImage.Bytes())
	buf.putU64(uint64(len(o.Ring)))
	for _, p := range o.Ring {
		buf.putBytes32(p.Bytes())
	}
	return buf.bytes()
}

// DecodePublicOutput parses the fixed public-output layout.
func DecodePublicOutput(data []byte) (PublicOutput, error) {
	r := newWireReader(data)

	k, err := r.u64()
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.k", err)
	}
	inCommits, err := r.points(k)
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.input_commitments", err)
	}
	m, err := r.u64()
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.m", err)
	}
	outCommits, err := r.points(m)
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.output_commitments", err)
	}
	keyImageBytes, err := r.bytes32()
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.key_image", err)
	}
	keyImage, err := group.PointFromCanonicalBytes(keyImageBytes)
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.key_image", err)
	}
	n, err := r.u64()
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.n", err)
	}
	ring, err := r.points(n)
	if err != nil {
		return PublicOutput{}, wrapDecoding("public_output.ring", err)
	}
	if !r.exhausted() {
		return PublicOutput{}, wrapDecoding("public_output", fmt.Errorf("trailing bytes after expected fields"))
	}

	return PublicOutput{
		InputCommitments:  inCommits,
		OutputCommitments: outCommits,
		KeyImage:          keyImage,
		Ring:              ring,
	}, nil
}

// --- low-level wire buffer/reader ---

type wireBuffer struct {
	b []byte
}

func newWireBuffer() *wireBuffer { return &wireBuffer{} }

func (w *wireBuffer) putU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.b = append(w.b, tmp[:]...)
}

func (w *wireBuffer) putBytes32(b [32]byte) { w.b = append(w.b, b[:]...) }
func (w *wireBuffer) putBytes(b []byte)     { w.b = append(w.b, b...) }

func (w *wireBuffer) putVarBytes(b []byte) {
	w.putU64(uint64(len(b)))
	w.b = append(w.b, b...)
}

func (w *wireBuffer) bytes() []byte { return w.b }

type wireReader struct {
	b   []byte
	pos int
}

func newWireReader(b []byte) *wireReader { return &wireReader{b: b} }

func (r *wireReader) exhausted() bool { return r.pos == len(r.b) }

func (r *wireReader) u64() (uint64, error) {
	if r.pos+8 > len(r.b) {
		return 0, fmt.Errorf("truncated u64")
	}
	v := binary.LittleEndian.Uint64(r.b[r.pos : r.pos+8])
	r.pos += 8
	return v, nil
}

func (r *wireReader) u64s(n uint64) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		v, err := r.u64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (r *wireReader) bytes32() ([32]byte, error) {
	var out [32]byte
	if r.pos+32 > len(r.b) {
		return out, fmt.Errorf("truncated 32-byte field")
	}
	copy(out[:], r.b[r.pos:r.pos+32])
	r.pos += 32
	return out, nil
}

func (r *wireReader) bytesN(n int) ([]byte, error) {
	if r.pos+n > len(r.b) {
		return nil, fmt.Errorf("truncated %d-byte field", n)
	}
	out := make([]byte, n)
	copy(out, r.b[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

func (r *wireReader) varBytes() ([]byte, error) {
	n, err := r.u64()
	if err != nil {
		return nil, err
	}
	return r.bytesN(int(n))
}

func (r *wireReader) points(n uint64) ([]group.Point, error) {
	out := make([]group.Point, n)
	for i := range out {
		b, err := r.bytes32()
		if err != nil {
			return nil, err
		}
		p, err := group.PointFromCanonicalBytes(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func (r *wireReader) scalars(n uint64) ([]group.Scalar, error) {
	out := make([]group.Scalar, n)
	for i := range out {
		b, err := r.bytes32()
		if err != nil {
			return nil, err
		}
		s, err := group.ScalarFromCanonicalBytes(b)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
