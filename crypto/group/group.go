// Copyright 2024 The go-obsidian Authors
// This file is part of the go-obsidian library.
//
// Group and field primitives for the confidential-transaction core.
// Realizes the prime-order group G as BN254's G1 (cofactor 1), and
// exposes scalar/point encoding, random generation, and the two
// hash-into-the-group primitives every other component builds on.
package group

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrNonCanonical is returned when a 32-byte wire encoding does not
// round-trip to the same bytes it decodes from, i.e. the encoding was
// not the canonical one for the scalar or point it represents.
var ErrNonCanonical = errors.New("group: non-canonical encoding")

// DecodingError wraps ErrNonCanonical with the context of what failed
// to decode. Decoders never panic on adversarial input; they return
// this instead.
type DecodingError struct {
	What string
	Err  error
}

func (e *DecodingError) Error() string { return "group: invalid " + e.What + ": " + e.Err.Error() }
func (e *DecodingError) Unwrap() error { return e.Err }

// Scalar is an integer modulo the order of G.
type Scalar struct {
	v fr.Element
}

// Point is an element of G.
type Point struct {
	v bn254.G1Affine
}

var (
	baseGen bn254.G1Affine
	hOnce   sync.Once
	hPoint  Point
)

func init() {
	_, _, g1, _ := bn254.Generators()
	baseGen = g1
}

// G returns the group's standard base point.
func G() Point { return Point{v: baseGen} }

// H returns the independent, nothing-up-my-sleeve generator used for
// blinding factors. It is derived once, lazily, as
// hash_to_point_G(DS_H || encode(g)) and cached for the life of the
// process.
func H() Point {
	hOnce.Do(func() {
		gBytes := G().Bytes()
		hPoint = HashToPoint([]byte(dsH), gBytes[:])
	})
	return hPoint
}

const dsH = "Pedersen_H_GENERATOR_V2"

// ScalarFromUint64 embeds a 64-bit amount as a scalar. Amounts are
// always far smaller than the group order, so this is a direct,
// total, canonical embedding.
func ScalarFromUint64(x uint64) Scalar {
	var s Scalar
	s.v.SetUint64(x)
	return s
}

// RandomScalar draws a scalar uniformly from a system CSPRNG. It is
// the only scalar-generation path in this package that consumes
// entropy; every other constructor is a pure, deterministic function
// of its inputs.
func RandomScalar() (Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return Scalar{}, err
	}
	return ScalarFromUniformBytes64(buf), nil
}

// ScalarFromUniformBytes64 reduces a 64-byte uniformly random input
// modulo the group order.
func ScalarFromUniformBytes64(b [64]byte) Scalar {
	bi := new(big.Int).SetBytes(b[:])
	bi.Mod(bi, fr.Modulus())
	var s Scalar
	s.v.SetBigInt(bi)
	return s
}

// ScalarFromCanonicalBytes decodes 32 little-endian bytes into a
// scalar, rejecting any encoding that is not strictly less than the
// group order.
func ScalarFromCanonicalBytes(b [32]byte) (Scalar, error) {
	be := reverse32(b)
	bi := new(big.Int).SetBytes(be[:])
	if bi.Cmp(fr.Modulus()) >= 0 {
		return Scalar{}, &DecodingError{What: "scalar", Err: ErrNonCanonical}
	}
	var s Scalar
	s.v.SetBigInt(bi)
	return s, nil
}

// Bytes encodes the scalar as 32 little-endian bytes.
func (s Scalar) Bytes() [32]byte {
	bi := s.v.BigInt(new(big.Int))
	var be [32]byte
	bi.FillBytes(be[:])
	return reverse32(be)
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.v.IsZero() }

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.v.Add(&s.v, &o.v)
	return r
}

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.v.Sub(&s.v, &o.v)
	return r
}

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar {
	var r Scalar
	r.v.Mul(&s.v, &o.v)
	return r
}

// Negate returns -s.
func (s Scalar) Negate() Scalar {
	var r Scalar
	r.v.Neg(&s.v)
	return r
}

// Equal reports whether s == o, in constant time.
func (s Scalar) Equal(o Scalar) bool {
	return ConstantTimeEqual(s.Bytes(), o.Bytes())
}

// ScalarBaseMul returns s*g.
func (s Scalar) ScalarBaseMul() Point {
	var p bn254.G1Affine
	p.ScalarMultiplication(&baseGen, s.v.BigInt(new(big.Int)))
	return Point{v: p}
}

// MulPoint returns s*p.
func (s Scalar) MulPoint(p Point) Point {
	var r bn254.G1Affine
	r.ScalarMultiplication(&p.v, s.v.BigInt(new(big.Int)))
	return Point{v: r}
}

// PointFromCanonicalBytes decodes a 32-byte compressed point,
// rejecting non-canonical or off-curve encodings.
func PointFromCanonicalBytes(b [32]byte) (Point, error) {
	var p bn254.G1Affine
	if err := p.Unmarshal(b[:]); err != nil {
		return Point{}, &DecodingError{What: "point", Err: ErrNonCanonical}
	}
	return Point{v: p}, nil
}

// Bytes returns the 32-byte compressed encoding of p.
func (p Point) Bytes() [32]byte {
	return p.v.Bytes()
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.v.X.IsZero() && p.v.Y.IsZero()
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	var r bn254.G1Affine
	r.Add(&p.v, &q.v)
	return Point{v: r}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	var neg bn254.G1Affine
	neg.Neg(&q.v)
	var r bn254.G1Affine
	r.Add(&p.v, &neg)
	return Point{v: r}
}

// Equal reports whether p == q, in constant time over their canonical
// encodings.
func (p Point) Equal(q Point) bool {
	return ConstantTimeEqual(p.Bytes(), q.Bytes())
}

// HashToScalar reduces SHA-512(domain || msg) modulo the group order,
// the challenge hash used throughout ring-signature signing and
// verification.
func HashToScalar(domain, msg []byte) Scalar {
	h := sha512.New()
	h.Write(domain)
	h.Write(msg)
	var sum [64]byte
	copy(sum[:], h.Sum(nil))
	return ScalarFromUniformBytes64(sum)
}

// HashToPoint deterministically maps domain||msg into a point of G
// with no known discrete-log relation to g. BN254 G1 is a
// short-Weierstrass curve (y^2 = x^3 + 3), so a Ristretto-style
// from_uniform_bytes construction does not transfer; this instead
// hashes domain||msg||counter with
// SHA-512, treats the first 32 bytes as an x-coordinate candidate
// reduced into the base field, and accepts the first candidate whose
// curve equation right-hand side is a quadratic residue. Deterministic,
// one-way, and bounded to an expected two iterations.
func HashToPoint(domain, msg []byte) Point {
	for counter := uint32(0); ; counter++ {
		h := sha512.New()
		h.Write(domain)
		h.Write(msg)
		h.Write([]byte{byte(counter), byte(counter >> 8), byte(counter >> 16), byte(counter >> 24)})
		digest := h.Sum(nil)

		var x fp.Element
		x.SetBytes(digest[:32])

		var rhs, x3 fp.Element
		x3.Square(&x).Mul(&x3, &x)
		rhs.Add(&x3, curveB())

		var y fp.Element
		if y.Sqrt(&rhs) == nil {
			continue
		}
		if digest[32]&1 == 1 {
			y.Neg(&y)
		}

		candidate := bn254.G1Affine{X: x, Y: y}
		if !candidate.IsOnCurve() {
			continue
		}
		return Point{v: candidate}
	}
}

func curveB() *fp.Element {
	var b fp.Element
	b.SetUint64(3)
	return &b
}

// ConstantTimeEqual compares two 32-byte buffers in constant time.
func ConstantTimeEqual(a, b [32]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func reverse32(b [32]byte) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[i] = b[31-i]
	}
	return out
}
