package curve

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrIdentity is returned when an operation would produce, or was handed, the
// point at infinity where the protocol requires a well-formed group element
// (spec.md §4.1 point_add_many, §7 curve operation failures).
var ErrIdentity = errors.New("curve: result is the point at infinity")

// Point is a secp256k1 group element.
type Point struct {
	x, y     secp256k1.FieldVal
	infinity bool
}

func (p *Point) jacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	if p.infinity {
		return j // Z == 0 denotes the point at infinity
	}
	j.X.Set(&p.x)
	j.Y.Set(&p.y)
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j *secp256k1.JacobianPoint) Point {
	if j.Z.IsZero() {
		return Point{infinity: true}
	}
	jc := *j
	jc.ToAffine()
	return Point{x: jc.X, y: jc.Y}
}

// PointMul returns s*P.
func PointMul(p *Point, s *Scalar) *Point {
	jp := p.jacobian()
	var jr secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &jp, &jr)
	r := fromJacobian(&jr)
	return &r
}

// ScalarBaseMult returns s*G, the standard secp256k1 base point.
func ScalarBaseMult(s *Scalar) *Point {
	var jr secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.v, &jr)
	r := fromJacobian(&jr)
	return &r
}

// PointAdd returns a+b without rejecting an identity result; callers that
// must enforce non-identity (e.g. PointAddMany) check separately.
func PointAdd(a, b *Point) *Point {
	ja, jb := a.jacobian(), b.jacobian()
	var jr secp256k1.JacobianPoint
	secp256k1.AddNonConst(&ja, &jb, &jr)
	r := fromJacobian(&jr)
	return &r
}

// PointAddMany sums points left to right and fails if any partial sum is the
// identity (spec.md §4.1) — a would-be cancellation between unrelated
// commitments is always a contract violation in this protocol, never an
// expected outcome.
func PointAddMany(points []*Point) (*Point, error) {
	if len(points) == 0 {
		return nil, errors.New("curve: PointAddMany requires at least one point")
	}
	sum := points[0]
	if sum.infinity {
		return nil, ErrIdentity
	}
	for _, p := range points[1:] {
		sum = PointAdd(sum, p)
		if sum.infinity {
			return nil, ErrIdentity
		}
	}
	return sum, nil
}

// Equal reports whether two points are the same affine element (both
// infinity, or matching coordinates).
func (p *Point) Equal(o *Point) bool {
	if p.infinity || o.infinity {
		return p.infinity == o.infinity
	}
	return p.x.Equals(&o.x) && p.y.Equals(&o.y)
}

// Compress serializes p in 33-byte compressed form. Panics on the point at
// infinity, which never legitimately appears as a transcript element.
func (p *Point) Compress() [33]byte {
	if p.infinity {
		panic("curve: cannot compress the point at infinity")
	}
	var out [33]byte
	if p.y.IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	xb := p.x.Bytes()
	copy(out[1:], xb[:])
	return out
}

// CompressBytes is Compress with the result as a slice, for direct use as a
// HashToScalar argument.
func CompressBytes(p *Point) []byte {
	c := p.Compress()
	return c[:]
}

// DecompressPoint parses a 33-byte compressed point.
func DecompressPoint(b []byte) (*Point, error) {
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	var j secp256k1.JacobianPoint
	pk.AsJacobian(&j)
	p := fromJacobian(&j)
	return &p, nil
}

// MustDecompressPoint is DecompressPoint for fixed, known-good constants
// (generators parsed once at init); it panics on malformed input, which can
// only mean a programming error in this package's own constants.
func MustDecompressPoint(b []byte) *Point {
	p, err := DecompressPoint(b)
	if err != nil {
		panic("curve: bad fixed point constant: " + err.Error())
	}
	return p
}
