// Package curve is a thin, typed wrapper over the secp256k1 group: scalar and
// point arithmetic, Pedersen commitments, point compression and hash-to-scalar.
// Everything above this package treats scalars and points as opaque values and
// never reaches into decred/btcec field or group internals directly.
package curve

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrZeroAmount is returned by ScalarFromU64 for x == 0. A zero amount would
// collapse key-image uniqueness for an owned output (spec.md §3).
var ErrZeroAmount = errors.New("curve: amount must be strictly positive")

// Scalar is an element of the secp256k1 scalar field (integers mod the group
// order q), wrapping decred's constant-time ModNScalar.
type Scalar struct {
	v secp256k1.ModNScalar
}

// ScalarRand returns a uniformly random nonzero scalar mod q.
func ScalarRand() *Scalar {
	var buf [32]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic("curve: system RNG unavailable: " + err.Error())
		}
		var v secp256k1.ModNScalar
		overflowed := v.SetByteSlice(buf[:])
		if overflowed || v.IsZero() {
			continue // negligibly rare; resample per spec.md §7
		}
		return &Scalar{v: v}
	}
}

// scalarFromBytes reduces 32 big-endian bytes mod q without rejecting zero or
// overflow — the shared decoder behind ScalarFromU64 and ScalarFromBytes.
func scalarFromBytes(b []byte) *Scalar {
	var v secp256k1.ModNScalar
	v.SetByteSlice(b)
	return &Scalar{v: v}
}

// ScalarFromU64 left-zero-pads the 8-byte big-endian encoding of x to 32
// bytes and reduces it mod q. Fails for x == 0 (spec.md §4.1, §9).
func ScalarFromU64(x uint64) (*Scalar, error) {
	if x == 0 {
		return nil, ErrZeroAmount
	}
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], x)
	return scalarFromBytes(buf[:]), nil
}

// ScalarZero returns the additive identity.
func ScalarZero() *Scalar {
	return &Scalar{}
}

// ScalarOne returns the multiplicative identity.
func ScalarOne() *Scalar {
	var v secp256k1.ModNScalar
	v.SetInt(1)
	return &Scalar{v: v}
}

// MinusOne is the scalar q-1, i.e. the additive inverse of one.
var MinusOne = func() *Scalar {
	v := ScalarOne()
	v.v.Negate()
	return v
}()

// ScalarAdd returns a+b mod q.
func ScalarAdd(a, b *Scalar) *Scalar {
	var r secp256k1.ModNScalar
	r.Add2(&a.v, &b.v)
	return &Scalar{v: r}
}

// ScalarMul returns a*b mod q.
func ScalarMul(a, b *Scalar) *Scalar {
	var r secp256k1.ModNScalar
	r.Mul2(&a.v, &b.v)
	return &Scalar{v: r}
}

// ScalarNeg returns -a mod q.
func ScalarNeg(a *Scalar) *Scalar {
	r := a.v
	r.Negate()
	return &Scalar{v: r}
}

// ScalarSub returns a-b mod q.
func ScalarSub(a, b *Scalar) *Scalar {
	return ScalarAdd(a, ScalarNeg(b))
}

// Equal reports whether two scalars are congruent mod q.
func (s *Scalar) Equal(o *Scalar) bool {
	return s.v.Equals(&o.v)
}

// IsZero reports whether s is congruent to 0 mod q.
func (s *Scalar) IsZero() bool {
	return s.v.IsZero()
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() [32]byte {
	return *s.v.Bytes()
}

// ScalarFromBytes reduces 32 big-endian bytes mod q, matching HashToScalar's
// "accept the raw output" behaviour (spec.md §9) — used to rebuild a scalar
// from a persisted or transcript byte string.
func ScalarFromBytes(b [32]byte) *Scalar {
	return scalarFromBytes(b[:])
}
