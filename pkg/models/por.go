package models

import (
	"time"

	"github.com/google/uuid"
)

// PointDTO is the JSON/persistence encoding of a compressed secp256k1 point:
// 33 bytes, hex-encoded.
type PointDTO string

// ScalarDTO is the JSON/persistence encoding of a scalar mod q: 32 bytes,
// hex-encoded.
type ScalarDTO string

// RepProofDTO is the wire form of a Simple-scheme representation proof.
type RepProofDTO struct {
	C  ScalarDTO `json:"c"`
	S1 ScalarDTO `json:"s1"`
	S2 ScalarDTO `json:"s2"`
}

// RevelioProofDTO is the wire form of a single Revelio OR-proof.
type RevelioProofDTO struct {
	C1 ScalarDTO `json:"c1"`
	C2 ScalarDTO `json:"c2"`
	S1 ScalarDTO `json:"s1"`
	S2 ScalarDTO `json:"s2"`
	S3 ScalarDTO `json:"s3"`
}

// GeneratorsDTO carries the three fixed generators alongside a persisted or
// transmitted bundle, so a stored epoch is self-describing (spec_full.md §6).
type GeneratorsDTO struct {
	G      PointDTO `json:"g"`
	H      PointDTO `json:"h"`
	Gprime PointDTO `json:"gPrime,omitempty"`
}

// RevelioBundleDTO is the JSON/persistence wire shape of a RevelioBundle.
type RevelioBundleDTO struct {
	Gens         GeneratorsDTO     `json:"generators"`
	AnonList     []PointDTO        `json:"anonList"`
	KeyImageList []PointDTO        `json:"keyImageList"`
	SpkList      []RevelioProofDTO `json:"spkList"`
}

// SimpleBundleDTO is the JSON/persistence wire shape of a SimpleBundle.
type SimpleBundleDTO struct {
	Gens    GeneratorsDTO `json:"generators"`
	OwnList []PointDTO    `json:"ownList"`
	RepSpk  RepProofDTO   `json:"repSpk"`
}

// EpochRecord is a persisted proof-of-reserves epoch: the inputs, the
// bundle produced, the verify outcome, and timing, keyed by a generated
// epoch ID (spec_full.md §4.8).
type EpochRecord struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"` // "revelio" or "simple"
	AnonSize     int       `json:"anonSize"`
	OwnSize      int       `json:"ownSize"`
	Verified     bool      `json:"verified"`
	ProveMillis  int64     `json:"proveMillis"`
	VerifyMillis int64     `json:"verifyMillis"`
	BundleJSON   []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EpochSummary is the trimmed, API-facing projection of an EpochRecord
// (omits the raw bundle bytes, which are re-decoded into a typed bundle DTO
// by the caller when needed).
type EpochSummary struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	AnonSize     int       `json:"anonSize"`
	OwnSize      int       `json:"ownSize"`
	Verified     bool      `json:"verified"`
	ProveMillis  int64     `json:"proveMillis"`
	VerifyMillis int64     `json:"verifyMillis"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StreamEvent is broadcast over the WebSocket hub as each epoch completes.
type StreamEvent struct {
	EpochID      uuid.UUID `json:"epochId"`
	Kind         string    `json:"kind"`
	Verified     bool      `json:"verified"`
	ProveMillis  int64     `json:"proveMillis"`
	VerifyMillis int64     `json:"verifyMillis"`
}
