package por

import (
	"encoding/binary"
	"errors"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/revelio"
)

// ErrShortBuffer is returned when decoding a bundle from a buffer too short
// for the length prefix it claims.
var ErrShortBuffer = errors.New("por: buffer too short for encoded bundle")

// EncodeRevelio serializes a bundle as: N (uint32 LE), N*33 bytes anon_list,
// N*33 bytes keyimage_list, N*5*32 bytes spk_list (c1,c2,s1,s2,s3 each
// 32-byte big-endian scalar), then 3*33 bytes for G,H,G' (spec_full.md §6).
func EncodeRevelio(bundle *RevelioBundle) []byte {
	n := len(bundle.AnonList)
	out := make([]byte, 0, 4+n*33+n*33+n*5*32+3*33)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(n))
	out = append(out, lenBuf[:]...)

	for _, p := range bundle.AnonList {
		out = append(out, curve.CompressBytes(p)...)
	}
	for _, p := range bundle.KeyImageList {
		out = append(out, curve.CompressBytes(p)...)
	}
	for _, spk := range bundle.SpkList {
		c1 := spk.C1.Bytes()
		c2 := spk.C2.Bytes()
		s1 := spk.S1.Bytes()
		s2 := spk.S2.Bytes()
		s3 := spk.S3.Bytes()
		out = append(out, c1[:]...)
		out = append(out, c2[:]...)
		out = append(out, s1[:]...)
		out = append(out, s2[:]...)
		out = append(out, s3[:]...)
	}

	out = append(out, curve.CompressBytes(bundle.Gens.G)...)
	out = append(out, curve.CompressBytes(bundle.Gens.H)...)
	out = append(out, curve.CompressBytes(bundle.Gens.Gprime)...)

	return out
}

// DecodeRevelio parses the encoding produced by EncodeRevelio. The three
// trailing generator points are parsed but not compared against
// curve.DefaultGenerators(); callers that need to enforce generator
// consistency across a storage round trip do so explicitly.
func DecodeRevelio(buf []byte) (*RevelioBundle, error) {
	if len(buf) < 4 {
		return nil, ErrShortBuffer
	}
	n := int(binary.LittleEndian.Uint32(buf[:4]))
	off := 4

	need := off + n*33 + n*33 + n*5*32 + 3*33
	if len(buf) < need {
		return nil, ErrShortBuffer
	}

	anonList := make([]*curve.Point, n)
	for i := 0; i < n; i++ {
		p, err := curve.DecompressPoint(buf[off : off+33])
		if err != nil {
			return nil, err
		}
		anonList[i] = p
		off += 33
	}

	keyImageList := make([]*curve.Point, n)
	for i := 0; i < n; i++ {
		p, err := curve.DecompressPoint(buf[off : off+33])
		if err != nil {
			return nil, err
		}
		keyImageList[i] = p
		off += 33
	}

	spkList := make([]*revelio.Proof, n)
	for i := 0; i < n; i++ {
		readScalar := func() *curve.Scalar {
			var b [32]byte
			copy(b[:], buf[off:off+32])
			off += 32
			return curve.ScalarFromBytes(b)
		}
		spkList[i] = &revelio.Proof{
			C1: readScalar(),
			C2: readScalar(),
			S1: readScalar(),
			S2: readScalar(),
			S3: readScalar(),
		}
	}

	g, err := curve.DecompressPoint(buf[off : off+33])
	if err != nil {
		return nil, err
	}
	off += 33
	h, err := curve.DecompressPoint(buf[off : off+33])
	if err != nil {
		return nil, err
	}
	off += 33
	gprime, err := curve.DecompressPoint(buf[off : off+33])
	if err != nil {
		return nil, err
	}

	return &RevelioBundle{
		Gens:         &curve.Generators{G: g, H: h, Gprime: gprime},
		AnonList:     anonList,
		KeyImageList: keyImageList,
		SpkList:      spkList,
	}, nil
}
