package ebcell

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// The encoder and decoder are safe for concurrent use and are shared by
// every caller
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("ebcell: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("ebcell: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress returns the full serialization of f in a zstd frame
func Compress(f *CellFAB) ([]byte, error) {
	raw, err := f.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

// Decompress is the inverse of Compress
func Decompress(compressed []byte) (*CellFAB, error) {
	raw, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return UnmarshalCellFAB(raw)
}

// Fingerprint returns the BLAKE3-256 digest of the full serialization.
// Two CellFABs with equal fingerprints hold the same region, fragments and
// values bit for bit.
func (f *CellFAB) Fingerprint() [32]byte {
	raw, _ := f.MarshalBinary()
	return blake3.Sum256(raw)
}
