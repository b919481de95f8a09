package ebcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	src := newTestFAB(t, 4)
	fill(src)

	packed, err := Compress(src)
	require.NoError(t, err)

	got, err := Decompress(packed)
	require.NoError(t, err)
	assertSameValues(t, src, got)
	assert.Equal(t, src.Fingerprint(), got.Fingerprint())

	_, err = Decompress([]byte("not a zstd frame"))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := newTestFAB(t, 1)
	b := newTestFAB(t, 1)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Set(vol(1, 1, 2), 0, Irregular, 1)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	a.Set(vol(1, 1, 2), 0, Unknown, 1)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
