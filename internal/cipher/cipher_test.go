package cipher

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekjain488/Butterfly/internal/chaos"
)

func defaultCipher() *Cipher {
	return New(chaos.DefaultParams(), chaos.DefaultWeights())
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	tests := []struct {
		name      string
		plaintext string
	}{
		{"short", "HELLO"},
		{"empty", ""},
		{"one block exactly", "0123456789abcdef"},
		{"two blocks exactly", "0123456789abcdef0123456789abcdef"},
		{"long", strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)},
		{"utf8", "Hello, Chaos Cryptography! 🦋"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := c.Encrypt(ctx, "correct-seed", []byte(tt.plaintext))
			require.NoError(t, err)
			require.NotEmpty(t, ct)
			assert.Zero(t, len(ct)%BlockSize)

			pt, err := c.Decrypt(ctx, "correct-seed", ct)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, string(pt))
		})
	}
}

func TestEncryptDeterminism(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	a, err := c.Encrypt(ctx, "seed", []byte("determinism check"))
	require.NoError(t, err)
	b, err := c.Encrypt(ctx, "seed", []byte("determinism check"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWrongSeedYieldsGarbageNotError(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	ct, err := c.Encrypt(ctx, "correct-seed", []byte("HELLO"))
	require.NoError(t, err)

	pt, err := c.Decrypt(ctx, "wrong-seed", ct)
	require.NoError(t, err, "wrong seed must not be detectable")
	assert.NotEqual(t, "HELLO", string(pt))
}

func TestTamperedCiphertextDecryptsWithoutError(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	ct, err := c.Encrypt(ctx, "seed", []byte("no integrity tag here"))
	require.NoError(t, err)

	ct[0] ^= 0x80
	pt, err := c.Decrypt(ctx, "seed", ct)
	require.NoError(t, err)
	assert.NotEqual(t, "no integrity tag here", string(pt))
}

func TestCiphertextDiffersFromPlaintext(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	plain := []byte(strings.Repeat("A", 64))
	ct, err := c.Encrypt(ctx, "seed", plain)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(ct, plain[:16]))
}

func TestDecryptRejectsBadLength(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	for _, n := range []int{0, 1, 15, 17, 31} {
		_, err := c.Decrypt(ctx, "seed", make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidCiphertext, "length %d", n)
	}
}

func TestSeedSensitivityOfCiphertext(t *testing.T) {
	ctx := context.Background()
	c := defaultCipher()

	plain := []byte("The quick brown fox jumps over the lazy dog")
	a, err := c.Encrypt(ctx, "seed-1", plain)
	require.NoError(t, err)
	b, err := c.Encrypt(ctx, "seed-2", plain)
	require.NoError(t, err)

	flipped := 0
	for i := range a {
		x := a[i] ^ b[i]
		for x != 0 {
			flipped += int(x & 1)
			x >>= 1
		}
	}
	pct := 100 * float64(flipped) / float64(len(a)*8)
	assert.InDelta(t, 50.0, pct, 12.0, "ciphertext bit flip rate")
}

func TestPadUnpadRoundTrip(t *testing.T) {
	for n := 0; n <= 3*BlockSize; n++ {
		data := bytes.Repeat([]byte{0xAB}, n)
		padded := pad(data)
		require.Zero(t, len(padded)%BlockSize, "n=%d", n)
		require.Greater(t, len(padded), n, "padding must always be added")
		assert.Equal(t, data, unpad(padded), "n=%d", n)
	}
}

func TestUnpadToleratesGarbage(t *testing.T) {
	// A trailing byte outside [1, BlockSize] is not valid padding;
	// the data must come back untouched rather than erroring.
	garbage := append(bytes.Repeat([]byte{0x11}, 15), 0xF7)
	assert.Equal(t, garbage, unpad(garbage))
}
