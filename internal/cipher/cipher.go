// Package cipher implements the permutation/diffusion construction:
// confusion by Hénon-driven block reordering, diffusion by XOR with
// the derived keystream.
//
// The cipher provides no authentication. Tampered ciphertext, or
// decryption under the wrong seed, yields garbage bytes without an
// error; callers that need integrity must layer it on top.
package cipher

import (
	"context"
	"errors"
	"fmt"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
)

// BlockSize is the permutation block size in bytes.
const BlockSize = 16

var ErrInvalidCiphertext = errors.New("cipher: ciphertext length is not a positive multiple of the block size")

// Cipher binds the map parameters and mixing weights for a sequence of
// calls. It holds no derived material: every Encrypt/Decrypt derives
// fresh from the seed it is handed.
type Cipher struct {
	Params chaos.Params
	Mixing chaos.Weights
	Opts   ckdf.Options
}

// New returns a cipher for the given configuration.
func New(params chaos.Params, mixing chaos.Weights) *Cipher {
	return &Cipher{Params: params, Mixing: mixing}
}

// Encrypt pads the plaintext, reorders its blocks under the key-seeded
// permutation, then XORs the result with the keystream.
func (c *Cipher) Encrypt(ctx context.Context, seed string, plaintext []byte) ([]byte, error) {
	padded := pad(plaintext)

	mat, err := ckdf.Derive(ctx, seed, c.Params, c.Mixing, len(padded), c.Opts)
	if err != nil {
		return nil, fmt.Errorf("cipher: derive: %w", err)
	}

	n := len(padded) / BlockSize
	perm := Permutation(mat.Key, c.Params, n)

	out := make([]byte, len(padded))
	for i, src := range perm {
		copy(out[i*BlockSize:(i+1)*BlockSize], padded[src*BlockSize:(src+1)*BlockSize])
	}
	for i := range out {
		out[i] ^= mat.Keystream[i]
	}
	return out, nil
}

// Decrypt reverses Encrypt: XOR away the keystream, undo the block
// permutation, strip the padding. A wrong seed is not detectable here;
// it simply yields the wrong bytes.
func (c *Cipher) Decrypt(ctx context.Context, seed string, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, ErrInvalidCiphertext
	}

	mat, err := ckdf.Derive(ctx, seed, c.Params, c.Mixing, len(ciphertext), c.Opts)
	if err != nil {
		return nil, fmt.Errorf("cipher: derive: %w", err)
	}

	xored := make([]byte, len(ciphertext))
	for i := range ciphertext {
		xored[i] = ciphertext[i] ^ mat.Keystream[i]
	}

	n := len(xored) / BlockSize
	perm := Permutation(mat.Key, c.Params, n)

	out := make([]byte, len(xored))
	for i, src := range perm {
		copy(out[src*BlockSize:(src+1)*BlockSize], xored[i*BlockSize:(i+1)*BlockSize])
	}
	return unpad(out), nil
}

// pad appends PKCS#7 padding. A full extra block is added when the
// input is already block-aligned, so padding always round-trips.
func pad(data []byte) []byte {
	padLen := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// unpad strips PKCS#7 padding. Malformed padding is left in place
// instead of failing: decryption under a wrong seed must return
// garbage, not an error.
func unpad(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > BlockSize || padLen > len(data) {
		return data
	}
	return data[:len(data)-padLen]
}
