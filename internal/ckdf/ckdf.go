// Package ckdf implements the chaotic key derivation function: seed in,
// whitened key plus keystream out.
//
// Pipeline:
//
//  1. preseed = HMAC-SHA512(salt, seed); the salt defaults to the first
//     16 bytes of SHA-256(seed) when the caller supplies none
//  2. fixed byte windows of the preseed become initial conditions for
//     the four chaotic maps
//  3. the hybrid mixer burns in (≥4096 iterations, output discarded)
//  4. one raw byte per further iteration, quantized from the mixed
//     scalar
//  5. HKDF-SHA256 extract-and-expand whitens the raw bytes into the
//     final key and keystream
//
// Everything is a pure function of (seed, params, weights, lengths):
// no hidden state, no caching, byte-identical output across calls.
package ckdf

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/hkdf"

	"github.com/vivekjain488/Butterfly/internal/chaos"
)

const (
	// KeySize is the derived key length in bytes.
	KeySize = 32

	// MinBurnIn is the floor on warm-up iterations. Requests below it
	// are raised to it; the transient-escape guarantee depends on it.
	MinBurnIn = 4096

	// saltSize is the length of the derived default salt.
	saltSize = 16

	// maxHKDFChunk is the output ceiling of a single HKDF-SHA256
	// expand (255 blocks). Longer keystreams are whitened chunkwise.
	maxHKDFChunk = 255 * sha256.Size

	// cancelCheckInterval is how many iterations run between
	// cooperative cancellation checks.
	cancelCheckInterval = 1024
)

// Domain-separation info strings. Fixed: they are part of the output
// definition.
var (
	infoKey       = []byte("butterfly-crypto-key")
	infoKeystream = []byte("butterfly-keystream")
)

var (
	ErrEmptySeed     = errors.New("ckdf: empty seed")
	ErrInvalidLength = errors.New("ckdf: requested length must be positive")
)

// Material is the derived secret for one cipher invocation. It is
// owned by that invocation and never cached.
type Material struct {
	Key       []byte
	Keystream []byte
}

// SaltFor derives the default salt from the seed itself, so a bare
// seed string fully determines the output.
func SaltFor(seed string) []byte {
	sum := sha256.Sum256([]byte(seed))
	return sum[:saltSize]
}

// InitialConditions maps a seed to starting states for all four maps.
// The preseed is split into fixed 8-byte big-endian windows, each
// scaled into the basin of its map. The windows and scale factors are
// frozen: changing them changes every derived key.
func InitialConditions(seed string, salt []byte) chaos.InitialConditions {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(seed))
	pre := mac.Sum(nil)

	u := func(off int) float64 {
		v := binary.BigEndian.Uint64(pre[off : off+8])
		return float64(v) / math.Ldexp(1, 64) // [0,1)
	}

	return chaos.InitialConditions{
		LogisticX: u(0)*0.8 + 0.1,  // [0.1, 0.9]
		HenonX:    u(8)*0.4 - 0.2,  // [-0.2, 0.2]
		HenonY:    u(16)*0.4 - 0.2, // [-0.2, 0.2]
		LorenzX:   u(24)*20 - 10,   // [-10, 10]
		LorenzY:   u(32)*20 - 10,   // [-10, 10]
		LorenzZ:   u(40)*40 + 5,    // [5, 45]
		SineX:     u(48)*0.8 + 0.1, // [0.1, 0.9]
	}
}

// Options tune a derivation. The zero value selects the defaults.
type Options struct {
	// Salt overrides the seed-derived salt.
	Salt []byte
	// BurnIn requests extra warm-up; values below MinBurnIn are
	// raised to MinBurnIn.
	BurnIn int
}

// Derive produces the key and a keystream of streamLen bytes for one
// encrypt or decrypt call. A streamLen of zero derives the key alone.
// Mixing weights are normalized to sum to 1 here, once, so encryption
// and decryption always agree on the effective configuration.
func Derive(ctx context.Context, seed string, params chaos.Params, mixing chaos.Weights, streamLen int, opts Options) (Material, error) {
	if seed == "" {
		return Material{}, ErrEmptySeed
	}
	if streamLen < 0 {
		return Material{}, ErrInvalidLength
	}

	salt := opts.Salt
	if len(salt) == 0 {
		salt = SaltFor(seed)
	}
	burnIn := opts.BurnIn
	if burnIn < MinBurnIn {
		burnIn = MinBurnIn
	}

	// Raw bytes: 2x the key size for the key extraction (extra input
	// entropy for HKDF), then one raw byte per keystream byte.
	rawKeyLen := 2 * KeySize
	raw, err := rawBytes(ctx, seed, salt, params, mixing, burnIn, rawKeyLen+streamLen)
	if err != nil {
		return Material{}, err
	}

	key, err := whiten(raw[:rawKeyLen], salt, infoKey, KeySize)
	if err != nil {
		return Material{}, err
	}
	stream, err := whitenChunked(raw[rawKeyLen:], salt, infoKeystream)
	if err != nil {
		return Material{}, err
	}

	return Material{Key: key, Keystream: stream}, nil
}

// RawStream exposes the pre-whitening byte path for analysis tooling.
// It is never used by the cipher.
func RawStream(ctx context.Context, seed string, params chaos.Params, mixing chaos.Weights, n int, opts Options) ([]byte, error) {
	if seed == "" {
		return nil, ErrEmptySeed
	}
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	salt := opts.Salt
	if len(salt) == 0 {
		salt = SaltFor(seed)
	}
	burnIn := opts.BurnIn
	if burnIn < MinBurnIn {
		burnIn = MinBurnIn
	}
	return rawBytes(ctx, seed, salt, params, mixing, burnIn, n)
}

func rawBytes(ctx context.Context, seed string, salt []byte, params chaos.Params, mixing chaos.Weights, burnIn, n int) ([]byte, error) {
	h := chaos.NewHybrid(params, mixing.Normalized(), InitialConditions(seed, salt))

	for i := 0; i < burnIn; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		h.Step()
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = byte(255 * h.Step())
	}
	return out, nil
}

func whiten(secret, salt, info []byte, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), out); err != nil {
		return nil, fmt.Errorf("ckdf: hkdf expand: %w", err)
	}
	return out, nil
}

// whitenChunked whitens raw bytes of arbitrary length. HKDF-SHA256
// cannot expand past 8160 bytes, so the raw buffer is processed in
// chunks with a counter-suffixed info string separating them.
func whitenChunked(raw, salt, info []byte) ([]byte, error) {
	if len(raw) <= maxHKDFChunk {
		return whiten(raw, salt, info, len(raw))
	}

	out := make([]byte, 0, len(raw))
	for i := 0; len(out) < len(raw); i++ {
		start := i * maxHKDFChunk
		end := start + maxHKDFChunk
		if end > len(raw) {
			end = len(raw)
		}
		chunkInfo := append(append([]byte{}, info...), byte(i>>8), byte(i))
		chunk, err := whiten(raw[start:end], salt, chunkInfo, end-start)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}
