// Package api is the transport-free service layer. Every operation the
// caller-facing contract names is a method on [Service]; an HTTP or RPC
// layer would mount these one to one and marshal the DTOs unchanged.
package api

import (
	"context"
	"encoding/base64"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/vivekjain488/Butterfly/internal/chaos"
	"github.com/vivekjain488/Butterfly/internal/cipher"
	"github.com/vivekjain488/Butterfly/internal/ckdf"
	"github.com/vivekjain488/Butterfly/internal/config"
	"github.com/vivekjain488/Butterfly/internal/metrics"
)

// Service executes cipher and analysis operations against a fixed
// configuration. Methods are pure per call and safe for concurrent use.
type Service struct {
	cfg *config.Config
	log *logrus.Logger
}

func NewService(cfg *config.Config, log *logrus.Logger) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{cfg: cfg, log: log}
}

// resolve fills request params/mixing from the configured defaults and
// applies the range policy: warnings by default, errors under
// strict_params.
func (s *Service) resolve(p *chaos.Params, m *[4]float64) (chaos.Params, chaos.Weights, []string, *Error) {
	params := s.cfg.Params
	if p != nil {
		params = *p
	}
	mixing := s.cfg.Weights()
	if m != nil {
		mixing = chaos.Weights(*m)
	}

	sum := 0.0
	for _, w := range mixing {
		if w < 0 {
			return params, mixing, nil, errf(CodeInvalidInput, "mixing weights must be non-negative, got %v", mixing)
		}
		sum += w
	}
	if sum == 0 {
		return params, mixing, nil, errf(CodeInvalidInput, "mixing weights must not all be zero")
	}

	var warnings []string
	for _, w := range params.Validate() {
		if s.cfg.StrictParams {
			return params, mixing, nil, errf(CodeParameterOutOfRange, "%s", w)
		}
		warnings = append(warnings, "degraded security: "+w.String())
		s.log.WithFields(logrus.Fields{
			"param": w.Param,
			"value": w.Value,
		}).Warn("parameter outside chaotic regime")
	}
	return params, mixing, warnings, nil
}

func (s *Service) Encrypt(ctx context.Context, req EncryptRequest) (*EncryptResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	if req.Plaintext == "" {
		return nil, errf(CodeInvalidInput, "plaintext is required")
	}
	if len(req.Plaintext) > s.cfg.Budget.MaxPlaintextBytes {
		return nil, errf(CodeBudgetExceeded, "plaintext of %d bytes exceeds limit %d",
			len(req.Plaintext), s.cfg.Budget.MaxPlaintextBytes)
	}
	params, mixing, warnings, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	c := &cipher.Cipher{Params: params, Mixing: mixing, Opts: s.cfg.DeriveOptions()}
	ct, err := c.Encrypt(ctx, req.Seed, []byte(req.Plaintext))
	if err != nil {
		return nil, errf(CodeInvalidInput, "encrypt: %v", err)
	}

	s.log.WithFields(logrus.Fields{
		"plaintext_bytes":  len(req.Plaintext),
		"ciphertext_bytes": len(ct),
	}).Info("encrypt")

	return &EncryptResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(ct),
		Length:     len(ct),
		Params:     params,
		Warnings:   warnings,
	}, nil
}

func (s *Service) Decrypt(ctx context.Context, req DecryptRequest) (*DecryptResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	if req.Ciphertext == "" {
		return nil, errf(CodeInvalidInput, "ciphertext is required")
	}
	ct, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		return nil, errf(CodeDecodingFailure, "ciphertext is not valid base64: %v", err)
	}
	if len(ct) > s.cfg.Budget.MaxPlaintextBytes+cipher.BlockSize {
		return nil, errf(CodeBudgetExceeded, "ciphertext of %d bytes exceeds limit", len(ct))
	}
	params, mixing, warnings, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	c := &cipher.Cipher{Params: params, Mixing: mixing, Opts: s.cfg.DeriveOptions()}
	pt, err := c.Decrypt(ctx, req.Seed, ct)
	if err != nil {
		return nil, errf(CodeDecodingFailure, "decrypt: %v", err)
	}

	// A wrong seed is indistinguishable from a right one down here;
	// non-UTF-8 output is the caller's only hint.
	if !utf8.Valid(pt) {
		warnings = append(warnings, "decrypted bytes are not valid UTF-8; wrong seed or parameters?")
	}

	s.log.WithField("plaintext_bytes", len(pt)).Info("decrypt")
	return &DecryptResponse{Plaintext: string(pt), Warnings: warnings}, nil
}

func (s *Service) DeriveKey(ctx context.Context, req DeriveKeyRequest) (*DeriveKeyResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	params, mixing, warnings, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	opts := s.cfg.DeriveOptions()
	if req.Salt != "" {
		salt, err := base64.StdEncoding.DecodeString(req.Salt)
		if err != nil {
			return nil, errf(CodeDecodingFailure, "salt is not valid base64: %v", err)
		}
		opts.Salt = salt
	}

	mat, err := ckdf.Derive(ctx, req.Seed, params, mixing, 0, opts)
	if err != nil {
		return nil, errf(CodeInvalidInput, "derive: %v", err)
	}
	salt := opts.Salt
	if salt == nil {
		salt = ckdf.SaltFor(req.Seed)
	}

	s.log.WithField("key_bytes", len(mat.Key)).Info("derive key")
	return &DeriveKeyResponse{
		Key:       base64.StdEncoding.EncodeToString(mat.Key),
		KeyLength: len(mat.Key),
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Params:    params,
		Warnings:  warnings,
	}, nil
}

func (s *Service) Entropy(ctx context.Context, req EntropyRequest) (*EntropyResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	length := req.Length
	if length <= 0 {
		length = s.cfg.Analysis.EntropySampleBytes
	}
	if length > s.cfg.Budget.MaxStreamBytes {
		return nil, errf(CodeBudgetExceeded, "sample of %d bytes exceeds limit %d",
			length, s.cfg.Budget.MaxStreamBytes)
	}
	params, mixing, warnings, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	mat, err := ckdf.Derive(ctx, req.Seed, params, mixing, length, s.cfg.DeriveOptions())
	if err != nil {
		return nil, errf(CodeInvalidInput, "derive: %v", err)
	}
	rep := metrics.AnalyzeEntropy(mat.Keystream, s.cfg.Analysis.EntropyBlockSize, s.cfg.Analysis.EntropyBands)

	s.log.WithFields(logrus.Fields{
		"sample_bytes": length,
		"entropy":      rep.Entropy,
		"quality":      rep.Quality,
	}).Info("entropy analysis")
	return &EntropyResponse{EntropyReport: rep, Warnings: warnings}, nil
}

func (s *Service) Lyapunov(ctx context.Context, req LyapunovRequest) (LyapunovResponse, error) {
	params, _, _, aerr := s.resolve(req.Params, nil)
	if aerr != nil {
		return nil, aerr
	}
	names := req.Maps
	if len(names) == 0 {
		for _, m := range chaos.AllMaps() {
			names = append(names, string(m))
		}
	}
	iterations := req.Iterations
	if iterations <= 0 {
		iterations = s.cfg.Analysis.LyapunovIterations
	}

	resp := make(LyapunovResponse, len(names))
	for _, raw := range names {
		if err := ctx.Err(); err != nil {
			return nil, errf(CodeInvalidInput, "canceled: %v", err)
		}
		name, err := chaos.ParseMapName(raw)
		if err != nil {
			return nil, errf(CodeInvalidInput, "%v", err)
		}
		res, err := metrics.Lyapunov(name, params, iterations)
		if err != nil {
			return nil, errf(CodeInvalidInput, "lyapunov: %v", err)
		}
		resp[string(name)] = res
		s.log.WithFields(logrus.Fields{
			"map":     string(name),
			"lambda":  res.Lambda,
			"chaotic": res.Chaotic,
		}).Info("lyapunov estimate")
	}
	return resp, nil
}

func (s *Service) Avalanche(ctx context.Context, req AvalancheRequest) (*AvalancheResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	plaintext := req.Plaintext
	if plaintext == "" {
		plaintext = "The quick brown fox jumps over the lazy dog"
	}
	if len(plaintext) > s.cfg.Budget.MaxPlaintextBytes {
		return nil, errf(CodeBudgetExceeded, "plaintext of %d bytes exceeds limit %d",
			len(plaintext), s.cfg.Budget.MaxPlaintextBytes)
	}
	trials := req.Trials
	if trials <= 0 {
		trials = s.cfg.Analysis.AvalancheTrials
	}
	if trials > s.cfg.Budget.MaxTrials {
		return nil, errf(CodeBudgetExceeded, "%d trials exceeds limit %d", trials, s.cfg.Budget.MaxTrials)
	}
	params, mixing, warnings, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	c := &cipher.Cipher{Params: params, Mixing: mixing, Opts: s.cfg.DeriveOptions()}
	rep, err := metrics.Avalanche(ctx, c, req.Seed, []byte(plaintext), trials)
	if err != nil {
		return nil, errf(CodeInvalidInput, "avalanche: %v", err)
	}

	s.log.WithFields(logrus.Fields{
		"trials":    trials,
		"mean_flip": rep.MeanFlipPercentage,
	}).Info("avalanche analysis")
	return &AvalancheResponse{AvalancheReport: rep, Warnings: warnings}, nil
}

func (s *Service) Statistical(ctx context.Context, req StatisticalRequest) (*StatisticalResponse, error) {
	if req.Seed == "" {
		return nil, errf(CodeInvalidInput, "seed is required")
	}
	length := req.Length
	if length <= 0 {
		length = s.cfg.Analysis.StatisticalBytes
	}
	if length > s.cfg.Budget.MaxStreamBytes {
		return nil, errf(CodeBudgetExceeded, "sample of %d bytes exceeds limit %d",
			length, s.cfg.Budget.MaxStreamBytes)
	}
	params, mixing, _, aerr := s.resolve(req.Params, req.Mixing)
	if aerr != nil {
		return nil, aerr
	}

	mat, err := ckdf.Derive(ctx, req.Seed, params, mixing, length, s.cfg.DeriveOptions())
	if err != nil {
		return nil, errf(CodeInvalidInput, "derive: %v", err)
	}
	rep := metrics.RunSuite(mat.Keystream)

	s.log.WithFields(logrus.Fields{
		"sample_bytes": length,
		"pass_rate":    rep.Summary.PassRate,
	}).Info("statistical suite")
	return &StatisticalResponse{Tests: rep.Tests, Summary: rep.Summary}, nil
}

func (s *Service) Attractor(ctx context.Context, req AttractorRequest) (*AttractorResponse, error) {
	points := req.Points
	if points <= 0 {
		points = 5000
	}
	if points > s.cfg.Budget.MaxPoints {
		return nil, errf(CodeBudgetExceeded, "%d points exceeds limit %d", points, s.cfg.Budget.MaxPoints)
	}
	params, _, _, aerr := s.resolve(req.Params, nil)
	if aerr != nil {
		return nil, aerr
	}
	if err := ctx.Err(); err != nil {
		return nil, errf(CodeInvalidInput, "canceled: %v", err)
	}

	m := chaos.Lorenz{Sigma: params.LorenzSigma, Rho: params.LorenzRho, Beta: params.LorenzBeta}
	ic := chaos.DefaultInitialConditions()
	traj := m.Trajectory(chaos.LorenzState{X: ic.LorenzX, Y: ic.LorenzY, Z: ic.LorenzZ}, points)

	out := make([][3]float64, len(traj))
	for i, st := range traj {
		out[i] = [3]float64{st.X, st.Y, st.Z}
	}
	return &AttractorResponse{Points: out, NPoints: len(out)}, nil
}
