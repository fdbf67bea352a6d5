package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vivekjain488/Butterfly/internal/api"
	"github.com/vivekjain488/Butterfly/internal/config"
	"github.com/vivekjain488/Butterfly/internal/live"
	"github.com/vivekjain488/Butterfly/internal/metrics"
	"github.com/vivekjain488/Butterfly/internal/store"
	"github.com/vivekjain488/Butterfly/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       string
	strict     bool
	burnIn     int
	// Map parameters
	logisticR   float64
	henonA      float64
	henonB      float64
	lorenzSigma float64
	lorenzRho   float64
	lorenzBeta  float64
	sineMu      float64
	// Mixing weights
	wLogistic float64
	wHenon    float64
	wLorenz   float64
	wSine     float64
	// Analysis knobs
	length     int
	trials     int
	iterations int
	points     int
	mapNames   []string
	sampleText string
	// Output
	saveReport bool
	jsonOut    bool
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "butterfly",
		Short: "chaos-based cipher and randomness analysis toolkit",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".butterfly", "report directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&seed, "seed", "", "secret seed phrase")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject out-of-range parameters")
	rootCmd.PersistentFlags().IntVar(&burnIn, "burn-in", config.DefaultBurnIn, "mixer warm-up iterations")
	rootCmd.PersistentFlags().Float64Var(&logisticR, "logistic-r", 3.99, "logistic map r")
	rootCmd.PersistentFlags().Float64Var(&henonA, "henon-a", 1.4, "henon map a")
	rootCmd.PersistentFlags().Float64Var(&henonB, "henon-b", 0.3, "henon map b")
	rootCmd.PersistentFlags().Float64Var(&lorenzSigma, "lorenz-sigma", 10.0, "lorenz sigma")
	rootCmd.PersistentFlags().Float64Var(&lorenzRho, "lorenz-rho", 28.0, "lorenz rho")
	rootCmd.PersistentFlags().Float64Var(&lorenzBeta, "lorenz-beta", 8.0/3.0, "lorenz beta")
	rootCmd.PersistentFlags().Float64Var(&sineMu, "sine-mu", 0.99, "sine map mu")
	rootCmd.PersistentFlags().Float64Var(&wLogistic, "w-logistic", 0.25, "logistic mixing weight")
	rootCmd.PersistentFlags().Float64Var(&wHenon, "w-henon", 0.25, "henon mixing weight")
	rootCmd.PersistentFlags().Float64Var(&wLorenz, "w-lorenz", 0.25, "lorenz mixing weight")
	rootCmd.PersistentFlags().Float64Var(&wSine, "w-sine", 0.25, "sine mixing weight")

	encryptCmd := &cobra.Command{
		Use:   "encrypt [plaintext]",
		Short: "encrypt a message under a seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncrypt,
	}

	decryptCmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "decrypt base64 ciphertext under a seed",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecrypt,
	}

	deriveKeyCmd := &cobra.Command{
		Use:   "derive-key",
		Short: "derive a standalone key from a seed",
		RunE:  runDeriveKey,
	}

	entropyCmd := &cobra.Command{
		Use:   "entropy",
		Short: "measure keystream entropy",
		RunE:  runEntropy,
	}
	entropyCmd.Flags().IntVar(&length, "length", 0, "sample length in bytes")
	entropyCmd.Flags().BoolVar(&saveReport, "save", false, "persist the report")
	entropyCmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw JSON")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate per-map lyapunov exponents",
		RunE:  runLyapunov,
	}
	lyapunovCmd.Flags().StringSliceVar(&mapNames, "maps", nil, "maps to analyze (default all)")
	lyapunovCmd.Flags().IntVar(&iterations, "iterations", 0, "estimation iterations")
	lyapunovCmd.Flags().BoolVar(&saveReport, "save", false, "persist the report")
	lyapunovCmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw JSON")

	avalancheCmd := &cobra.Command{
		Use:   "avalanche",
		Short: "measure seed-bit avalanche on the cipher",
		RunE:  runAvalanche,
	}
	avalancheCmd.Flags().StringVar(&sampleText, "plaintext", "", "sample plaintext")
	avalancheCmd.Flags().IntVar(&trials, "trials", 0, "seed perturbation trials")
	avalancheCmd.Flags().BoolVar(&saveReport, "save", false, "persist the report")
	avalancheCmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw JSON")

	statisticalCmd := &cobra.Command{
		Use:   "statistical",
		Short: "run the randomness test suite",
		RunE:  runStatistical,
	}
	statisticalCmd.Flags().IntVar(&length, "length", 0, "sample length in bytes")
	statisticalCmd.Flags().BoolVar(&saveReport, "save", false, "persist the report")
	statisticalCmd.Flags().BoolVar(&jsonOut, "json", false, "emit raw JSON")

	attractorCmd := &cobra.Command{
		Use:   "attractor",
		Short: "export a lorenz attractor trajectory as CSV",
		RunE:  runAttractor,
	}
	attractorCmd.Flags().IntVar(&points, "points", 5000, "trajectory points")
	attractorCmd.Flags().StringVar(&outFile, "out", "attractor.csv", "output file")

	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "list saved reports",
		RunE:  listReports,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved report",
		Args:  cobra.ExactArgs(1),
		RunE:  showReport,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch keystream entropy converge in the terminal",
		RunE:  runLive,
	}

	rootCmd.AddCommand(encryptCmd, decryptCmd, deriveKeyCmd, entropyCmd, lyapunovCmd,
		avalancheCmd, statisticalCmd, attractorCmd, reportsCmd, showCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: preset as the base,
// then config file, then explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("logistic-r") {
		cfg.Params.LogisticR = logisticR
	}
	if changed("henon-a") {
		cfg.Params.HenonA = henonA
	}
	if changed("henon-b") {
		cfg.Params.HenonB = henonB
	}
	if changed("lorenz-sigma") {
		cfg.Params.LorenzSigma = lorenzSigma
	}
	if changed("lorenz-rho") {
		cfg.Params.LorenzRho = lorenzRho
	}
	if changed("lorenz-beta") {
		cfg.Params.LorenzBeta = lorenzBeta
	}
	if changed("sine-mu") {
		cfg.Params.SineMu = sineMu
	}
	if changed("w-logistic") {
		cfg.Mixing.Logistic = wLogistic
	}
	if changed("w-henon") {
		cfg.Mixing.Henon = wHenon
	}
	if changed("w-lorenz") {
		cfg.Mixing.Lorenz = wLorenz
	}
	if changed("w-sine") {
		cfg.Mixing.Sine = wSine
	}
	if changed("strict") {
		cfg.StrictParams = strict
	}
	if changed("burn-in") {
		cfg.BurnIn = burnIn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newService(cmd *cobra.Command) (*api.Service, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return api.NewService(cfg, log), cfg, nil
}

func requireSeed() error {
	if seed == "" {
		return fmt.Errorf("--seed is required")
	}
	return nil
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, _, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Encrypt(context.Background(), api.EncryptRequest{Plaintext: args[0], Seed: seed})
	if err != nil {
		return err
	}

	fmt.Print(viz.RenderWarnings(resp.Warnings))
	fmt.Println(resp.Ciphertext)
	return nil
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, _, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Decrypt(context.Background(), api.DecryptRequest{Ciphertext: args[0], Seed: seed})
	if err != nil {
		return err
	}

	fmt.Print(viz.RenderWarnings(resp.Warnings))
	fmt.Println(resp.Plaintext)
	return nil
}

func runDeriveKey(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, _, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.DeriveKey(context.Background(), api.DeriveKeyRequest{Seed: seed})
	if err != nil {
		return err
	}

	fmt.Print(viz.RenderWarnings(resp.Warnings))
	fmt.Printf("key:  %s\n", resp.Key)
	fmt.Printf("salt: %s\n", resp.Salt)
	return nil
}

func runEntropy(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, cfg, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Entropy(context.Background(), api.EntropyRequest{Seed: seed, Length: length})
	if err != nil {
		return err
	}

	if jsonOut {
		return store.WriteReportJSON("-", resp)
	}
	fmt.Print(viz.RenderWarnings(resp.Warnings))
	fmt.Print(viz.RenderEntropy(resp.EntropyReport))

	if saveReport {
		return saveRun(cfg, "entropy", resp.EntropyReport, map[string]float64{
			"entropy": resp.Entropy,
		})
	}
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Lyapunov(context.Background(), api.LyapunovRequest{Maps: mapNames, Iterations: iterations})
	if err != nil {
		return err
	}

	if jsonOut {
		return store.WriteReportJSON("-", resp)
	}
	fmt.Print(viz.RenderLyapunov(resp))

	if saveReport {
		summary := make(map[string]float64, len(resp))
		for name, res := range resp {
			summary[name] = res.Lambda
		}
		return saveRun(cfg, "lyapunov", resp, summary)
	}
	return nil
}

func runAvalanche(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, cfg, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Avalanche(context.Background(), api.AvalancheRequest{
		Seed:      seed,
		Plaintext: sampleText,
		Trials:    trials,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return store.WriteReportJSON("-", resp)
	}
	fmt.Print(viz.RenderWarnings(resp.Warnings))
	fmt.Print(viz.RenderAvalanche(resp.AvalancheReport))

	if saveReport {
		return saveRun(cfg, "avalanche", resp.AvalancheReport, map[string]float64{
			"mean_flip": resp.MeanFlipPercentage,
		})
	}
	return nil
}

func runStatistical(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	svc, cfg, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Statistical(context.Background(), api.StatisticalRequest{Seed: seed, Length: length})
	if err != nil {
		return err
	}

	if jsonOut {
		return store.WriteReportJSON("-", resp)
	}
	fmt.Print(viz.RenderStatistical(resp.Tests, resp.Summary))

	if saveReport {
		rep := metrics.SuiteReport{Tests: resp.Tests, Summary: resp.Summary}
		return saveRun(cfg, "statistical", rep, map[string]float64{
			"pass_rate": resp.Summary.PassRate,
		})
	}
	return nil
}

func runAttractor(cmd *cobra.Command, args []string) error {
	svc, _, err := newService(cmd)
	if err != nil {
		return err
	}

	resp, err := svc.Attractor(context.Background(), api.AttractorRequest{Points: points})
	if err != nil {
		return err
	}

	if err := store.WriteAttractorCSV(outFile, resp.Points); err != nil {
		return err
	}
	fmt.Printf("wrote %d points to %s\n", resp.NPoints, outFile)
	return nil
}

func saveRun(cfg *config.Config, kind string, report any, summary map[string]float64) error {
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(kind, seed, cfg.Params, summary, report)
	if err != nil {
		return err
	}
	fmt.Printf("saved report: %s\n", runID)
	return nil
}

func listReports(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no reports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.SeedDigest,
		)
	}
	return w.Flush()
}

func showReport(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("report: %s\nkind: %s\nsaved: %s\n\n",
		meta.ID, meta.Kind, meta.Timestamp.Format("2006-01-02 15:04:05"))

	switch meta.Kind {
	case "entropy":
		var rep metrics.EntropyReport
		if err := st.LoadReport(runID, &rep); err != nil {
			return err
		}
		fmt.Print(viz.RenderEntropy(rep))
	case "avalanche":
		var rep metrics.AvalancheReport
		if err := st.LoadReport(runID, &rep); err != nil {
			return err
		}
		fmt.Print(viz.RenderAvalanche(rep))
	case "lyapunov":
		var rep map[string]metrics.LyapunovResult
		if err := st.LoadReport(runID, &rep); err != nil {
			return err
		}
		fmt.Print(viz.RenderLyapunov(rep))
	case "statistical":
		var rep metrics.SuiteReport
		if err := st.LoadReport(runID, &rep); err != nil {
			return err
		}
		fmt.Print(viz.RenderStatistical(rep.Tests, rep.Summary))
	default:
		return store.WriteReportJSON("-", meta)
	}
	return nil
}

// checkParams applies the same out-of-range policy the service layer
// uses: an error under strict mode, degraded-security warnings
// otherwise. The live monitor bypasses the service, so it must apply
// the policy itself.
func checkParams(cfg *config.Config) ([]string, error) {
	var warnings []string
	for _, w := range cfg.Params.Validate() {
		if cfg.StrictParams {
			return nil, fmt.Errorf("parameter out of range: %s", w)
		}
		warnings = append(warnings, "degraded security: "+w.String())
	}
	return warnings, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := requireSeed(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	warnings, err := checkParams(cfg)
	if err != nil {
		return err
	}
	fmt.Print(viz.RenderWarnings(warnings))
	return live.Run(seed, cfg.Params, cfg.Weights(), cfg.BurnIn)
}
