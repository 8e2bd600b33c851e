// smebench: industry benchmark data engine for small and medium businesses.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seenimoa/smebench/api"
	"github.com/seenimoa/smebench/internal/benchmark"
	"github.com/seenimoa/smebench/internal/config"
	"github.com/seenimoa/smebench/internal/logging"
	"github.com/seenimoa/smebench/internal/ui"
	"github.com/seenimoa/smebench/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by the root PersistentPreRunE.
var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smebench",
	Short: "Industry benchmarks for small and medium businesses",
	Long: `smebench generates reproducible industry benchmark series for SMEs,
adjusted for company size, region, growth and seasonality, and compares a
business's own metrics against them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			if _, err := logging.ParseLevel(lvl); err != nil {
				return err
			}
			cfg.Logging.Level = lvl
		}
		if cmd.Flags().Changed("seed") {
			cfg.Benchmark.Seed, _ = cmd.Flags().GetInt64("seed")
		}

		logger = logging.New(cfg.Logging, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64("seed", 0, "generator seed override")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(industriesCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(configCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "smebench %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := api.NewServer(cfg, api.WithLogger(logger), api.WithVersion(version))
		logger.Info("starting smebench",
			"version", version,
			"seed", cfg.Benchmark.Seed,
			"config_file", cfg.FilePath())
		return srv.ListenAndServe(ctx, cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port override")
}

// --- Industries Command ---

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List supported industries",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.NewPrinter(cmd.OutOrStdout()).List("Industries", benchmark.Industries())
	},
}

// --- Metrics Command ---

var metricsCmd = &cobra.Command{
	Use:   "metrics [industry]",
	Short: "List the metrics available for an industry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		industry := strings.ToLower(args[0])
		info, err := benchmark.IndustryDetails(industry)
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).List("Metrics for "+industry, info.AvailableMetrics)
		return nil
	},
}

// --- Series Command ---

var seriesCmd = &cobra.Command{
	Use:   "series [industry] [metric...]",
	Short: "Generate benchmark series for an industry",
	Long:  "Generate benchmark series for an industry. With no metrics, every metric of the industry is generated.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		req.Metrics = args[1:]
		if freq, _ := cmd.Flags().GetString("frequency"); freq != "" {
			req.Frequency = models.Frequency(strings.ToLower(freq))
		}
		if req.StartDate, err = dateFlag(cmd, "start"); err != nil {
			return err
		}
		if req.EndDate, err = dateFlag(cmd, "end"); err != nil {
			return err
		}

		engine := benchmark.NewEngineFromConfig(cfg.Benchmark, logger)
		series, err := engine.Repository.Series(cmd.Context(), req)
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).Series(series)
		return nil
	},
}

func init() {
	addDemographicFlags(seriesCmd)
	seriesCmd.Flags().String("start", "", "first period, YYYY-MM-DD (default: end minus the configured window)")
	seriesCmd.Flags().String("end", "", "last period, YYYY-MM-DD (default: today)")
	seriesCmd.Flags().String("frequency", "", "monthly or quarterly (default from config)")
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare [industry] metric=value...",
	Short: "Compare your metrics against the industry benchmark",
	Example: `  smebench compare retail revenue_per_employee=175000 profit_margin=0.09 --size small --region midwest
  smebench compare technology monthly_recurring_revenue=62000 --period 2024-03-01`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		values, err := parseMetricValues(args[1:])
		if err != nil {
			return err
		}
		var period *models.Date
		if p, err := dateFlag(cmd, "period"); err != nil {
			return err
		} else if !p.IsZero() {
			period = &p
		}

		engine := benchmark.NewEngineFromConfig(cfg.Benchmark, logger)
		batch, err := engine.Comparator.CompareMany(cmd.Context(), values, req, period)
		if err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).Comparisons(batch)
		if len(batch.Results) == 0 {
			return fmt.Errorf("no metric could be compared")
		}
		return nil
	},
}

func init() {
	addDemographicFlags(compareCmd)
	compareCmd.Flags().String("period", "", "compare against the point nearest this date, YYYY-MM-DD (default: latest)")
}

// --- Config Command ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		if path := cfg.FilePath(); path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", path)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config/config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveToFile(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// --- Helpers ---

func addDemographicFlags(cmd *cobra.Command) {
	cmd.Flags().String("size", string(models.SizeSmall), "company size: small, medium or large")
	cmd.Flags().String("region", string(models.RegionNational), "region: national, northeast, southeast, midwest, west or southwest")
}

// requestFromFlags builds the demographic part of a request.
func requestFromFlags(cmd *cobra.Command, industry string) (models.BenchmarkRequest, error) {
	sizeFlag, _ := cmd.Flags().GetString("size")
	regionFlag, _ := cmd.Flags().GetString("region")

	size, err := models.ParseCompanySize(sizeFlag)
	if err != nil {
		return models.BenchmarkRequest{}, err
	}
	region, err := models.ParseRegion(regionFlag)
	if err != nil {
		return models.BenchmarkRequest{}, err
	}
	return models.BenchmarkRequest{
		Industry:    strings.ToLower(industry),
		CompanySize: size,
		Region:      region,
	}, nil
}

func dateFlag(cmd *cobra.Command, name string) (models.Date, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// parseMetricValues parses metric=value arguments.
func parseMetricValues(args []string) (map[string]float64, error) {
	values := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected metric=value, got %q", arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("metric %s: invalid value %q", name, raw)
		}
		values[name] = v
	}
	return values, nil
}
