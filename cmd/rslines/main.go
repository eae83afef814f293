// Package main provides the rslines command-line interface: a Rust
// source-line metrics engine. Grounded on the teacher's cmd/goclean/
// main.go cobra command tree and flag plumbing.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/rslines/internal/accumulate"
	"github.com/ericfisherdev/rslines/internal/analyzer"
	"github.com/ericfisherdev/rslines/internal/classify"
	"github.com/ericfisherdev/rslines/internal/config"
	"github.com/ericfisherdev/rslines/internal/debugdump"
	"github.com/ericfisherdev/rslines/internal/lineindex"
	"github.com/ericfisherdev/rslines/internal/logging"
	"github.com/ericfisherdev/rslines/internal/report"
	"github.com/ericfisherdev/rslines/internal/reporters"
	"github.com/ericfisherdev/rslines/internal/walker"
)

var Version = getVersionFromFile()

var (
	cfgFile     string
	verbose     bool
	outputPath  string
	format      string
	maxFileSize string
	workers     int
	accKind     string
	debugMode   bool
	colorMode   string
	extraTestAttrs []string
)

var rootCmd = &cobra.Command{
	Use:     "rslines",
	Short:   "rslines - line-accurate source metrics for Rust code",
	Version: Version,
	Long: `rslines classifies every physical line of Rust source as blank,
comment, rustdoc, or code, and separates production code from code
reachable only under #[test] or a literal cfg(test) gate.`,
}

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan one or more files or directories and report line metrics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

var debugCmd = &cobra.Command{
	Use:   "debug [paths...]",
	Short: "Dump the per-line classification tags instead of aggregate metrics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode = true
		return runScan(cmd, args)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rslines configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rslines version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rslines %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	scanCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default stdout)")
	scanCmd.Flags().StringVar(&format, "format", "", "output format: text|json")
	scanCmd.Flags().StringVar(&maxFileSize, "max-file-size", "", "maximum file size to analyze, e.g. 2MB")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = number of CPUs)")
	scanCmd.Flags().StringVar(&accKind, "accumulator", "", "accumulator backend: memory|spill")
	scanCmd.Flags().BoolVar(&debugMode, "debug", false, "dump per-line classification tags")
	scanCmd.Flags().StringVar(&colorMode, "color", "", "color mode: auto|always|never")
	scanCmd.Flags().StringArrayVar(&extraTestAttrs, "test-attr", nil, "extra attribute path recognized as test-gating")

	debugCmd.Flags().AddFlagSet(scanCmd.Flags())

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(scanCmd, debugCmd, configCmd, versionCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "rslines.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	return config.Save(config.DefaultConfig(), path)
}

func runScan(cmd *cobra.Command, paths []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return &analyzer.Error{Kind: analyzer.FatalConfigError, Err: err}
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return &analyzer.Error{Kind: analyzer.FatalConfigError, Err: err}
	}

	log := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	maxBytes, err := walker.ParseSize(cfg.Scan.MaxFileSize)
	if err != nil {
		return &analyzer.Error{Kind: analyzer.FatalConfigError, Err: err}
	}
	classify.SetExtraTestAttributes(cfg.TestDetection.ExtraTestAttributes)

	disc := walker.NewDiscoverer(cfg.Scan.Exclude, log)
	files, err := disc.Discover(paths)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	log.WithField("count", len(files)).Info("discovered files")

	var acc accumulateCloser
	if cfg.Scan.Accumulator == "spill" {
		spill, err := accumulate.NewSpill("")
		if err != nil {
			return &analyzer.Error{Kind: analyzer.SpillError, Err: err}
		}
		acc = spill
	} else {
		acc = noopCloser{accumulate.NewMemory()}
	}
	defer acc.Close()

	driver := &walker.Driver{
		Analyzer:    analyzer.New(maxBytes),
		Accumulator: acc,
		Workers:     cfg.Scan.Workers,
		Log:         log,
		Progress: func(done, total int) {
			log.WithField("done", done).WithField("total", total).Debug("scan progress")
		},
	}

	fileErrs, fatal := driver.Run(context.Background(), files)
	for _, fe := range fileErrs {
		log.WithError(fe.Err).WithField("file", fe.Path).Warn("file skipped")
	}
	if fatal != nil {
		return fatal
	}

	if debugMode {
		return runDebugDump(acc, files, cfg)
	}

	out := os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	rep, err := report.Build(acc)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	if cfg.Output.Format == "json" {
		return reporters.JSON(out, rep, true)
	}
	return reporters.Text(out, rep)
}

// runDebugDump re-reads and re-classifies each file (the accumulator
// only holds aggregate FileStats, not the per-line categories the debug
// dump needs) to produce the C8 per-line tag dump.
func runDebugDump(acc accumulateCloser, files []string, cfg *config.Config) error {
	useColor := cfg.Output.Color == "always" || (cfg.Output.Color == "auto" && isTerminal(os.Stdout))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		tree, _, err := classify.ParseRust(data)
		if err != nil {
			continue
		}
		idx := lineindex.Build(data)
		cats := tree.Classify(idx)
		regions := tree.TestRegions(idx)
		if err := debugdump.Dump(os.Stdout, path, data, idx, cats, regions, useColor); err != nil {
			return err
		}
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if format != "" {
		cfg.Output.Format = format
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if maxFileSize != "" {
		cfg.Scan.MaxFileSize = maxFileSize
	}
	if workers != 0 {
		cfg.Scan.Workers = workers
	}
	if accKind != "" {
		cfg.Scan.Accumulator = accKind
	}
	if colorMode != "" {
		cfg.Output.Color = colorMode
	}
	if len(extraTestAttrs) > 0 {
		cfg.TestDetection.ExtraTestAttributes = append(cfg.TestDetection.ExtraTestAttributes, extraTestAttrs...)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
