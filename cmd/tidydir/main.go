package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fenilsonani/tidydir/internal/cleaner"
	"github.com/fenilsonani/tidydir/internal/config"
	"github.com/fenilsonani/tidydir/internal/logging"
	"github.com/fenilsonani/tidydir/internal/reporter"
	"github.com/fenilsonani/tidydir/internal/security"
	"github.com/fenilsonani/tidydir/internal/ui"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	dryRun     bool
	assumeYes  bool
	assumeNo   bool
	useTUI     bool
	showLive   bool
	logLevel   string
	logFormat  string
	outputFmt  string
	outputFile string
	forceInit  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tidydir [directory]",
	Short: "Sort a folder by file type, then clear out empty folders and duplicates",
	Long: `tidydir organizes a directory in three passes:
  1. every file is moved into a category folder at the root, chosen by extension
  2. folders left empty are offered for deletion, deepest first
  3. files with identical content are offered for deletion, one pair at a time

Application bundles (.app) are never entered. Nothing is ever overwritten.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:    cobra.MaximumNArgs(1),
	RunE:    runPasses(passAll),
}

var organizeCmd = &cobra.Command{
	Use:   "organize [directory]",
	Short: "Move files into category folders",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPasses(passOrganize),
}

var emptyCmd = &cobra.Command{
	Use:   "empty [directory]",
	Short: "Delete empty folders",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPasses(passEmpty),
}

var dupesCmd = &cobra.Command{
	Use:   "dupes [directory]",
	Short: "Delete duplicate files",
	Long: `Hashes every file with SHA-256 and offers one file of each identical pair
for deletion. A file whose name contains "copy" is preferred for deletion.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPasses(passDupes),
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := resolveConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist.")
			fmt.Println("\nTo create one:")
			fmt.Printf("  tidydir config init --config %s\n", cfgPath)
			return nil
		}

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("Directory:   %s\n", cfg.Directory)
		fmt.Printf("Bundles:     %s\n", strings.Join(cfg.BundleSuffixes, ", "))
		if len(cfg.ExcludePatterns) > 0 {
			fmt.Printf("Excluded:    %s\n", strings.Join(cfg.ExcludePatterns, ", "))
		}
		if len(cfg.ProtectedPaths) > 0 {
			fmt.Printf("Protected:   %s\n", strings.Join(cfg.ProtectedPaths, ", "))
		}
		fmt.Println("Categories (first match wins):")
		declared := false
		for _, cat := range cfg.Categories {
			fmt.Printf("  %-14s %s\n", cat.Name, strings.Join(cat.Extensions, " "))
			declared = declared || cat.Name == config.FallbackCategory
		}
		if !declared {
			fmt.Printf("  %-14s everything else\n", config.FallbackCategory)
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath
		if cfgPath == "" {
			var err error
			if cfgPath, err = config.GetConfigPath(); err != nil {
				return err
			}
		}

		if err := writeDefaultConfig(cfgPath, forceInit); err != nil {
			return err
		}
		fmt.Printf("Config written to: %s\n", cfgPath)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ./config.json, then ~/.config/tidydir/config.json)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	// Run flags, shared by the root command and every pass
	for _, cmd := range []*cobra.Command{rootCmd, organizeCmd, emptyCmd, dupesCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without touching anything")
		cmd.Flags().StringVar(&outputFmt, "output", "summary", "report format (summary, table, json, yaml)")
		cmd.Flags().StringVar(&outputFile, "file", "", "save the report to a file")
	}
	for _, cmd := range []*cobra.Command{rootCmd, emptyCmd, dupesCmd} {
		cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "delete without asking (answer all)")
		cmd.Flags().BoolVarP(&assumeNo, "no", "n", false, "never delete, only report (answer no)")
		cmd.Flags().BoolVar(&useTUI, "tui", false, "ask with an interactive terminal prompt")
		cmd.MarkFlagsMutuallyExclusive("yes", "no", "tui")
	}
	for _, cmd := range []*cobra.Command{rootCmd, dupesCmd} {
		cmd.Flags().BoolVarP(&showLive, "live", "l", false, "show live hashing progress")
	}

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(emptyCmd)
	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(configCmd)
}

func runPasses(passes pass) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if cmd.Flags().Changed("dry-run") {
			cfg.DryRun = dryRun
		}
		if len(args) == 1 {
			if cfg.Directory, err = config.ExpandPath(args[0]); err != nil {
				return err
			}
		}

		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}

		root, err := resolveRoot(cfg.Directory, cfg.ProtectedPaths)
		if err != nil {
			return err
		}

		r := &runner{
			cfg:     cfg,
			root:    root,
			logger:  logger,
			decider: newDecider(cfg.DryRun),
		}
		if showLive {
			progress := ui.NewScanProgress(os.Stderr)
			r.progress = progress.Update
			r.progressDone = progress.Finish
		}

		report, err := r.run(passes)
		if err != nil {
			return err
		}
		report.Finished = time.Now()

		if outputFile != "" {
			if err := reporter.SaveToFile(report, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		fmt.Println()
		if err := reporter.New(os.Stdout, format).Report(report); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	}
}

// loadConfig reads --config, else ./config.json, else the per-user config
func loadConfig() (*config.Config, error) {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(cfgPath)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.FindConfig()
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}
	return config.Save(config.GetDefault(), path)
}

// resolveRoot refuses system locations and the configured protected paths,
// and returns the root with symlinks resolved, since the walks never follow
// a symlinked root
func resolveRoot(dir string, protected []string) (string, error) {
	validator := security.NewPathValidator()
	for _, path := range protected {
		validator.AddProtectedPath(path)
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			validator.AddProtectedPath(resolved)
		}
	}
	if err := validator.ValidateRoot(dir); err != nil {
		return "", err
	}

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return root, nil
}

func newLogger() (*slog.Logger, error) {
	level := logLevel
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:   level,
		Format:  logFormat,
		Writer:  os.Stderr,
		NoColor: !ui.IsTerminal(os.Stderr),
	})
}

// newDecider picks who answers deletion prompts. Dry runs without --yes,
// --no or --tui report everything that would be deleted.
func newDecider(dryRun bool) cleaner.Decider {
	switch {
	case assumeYes:
		return cleaner.Always(cleaner.DecisionAll)
	case assumeNo:
		return cleaner.Always(cleaner.DecisionNo)
	case useTUI:
		return ui.NewTUIDecider(os.Stdin, os.Stdout)
	case dryRun:
		return cleaner.Always(cleaner.DecisionAll)
	default:
		return ui.NewLinePrompter(os.Stdin, os.Stdout)
	}
}
