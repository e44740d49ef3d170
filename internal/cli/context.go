package cli

import (
	"fmt"

	"github.com/jakoblorz/apexcov/internal/config"
	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/models"
	"github.com/jakoblorz/apexcov/internal/scanner"
	"github.com/spf13/cobra"
)

// scanContext bundles everything a command derives from the shared scan
// flags: the effective configuration and the scan result.
type scanContext struct {
	Config    *config.Config
	Root      string
	Threshold int
	Report    *models.CoverageReport
}

// addScanFlags registers the flags shared by every command that scans
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", ".", "Root directory to scan for Apex classes")
	cmd.Flags().String("extension", "", "Implementation artifact extension (default from config, .cls)")
	cmd.Flags().String("suffix", "", "Reserved test class suffix (default from config, Test)")
	cmd.Flags().Int("threshold", -1, "Minimum passing coverage percentage (default from config, 75)")
	cmd.Flags().String("config", "", "Path to config file (default .apexcov/config.yaml)")
}

// resolveScan loads configuration, applies flag overrides, and runs one scan
func resolveScan(fs filesystem.FileSystem, cmd *cobra.Command) (*scanContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	root, _ := cmd.Flags().GetString("root")
	extension, _ := cmd.Flags().GetString("extension")
	suffix, _ := cmd.Flags().GetString("suffix")
	threshold, _ := cmd.Flags().GetInt("threshold")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if extension != "" {
		cfg.Scanner.Extension = extension
	}
	if suffix != "" {
		cfg.Scanner.TestSuffix = suffix
	}
	if threshold >= 0 {
		cfg.Coverage.Threshold = threshold
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := scanner.NewScanner(fs,
		scanner.WithExtension(cfg.Scanner.Extension),
		scanner.WithTestSuffix(cfg.Scanner.TestSuffix),
		scanner.WithIgnoreFile(cfg.Scanner.IgnoreFile),
	)

	report, err := s.Scan(root)
	if err != nil {
		return nil, err
	}

	return &scanContext{
		Config:    cfg,
		Root:      root,
		Threshold: cfg.Coverage.Threshold,
		Report:    report,
	}, nil
}
