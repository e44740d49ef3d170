package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jakoblorz/apexcov/internal/config"
	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/generator"
	"github.com/jakoblorz/apexcov/internal/git"
	"github.com/jakoblorz/apexcov/internal/llm"
	"github.com/jakoblorz/apexcov/internal/models"
	"github.com/jakoblorz/apexcov/internal/prompt"
	tuigenerate "github.com/jakoblorz/apexcov/internal/tui/generate"
	"github.com/spf13/cobra"
)

// GeneratorFactory builds the Generation Collaborator for a run. Injected
// so tests can substitute a mock.
type GeneratorFactory func(cfg *config.Config, prompts *prompt.Set) (llm.Generator, error)

func defaultGeneratorFactory(cfg *config.Config, prompts *prompt.Set) (llm.Generator, error) {
	return llm.NewClient(cfg, prompts)
}

// GenerateCommand handles the generate command
type GenerateCommand struct {
	fs      filesystem.FileSystem
	git     git.GitClient
	factory GeneratorFactory
}

// NewGenerateCommand creates a new generate command. A nil factory uses the
// real OpenAI-backed generator.
func NewGenerateCommand(fs filesystem.FileSystem, gitClient git.GitClient, factory GeneratorFactory) *cobra.Command {
	if factory == nil {
		factory = defaultGeneratorFactory
	}

	cmd := &GenerateCommand{
		fs:      fs,
		git:     gitClient,
		factory: factory,
	}

	cobraCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate missing Apex test classes with AI",
		Long: `Scans the tree and asks the configured completion service to author a
test class for every uncovered Apex class. Generated tests are written
beside their subjects together with a -meta.xml sidecar; a failed
generation leaves no files behind.`,
		Example: `  # Generate tests for everything uncovered
  apexcov generate --root force-app

  # Only classes touched since main (e.g., in a PR)
  apexcov generate --root force-app --changed-only --base origin/main

  # Pick the classes interactively
  apexcov generate --root force-app --interactive`,
		RunE: cmd.Run,
	}

	addScanFlags(cobraCmd)
	cobraCmd.Flags().Int("concurrency", 4, "Parallel generation workers")
	cobraCmd.Flags().Duration("timeout", 2*time.Minute, "Per-class generation timeout (default from config)")
	cobraCmd.Flags().String("api-version", generator.DefaultAPIVersion, "Salesforce API version for sidecar descriptors")
	cobraCmd.Flags().Bool("changed-only", false, "Only generate for classes changed since --base")
	cobraCmd.Flags().String("base", "origin/main", "Base ref for --changed-only")
	cobraCmd.Flags().Bool("dry-run", false, "List the classes that would be generated, then exit")
	cobraCmd.Flags().Bool("interactive", false, "Select classes interactively before generating")
	cobraCmd.Flags().String("prompt", "", "Path to a custom prompt file (frontmatter + template)")

	return cobraCmd
}

// Run executes the generate command
func (c *GenerateCommand) Run(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	apiVersion, _ := cmd.Flags().GetString("api-version")
	changedOnly, _ := cmd.Flags().GetBool("changed-only")
	base, _ := cmd.Flags().GetString("base")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	interactive, _ := cmd.Flags().GetBool("interactive")
	promptPath, _ := cmd.Flags().GetString("prompt")

	sc, err := resolveScan(c.fs, cmd)
	if err != nil {
		return err
	}

	// The flag wins when set explicitly; otherwise the configured timeout
	// applies
	if !cmd.Flags().Changed("timeout") {
		timeout = sc.Config.API.Timeout
	}

	units := sc.Report.Uncovered
	if len(units) == 0 {
		fmt.Println("✓ Every Apex class already has a test class")
		return nil
	}

	if changedOnly {
		units, err = c.filterChanged(cmd.Context(), units, base)
		if err != nil {
			return err
		}
		if len(units) == 0 {
			fmt.Printf("✓ No uncovered classes changed since %s\n", base)
			return nil
		}
	}

	if interactive {
		units, err = tuigenerate.NewFlow().Run(units)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		if len(units) == 0 {
			fmt.Println("Aborted, nothing generated")
			return nil
		}
	}

	if dryRun {
		fmt.Printf("Would generate %d test class(es):\n", len(units))
		for _, unit := range units {
			fmt.Printf("  %s → %s\n", unit.Name, unit.TestPath)
		}
		return nil
	}

	prompts := prompt.Defaults()
	if promptPath != "" {
		prompts, err = prompt.LoadFile(c.fs, promptPath)
		if err != nil {
			return err
		}
	}

	gen, err := c.factory(sc.Config, prompts)
	if err != nil {
		return err
	}

	fmt.Printf("🤖 Generating %d test class(es)...\n\n", len(units))

	dispatcher := generator.NewDispatcher(c.fs, gen)
	summary, err := dispatcher.Run(cmd.Context(), units, generator.Options{
		Concurrency: concurrency,
		Timeout:     timeout,
		APIVersion:  apiVersion,
	})
	if err != nil {
		return fmt.Errorf("generation run aborted: %w", err)
	}

	c.printSummary(summary)
	return nil
}

// filterChanged keeps only units whose class file was changed since base
func (c *GenerateCommand) filterChanged(ctx context.Context, units []models.SourceUnit, base string) ([]models.SourceUnit, error) {
	gitClient := c.git.WithContext(ctx)

	isRepo, err := gitClient.IsGitRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to check git repository: %w", err)
	}
	if !isRepo {
		return nil, fmt.Errorf("--changed-only requires a git repository")
	}

	changed, err := gitClient.GetChangedFiles(base)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	changedSet := make(map[string]bool, len(changed))
	for _, path := range changed {
		changedSet[filepath.Clean(path)] = true
	}

	var result []models.SourceUnit
	for _, unit := range units {
		if changedSet[filepath.Clean(unit.Path)] {
			result = append(result, unit)
		}
	}
	return result, nil
}

func (c *GenerateCommand) printSummary(summary *models.RunSummary) {
	fmt.Printf("Run %s: %d of %d test class(es) generated\n", summary.RunID, summary.Generated, summary.Requested)
	for _, failure := range summary.Failures {
		fmt.Printf("  ⚠️  %s: %s\n", failure.Unit.Name, failure.Reason)
	}
}
