package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/llm"
	"github.com/jakoblorz/apexcov/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultAPIVersion is the Salesforce API version stamped into sidecar
// descriptors
const DefaultAPIVersion = "59.0"

// metaTemplate is the fixed sidecar descriptor written beside every
// generated test class. Both fields are static per run.
const metaTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<ApexClass xmlns="http://soap.sforce.com/2006/04/metadata">
    <apiVersion>%s</apiVersion>
    <status>Active</status>
</ApexClass>
`

// Options tunes one dispatch run
type Options struct {
	// Concurrency bounds parallel generations; units touch disjoint output
	// paths, so parallel workers never collide
	Concurrency int

	// Timeout bounds each unit's collaborator call; an expired unit is
	// recorded as failed, not retried
	Timeout time.Duration

	// APIVersion is stamped into the sidecar descriptor
	APIVersion string
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	return opts
}

// Dispatcher drives per-unit test generation for uncovered units
type Dispatcher struct {
	fs  filesystem.FileSystem
	gen llm.Generator
	log *logrus.Entry
}

// NewDispatcher creates a Dispatcher
func NewDispatcher(fs filesystem.FileSystem, gen llm.Generator) *Dispatcher {
	return &Dispatcher{
		fs:  fs,
		gen: gen,
		log: logrus.WithField("component", "generator"),
	}
}

// Run generates test classes for the given units. Failures are per-unit
// and never abort siblings; the returned summary separates generated units
// from failures. Run returns an error only when ctx is cancelled, in which
// case the summary covers the units attempted before the abort.
func (d *Dispatcher) Run(ctx context.Context, units []models.SourceUnit, opts Options) (*models.RunSummary, error) {
	opts = opts.withDefaults()

	runID, err := gonanoid.New(8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	summary := &models.RunSummary{
		RunID:     runID,
		Requested: len(units),
	}

	// Gather-then-reduce: each worker writes only its own slot, so the
	// collection needs no lock
	results := make([]models.GenerationResult, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, unit := range units {
		i, unit := i, unit
		// Abort between units, not mid-unit
		if gctx.Err() != nil {
			results[i] = models.Failure(unit, "aborted before start")
			continue
		}

		g.Go(func() error {
			results[i] = d.generateOne(gctx, unit, opts)
			return nil
		})
	}

	waitErr := g.Wait()

	for _, res := range results {
		if res.Succeeded {
			summary.Generated++
		} else {
			summary.Failures = append(summary.Failures, res)
		}
	}

	if waitErr != nil {
		return summary, waitErr
	}
	return summary, ctx.Err()
}

// generateOne handles a single unit: read the class, call the collaborator
// under a per-unit timeout, write the test class and its sidecar. A failure
// at any step removes whatever was written, so a re-scan still reports the
// unit uncovered.
func (d *Dispatcher) generateOne(ctx context.Context, unit models.SourceUnit, opts Options) models.GenerationResult {
	log := d.log.WithFields(logrus.Fields{"class": unit.Name, "test": unit.TestPath})

	body, err := d.fs.ReadFile(unit.Path)
	if err != nil {
		log.WithError(err).Warn("failed to read class")
		return models.Failure(unit, fmt.Sprintf("failed to read class: %v", err))
	}

	unitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	text, err := d.gen.GenerateTest(unitCtx, unit.Name, string(body))
	if err != nil {
		log.WithError(err).Warn("generation failed")
		d.cleanup(unit)
		return models.Failure(unit, fmt.Sprintf("generation failed: %v", err))
	}

	if err := d.fs.WriteFile(unit.TestPath, []byte(text+"\n"), 0644); err != nil {
		log.WithError(err).Warn("failed to write test class")
		d.cleanup(unit)
		return models.Failure(unit, fmt.Sprintf("failed to write test class: %v", err))
	}

	meta := fmt.Sprintf(metaTemplate, opts.APIVersion)
	if err := d.fs.WriteFile(metaPath(unit), []byte(meta), 0644); err != nil {
		log.WithError(err).Warn("failed to write sidecar descriptor")
		d.cleanup(unit)
		return models.Failure(unit, fmt.Sprintf("failed to write sidecar descriptor: %v", err))
	}

	log.Info("test class generated")
	return models.Success(unit, text)
}

// cleanup removes any partial artifacts for a failed unit
func (d *Dispatcher) cleanup(unit models.SourceUnit) {
	for _, path := range []string{unit.TestPath, metaPath(unit)} {
		if d.fs.Exists(path) {
			if err := d.fs.Remove(path); err != nil {
				d.log.WithError(err).WithField("path", path).Warn("failed to remove partial artifact")
			}
		}
	}
}

func metaPath(unit models.SourceUnit) string {
	return unit.TestPath + "-meta.xml"
}
