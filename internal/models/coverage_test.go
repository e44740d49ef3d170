package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentageTruncates(t *testing.T) {
	report := &CoverageReport{Total: 3, Covered: 2}
	require.Equal(t, 66, report.Percentage())

	report = &CoverageReport{Total: 3, Covered: 1}
	require.Equal(t, 33, report.Percentage())
}

func TestPercentageEmptyReportIsSafe(t *testing.T) {
	report := &CoverageReport{}
	require.False(t, report.HasUnits())
	require.Equal(t, 0, report.Percentage())
}

func TestPercentageZeroCovered(t *testing.T) {
	report := &CoverageReport{Total: 5}
	require.Equal(t, 0, report.Percentage())
}

func TestMeetsThreshold(t *testing.T) {
	covered := &CoverageReport{Total: 4, Covered: 4}
	require.True(t, covered.MeetsThreshold(75))
	require.True(t, covered.MeetsThreshold(100))

	// Any uncovered unit fails, even above the percentage threshold
	mostlyCovered := &CoverageReport{
		Total:     10,
		Covered:   9,
		Uncovered: []SourceUnit{{Name: "Straggler"}},
	}
	require.False(t, mostlyCovered.MeetsThreshold(75))

	// An empty report passes trivially
	empty := &CoverageReport{}
	require.True(t, empty.MeetsThreshold(75))
}
