package models

// SourceUnit represents one Apex implementation class discovered by a scan
type SourceUnit struct {
	// Name is the class name without extension (e.g., "AccountManager")
	Name string `json:"name"`

	// Path is the full path to the class file within the scanned tree
	Path string `json:"path"`

	// Dir is the directory containing the class file
	Dir string `json:"dir"`

	// TestPath is the expected path of the co-located test class
	// (e.g., "<Dir>/AccountManagerTest.cls"), whether or not it exists
	TestPath string `json:"testPath"`

	// Covered reports whether the expected test class exists
	Covered bool `json:"covered"`
}

// CoverageReport is the aggregate result of one scan
type CoverageReport struct {
	// Root is the directory the scan was run against
	Root string `json:"root"`

	// Total is the number of SourceUnits found
	Total int `json:"total"`

	// Covered is the number of SourceUnits with a matching test class
	Covered int `json:"covered"`

	// Units are all discovered SourceUnits in traversal order
	Units []SourceUnit `json:"units"`

	// Uncovered are the SourceUnits lacking a test class, in traversal order
	Uncovered []SourceUnit `json:"uncovered"`
}

// HasUnits reports whether the scan found any SourceUnits at all.
// A report with no units has no defined percentage.
func (r *CoverageReport) HasUnits() bool {
	return r.Total > 0
}

// Percentage returns the coverage percentage as a truncated integer.
// Callers must check HasUnits first; an empty report returns 0 without
// dividing.
func (r *CoverageReport) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return r.Covered * 100 / r.Total
}

// MeetsThreshold reports whether the scan passes the given percentage
// threshold. A report with uncovered units never passes, regardless of
// percentage. An empty report passes trivially.
func (r *CoverageReport) MeetsThreshold(threshold int) bool {
	if !r.HasUnits() {
		return true
	}
	return len(r.Uncovered) == 0 && r.Percentage() >= threshold
}
