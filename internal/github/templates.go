package github

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/apexcov/internal/models"
)

// CommentMarker identifies the sticky coverage comment so re-runs update it
// instead of stacking new comments
const CommentMarker = "<!-- apexcov:coverage-report -->"

// DefaultCommentTemplate renders a CoverageReport as a PR comment: a table
// of units with their covered state, then the summary. The percentage is
// never shown without the total it was computed from.
const DefaultCommentTemplate = CommentMarker + `
## 🧪 Apex Test Coverage

{{- if not .Report.HasUnits }}

No Apex classes found under ` + "`{{ .Report.Root }}`" + ` — nothing to cover.
{{- else }}

| Class | Test Class | Covered |
|-------|------------|---------|
{{- range .Report.Units }}
| {{ .Name }} | {{ base .TestPath }} | {{ if .Covered }}✅{{ else }}❌{{ end }} |
{{- end }}

**{{ .Report.Covered }} of {{ .Report.Total }} classes covered ({{ .Report.Percentage }}%)** — threshold {{ .Threshold }}%: {{ if .Passed }}**pass** ✅{{ else }}**fail** ❌{{ end }}
{{- if .Report.Uncovered }}

Missing test classes:
{{- range .Report.Uncovered }}
- ` + "`{{ .Name }}`" + ` (expected ` + "`{{ base .TestPath }}`" + `)
{{- end }}
{{- end }}
{{- end }}
`

// CommentData is the template context for the coverage comment
type CommentData struct {
	Report    *models.CoverageReport
	Threshold int
	Passed    bool
}

// RenderCoverageComment renders the sticky PR comment for a report
func RenderCoverageComment(report *models.CoverageReport, threshold int) (string, error) {
	tmpl, err := template.New("comment").Funcs(sprig.TxtFuncMap()).Parse(DefaultCommentTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, CommentData{
		Report:    report,
		Threshold: threshold,
		Passed:    report.MeetsThreshold(threshold),
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// FindCoverageComment returns the existing sticky coverage comment, or nil
func FindCoverageComment(comments []*IssueComment) *IssueComment {
	for _, comment := range comments {
		if strings.Contains(comment.Body, CommentMarker) {
			return comment
		}
	}
	return nil
}
