package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/apexcov/internal/filesystem"
)

// DefaultSystemPrompt frames the collaborator as an Apex test author.
// The response contract is plain code: the dispatcher never parses it
// beyond "non-empty".
const DefaultSystemPrompt = `You are an expert Salesforce Apex developer. You write complete, compilable Apex test classes.

Rules:
- Respond with the full body of a single @isTest class and nothing else.
- Cover the happy path, edge cases (null values, empty lists, boundary conditions), and error cases.
- Use Test.startTest()/Test.stopTest() around the code under test.
- Create all test data inside the test class; never rely on org data (use @testSetup where it helps).
- Use System.assertEquals/System.assert with messages.
- Keep governor limits in mind (bulkify: exercise 200-record scenarios where relevant).`

// DefaultUserTemplate is the per-class request body
const DefaultUserTemplate = `Write an Apex test class named {{ .ClassName }}Test covering the class below.

` + "```apex\n{{ .ClassBody | trim }}\n```" + `

The test class must be named exactly {{ .ClassName }}Test.`

// Set is a resolved pair of prompts plus optional model overrides carried
// by a custom prompt file
type Set struct {
	// System is the system prompt sent verbatim
	System string

	// User is the user prompt template, executed per class
	User *template.Template

	// Model, when non-empty, overrides the configured completion model
	Model string
}

// userData is the template context for the user prompt
type userData struct {
	ClassName string
	ClassBody string
}

// Defaults returns the built-in prompt set
func Defaults() *Set {
	return &Set{
		System: DefaultSystemPrompt,
		User:   template.Must(template.New("user").Funcs(sprig.TxtFuncMap()).Parse(DefaultUserTemplate)),
	}
}

// promptMatter is the YAML frontmatter of a custom prompt file
type promptMatter struct {
	Model  string `yaml:"model"`
	System string `yaml:"system"`
}

// LoadFile parses a custom prompt file: YAML frontmatter (model, system)
// over a user prompt template body. Fields left empty fall back to the
// defaults.
func LoadFile(fs filesystem.FileSystem, path string) (*Set, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	var matter promptMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt frontmatter: %w", err)
	}

	set := Defaults()
	set.Model = matter.Model
	if matter.System != "" {
		set.System = matter.System
	}

	if len(bytes.TrimSpace(body)) > 0 {
		tmpl, err := template.New("user").Funcs(sprig.TxtFuncMap()).Parse(string(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt template: %w", err)
		}
		set.User = tmpl
	}

	return set, nil
}

// RenderUser executes the user prompt template for one class
func (s *Set) RenderUser(className, classBody string) (string, error) {
	var buf bytes.Buffer
	if err := s.User.Execute(&buf, userData{ClassName: className, ClassBody: classBody}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
