package llm

import (
	"testing"

	"github.com/jakoblorz/apexcov/internal/config"
	"github.com/jakoblorz/apexcov/internal/prompt"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	cfg := config.Default()

	_, err := NewClient(cfg, nil)
	require.ErrorIs(t, err, ErrAPIKeyNotFound)
}

func TestNewClientPromptModelOverridesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.API.OpenAIKey = "sk-test"

	prompts := prompt.Defaults()
	prompts.Model = "gpt-4o"

	client, err := NewClient(cfg, prompts)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o", client.model)
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain code passes through",
			in:   "@isTest\nprivate class FooTest {}",
			want: "@isTest\nprivate class FooTest {}",
		},
		{
			name: "language-tagged fence is unwrapped",
			in:   "```apex\n@isTest\nprivate class FooTest {}\n```",
			want: "@isTest\nprivate class FooTest {}",
		},
		{
			name: "untagged fence is unwrapped",
			in:   "```\nclass A {}\n```",
			want: "class A {}",
		},
		{
			name: "missing closing fence still drops the opener",
			in:   "```apex\nclass A {}",
			want: "class A {}",
		},
		{
			name: "surrounding whitespace is trimmed",
			in:   "\n\n```apex\nclass A {}\n```\n\n",
			want: "class A {}",
		},
		{
			name: "closing fence with trailing spaces",
			in:   "```apex\nclass A {}\n```  ",
			want: "class A {}",
		},
		{
			name: "lone fence marker is left alone",
			in:   "```",
			want: "```",
		},
		{
			name: "fences inside the body survive",
			in:   "```apex\nclass A {\n  // uses ``` in a comment\n}\n```",
			want: "class A {\n  // uses ``` in a comment\n}",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}
