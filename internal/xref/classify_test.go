package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		token string
		ctx   Context
		want  string
	}{
		{name: "email local part", token: "admin", ctx: Context{Before: ' ', After: '@'}, want: "email"},
		{name: "email domain after word byte", token: "example.com", ctx: Context{Before: 'r'}, want: "email"},
		{name: "bare domain", token: "genie.dev", want: "email"},
		{name: "dist tag", token: "latest", want: "dist-tag"},
		{name: "canary tag", token: "canary", want: "dist-tag"},
		{name: "semver", token: "1.2.3", want: "version"},
		{name: "semver prerelease", token: "2.0.0-rc.1", want: "version"},
		{name: "version placeholder", token: "X.Y.Z", want: "version"},
		{name: "scoped package", token: "org/tool", want: "scoped-package"},
		{name: "scoped package with dots", token: "types/node.js", want: "scoped-package"},
		{name: "parent step is not a package", token: "docs/..", want: ""},
		{name: "current dir step is not a package", token: "./AGENTS", want: ""},
		{name: "placeholder file", token: "file.md", want: "placeholder"},
		{name: "placeholder dir", token: "directory/", want: "placeholder"},
		{name: "ellipsis", token: "...", want: "placeholder"},
		{name: "agent prefix", token: "agent-reviewer", want: "agent-prefix"},
		{name: "follow handle", token: "namastex", ctx: Context{Window: "Follow @namastex for updates"}, want: "social-handle"},
		{name: "markdown link handle", token: "namastex", ctx: Context{Window: "[@namastex](https://x.com/namastex)"}, want: "social-handle"},
		{name: "social domain", token: "namastex", ctx: Context{Window: "mirrored on github.com as @namastex"}, want: "social-handle"},
		{name: "social domain with scheme", token: "namastex", ctx: Context{Window: "see https://www.twitter.com/ @namastex"}, want: "social-handle"},
		{name: "domain ending in x.com", token: "AGENTS", ctx: Context{Window: "Mirrors live on dropbox.com. Load @AGENTS before"}, want: ""},
		{name: "domain ending in github.com", token: "README", ctx: Context{Window: "hosted at mygithub.com, see @README"}, want: ""},
		{name: "rasci role", token: "eng-team", ctx: Context{Window: "Responsible: @eng-team"}, want: "social-handle"},
		{name: "resource id", token: "genie:agents", want: "resource-id"},
		{name: "resource id terminator", token: "mcp-server", ctx: Context{After: ':'}, want: "resource-id"},
		{name: "markdown file", token: "notes/plan.md", want: ""},
		{name: "nested markdown file", token: ".genie/agents/core.md", want: ""},
		{name: "directory", token: "assets/", want: ""},
		{name: "plain word without markers", token: "README", ctx: Context{Window: "see @README for details"}, want: ""},
		{name: "long identifier near marker", token: "a-very-long-identifier-name", ctx: Context{Window: "Follow"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.token, tt.ctx))
			assert.Equal(t, tt.want != "", IsNoise(tt.token, tt.ctx))
		})
	}
}

func TestEmailTokensFromProseAreNoise(t *testing.T) {
	for _, text := range []string{
		"mail user@example.com today",
		"reach out to ops@genie.dev",
		"contact @admin@example.com",
	} {
		for _, c := range Extract("x.md", text) {
			assert.Truef(t, IsNoise(c.Token, c.Context), "%q in %q should be noise", c.Token, text)
		}
	}
}

func TestRulesAreOrdered(t *testing.T) {
	names := make([]string, 0, len(Rules))
	for _, r := range Rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"email", "dist-tag", "version", "scoped-package",
		"placeholder", "agent-prefix", "social-handle", "resource-id",
	}, names)
}
