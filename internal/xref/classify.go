package xref

import (
	"regexp"
	"slices"
	"strings"
)

// Rule is one false-positive heuristic. Match reports whether token is noise
// rather than a file or directory reference.
type Rule struct {
	Name  string
	Match func(token string, ctx Context) bool
}

// Rules are evaluated in order; the first match wins.
var Rules = []Rule{
	{Name: "email", Match: isEmailLike},
	{Name: "dist-tag", Match: isDistTag},
	{Name: "version", Match: isVersion},
	{Name: "scoped-package", Match: isScopedPackage},
	{Name: "placeholder", Match: isPlaceholder},
	{Name: "agent-prefix", Match: hasAgentPrefix},
	{Name: "social-handle", Match: isSocialHandle},
	{Name: "resource-id", Match: isResourceID},
}

var (
	bareDomainRE     = regexp.MustCompile(`^[\w\-]+\.(com|ai|org|net|io|dev|co|edu|gov)$`)
	semverRE         = regexp.MustCompile(`^\d+\.\d+\.\d+(-[\w.]+)?$`)
	versionPatternRE = regexp.MustCompile(`^v?[A-Z]\.[A-Z]\.[A-Z]$`)
	packageSegmentRE = regexp.MustCompile(`^[\w.\-]{1,40}$`)
	shortHandleRE    = regexp.MustCompile(`^[\w\-]{1,19}$`)

	// Social domains count only as whole host names, so dropbox.com does not
	// contain x.com.
	socialDomainRE = regexp.MustCompile(`(^|[^\w.\-])(www\.)?(twitter|x|github|linkedin)\.com\b`)

	distTags     = []string{"next", "latest", "canary", "rc", "beta", "alpha"}
	placeholders = []string{"file.md", "directory/", "path", "include", "mcp", "...", "X.Y.Z", "roadmap", "standards"}

	handleMarkers = []string{
		"discord", "Discord", "[@", "Follow",
		"RASCI", "Responsible:", "Accountable:", "Support:", "Consulted:", "Informed:",
	}
)

const agentPlaceholderPrefix = "agent-"

// Classify returns the name of the first rule that marks token as noise, or
// "" when token should be validated as a path.
func Classify(token string, ctx Context) string {
	for _, r := range Rules {
		if r.Match(token, ctx) {
			return r.Name
		}
	}
	return ""
}

// IsNoise reports whether token is anything other than a path reference.
func IsNoise(token string, ctx Context) bool {
	return Classify(token, ctx) != ""
}

func isEmailLike(token string, ctx Context) bool {
	if isWordByte(ctx.Before) || ctx.After == '@' {
		return true
	}
	return bareDomainRE.MatchString(token)
}

func isDistTag(token string, _ Context) bool {
	return slices.Contains(distTags, token)
}

func isVersion(token string, _ Context) bool {
	return semverRE.MatchString(token) || versionPatternRE.MatchString(token)
}

// isScopedPackage matches npm-style "@org/package" names. It cannot tell
// them apart from an extensionless two-segment path.
func isScopedPackage(token string, _ Context) bool {
	if strings.Count(token, "/") != 1 || strings.HasSuffix(token, ".md") || strings.HasSuffix(token, "/") {
		return false
	}
	scope, name, _ := strings.Cut(token, "/")
	return isPackageSegment(scope) && isPackageSegment(name)
}

// isPackageSegment rejects "." and ".." so relative path steps stay paths.
func isPackageSegment(s string) bool {
	return packageSegmentRE.MatchString(s) && strings.Trim(s, ".") != ""
}

func isPlaceholder(token string, _ Context) bool {
	return slices.Contains(placeholders, token)
}

func hasAgentPrefix(token string, _ Context) bool {
	return strings.HasPrefix(token, agentPlaceholderPrefix)
}

func isSocialHandle(token string, ctx Context) bool {
	if !shortHandleRE.MatchString(token) {
		return false
	}
	for _, marker := range handleMarkers {
		if strings.Contains(ctx.Window, marker) {
			return true
		}
	}
	return socialDomainRE.MatchString(ctx.Window)
}

func isResourceID(token string, ctx Context) bool {
	return strings.Contains(token, ":") || ctx.After == ':'
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
