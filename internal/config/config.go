package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moasq/geniekit/internal/xref"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GENIEKIT_XREF_FORMAT.
const EnvPrefix = "GENIEKIT"

// FileName is the optional per-repository config file, relative to the root.
var FileName = filepath.Join(".genie", "geniekit.yaml")

// DefaultProtectedFiles are personal files that must never be committed.
var DefaultProtectedFiles = []string{".genie/TODO.md", ".genie/USERCONTEXT.md"}

// Config holds the CLI configuration.
type Config struct {
	// Root is the repository root every tool operates on.
	Root string

	// Exclude lists directories the cross-reference validator skips. It
	// always starts with xref.DefaultExclude.
	Exclude []string

	// Format is the default cross-reference report format.
	Format string

	// ProtectedFiles are root-relative paths that must not be staged.
	ProtectedFiles []string

	// StateFile is the markdown file carrying the last_version field.
	StateFile string

	// PackageFile is the package.json the version is read from.
	PackageFile string

	// ChangelogFile is the changelog that receives the Unreleased section.
	ChangelogFile string

	// AgentsDir is the directory the agent tree is built from.
	AgentsDir string

	// TreeOutput is where the rendered agent tree is written.
	TreeOutput string

	// Source is the config file that was read, empty when none existed.
	Source string
}

// Load resolves the root and reads configuration from defaults, the
// optional .genie/geniekit.yaml under the root, and GENIEKIT_* variables.
// rootFlag, when set, wins over every other root source.
func Load(rootFlag string) (*Config, error) {
	root, err := ResolveRoot(rootFlag)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("xref.exclude", []string{})
	v.SetDefault("xref.format", "text")
	v.SetDefault("userfiles.protected", DefaultProtectedFiles)
	v.SetDefault("state.file", ".genie/STATE.md")
	v.SetDefault("state.package", "package.json")
	v.SetDefault("changelog.file", "CHANGELOG.md")
	v.SetDefault("tree.agents", ".genie/agents")
	v.SetDefault("tree.output", ".genie/reports/agent-neural-tree.md")

	cfg := &Config{Root: root}

	cfgPath := filepath.Join(root, FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
		}
		cfg.Source = cfgPath
	}

	cfg.Exclude = append(append([]string{}, xref.DefaultExclude...), v.GetStringSlice("xref.exclude")...)
	cfg.Format = v.GetString("xref.format")
	cfg.ProtectedFiles = v.GetStringSlice("userfiles.protected")
	cfg.StateFile = v.GetString("state.file")
	cfg.PackageFile = v.GetString("state.package")
	cfg.ChangelogFile = v.GetString("changelog.file")
	cfg.AgentsDir = v.GetString("tree.agents")
	cfg.TreeOutput = v.GetString("tree.output")
	return cfg, nil
}

// Path joins a root-relative, slash-separated path onto the root.
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// ResolveRoot picks the repository root: the explicit flag, then
// GENIEKIT_ROOT, then the nearest ancestor of the working directory holding
// a .genie directory, then the working directory itself.
func ResolveRoot(rootFlag string) (string, error) {
	candidate := rootFlag
	if candidate == "" {
		candidate = os.Getenv(EnvPrefix + "_ROOT")
	}
	if candidate != "" {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root %q: %w", candidate, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("root %s: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("root %s is not a directory", abs)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if found, ok := findGenieRoot(cwd); ok {
		return found, nil
	}
	return cwd, nil
}

func findGenieRoot(start string) (string, bool) {
	dir := start
	for {
		info, err := os.Stat(filepath.Join(dir, ".genie"))
		if err == nil && info.IsDir() {
			return dir, true
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
