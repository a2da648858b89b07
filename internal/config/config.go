// Package config reads user preferences: theme, colours, editor and opener.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/trans/internal/ui/render"
	"github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "trans"
	configFileName = "config.yaml"
	legacyFileName = ".tsrc"

	// DefaultEditor is used when no editor is configured or the configured
	// one fails to start.
	DefaultEditor = "vi"
)

// Config holds the user's preferences. Empty fields mean "not set".
type Config struct {
	Theme  string            `yaml:"theme"`
	Editor string            `yaml:"editor"`
	Opener string            `yaml:"opener"`
	Colors map[string]string `yaml:"colors"`

	// Source is the file the values were read from, empty for defaults.
	Source string `yaml:"-"`
}

// DefaultPath returns $XDG_CONFIG_HOME/trans/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// LegacyPath returns ~/.tsrc.
func LegacyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, legacyFileName), nil
}

// Load reads the YAML config at path, or at DefaultPath when path is empty.
// When no YAML file exists the legacy ~/.tsrc is consulted. Unreadable or
// malformed files are logged and yield defaults; Load never fails.
func Load(path string) *Config {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			log.Printf("config: %v", err)
		}
		path = defaultPath
	}

	if path != "" {
		cfg, err := loadYAML(path)
		switch {
		case err == nil:
			return cfg
		case !errors.Is(err, fs.ErrNotExist):
			log.Printf("config: ignoring %s: %v", path, err)
			return &Config{}
		}
	}

	legacyPath, err := LegacyPath()
	if err != nil {
		return &Config{}
	}
	cfg, err := LoadLegacy(legacyPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: ignoring %s: %v", legacyPath, err)
		}
		return &Config{}
	}
	return cfg
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config: %w", err)
	}
	cfg.Source = path
	return &cfg, nil
}

// LoadLegacy parses a ~/.tsrc file: "key = value" lines with the keys
// editor and theme. Spaces are insignificant, the first value for a key
// wins, and lines that do not split into one key and one value are skipped.
func LoadLegacy(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &Config{Source: path}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), " ", "")
		kv := strings.Split(line, "=")
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "editor":
			if cfg.Editor == "" {
				cfg.Editor = kv[1]
			}
		case "theme":
			if cfg.Theme == "" {
				cfg.Theme = kv[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveTheme picks the theme named by override, else the configured one,
// and applies colour overrides. Unknown names fall back to the default
// theme. On a bad colour value the un-overridden theme is returned with the
// error.
func (c *Config) ResolveTheme(override string) (render.ColorTheme, error) {
	name := strings.TrimSpace(override)
	if name == "" {
		name = c.Theme
	}
	if name != "" && !render.HasTheme(name) {
		log.Printf("config: unknown theme %q, using %s", name, render.DefaultThemeName)
	}
	theme := render.GetColorTheme(name)
	if len(c.Colors) == 0 {
		return theme, nil
	}
	withColors, err := theme.WithOverrides(c.Colors)
	if err != nil {
		return theme, err
	}
	return withColors, nil
}

// EditorCommand returns the editor argv: the configured editor, then
// $VISUAL, then $EDITOR, then DefaultEditor.
func (c *Config) EditorCommand(getenv func(string) string) []string {
	for _, candidate := range []string{c.Editor, getenv("VISUAL"), getenv("EDITOR")} {
		if args := SplitCommand(candidate); len(args) > 0 {
			return args
		}
	}
	return []string{DefaultEditor}
}

// OpenerCommand returns the argv used for files that are not text.
func (c *Config) OpenerCommand(goos string) []string {
	if args := SplitCommand(c.Opener); len(args) > 0 {
		return args
	}
	return []string{DefaultOpener(goos)}
}

// DefaultOpener is the desktop opener for the platform.
func DefaultOpener(goos string) string {
	if goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// SplitCommand splits a command line into argv with shell quoting rules
// and expands a leading ~ in the program name. Unparsable input yields nil.
func SplitCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}
	args, err := shellwords.Parse(cmd)
	if err != nil {
		log.Printf("config: cannot parse command %q: %v", cmd, err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	args[0] = expandUserPath(args[0])
	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] != '/' && path[1] != filepath.Separator {
		return path
	}
	return filepath.Join(home, path[2:])
}
