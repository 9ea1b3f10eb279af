package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/tidydir/internal/security"
	"gopkg.in/yaml.v3"
)

// FallbackCategory receives every file whose extension no category claims
const FallbackCategory = "Others"

// Config represents the application configuration
type Config struct {
	Directory       string     `yaml:"directory" json:"directory"`
	Categories      Categories `yaml:"categories" json:"categories"`
	BundleSuffixes  []string   `yaml:"bundle_suffixes,omitempty" json:"bundle_suffixes,omitempty"`
	ExcludePatterns []string   `yaml:"exclude_patterns,omitempty" json:"exclude_patterns,omitempty"`
	DryRun          bool       `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
	// ProtectedPaths are refused as roots on top of the system locations
	ProtectedPaths []string `yaml:"protected_paths,omitempty" json:"protected_paths,omitempty"`
}

// Category is a named bucket of lowercase file extensions
type Category struct {
	Name       string
	Extensions []string
}

// Categories keeps categories in the order they were declared.
// Lookup is first match wins, so the order is significant.
type Categories []Category

// Lookup returns the first category claiming ext, or FallbackCategory
func (c Categories) Lookup(ext string) string {
	ext = strings.ToLower(ext)
	if ext == "" {
		return FallbackCategory
	}
	for _, cat := range c {
		for _, e := range cat.Extensions {
			if e == ext {
				return cat.Name
			}
		}
	}
	return FallbackCategory
}

// Names returns category names in declaration order, fallback last unless
// it is declared
func (c Categories) Names() []string {
	names := make([]string, 0, len(c)+1)
	declared := false
	for _, cat := range c {
		names = append(names, cat.Name)
		declared = declared || cat.Name == FallbackCategory
	}
	if declared {
		return names
	}
	return append(names, FallbackCategory)
}

// UnmarshalYAML decodes a mapping node while keeping key order
func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return &ConfigurationError{Field: "categories", Reason: "must be a mapping of category name to extension list"}
	}

	seen := make(map[string]bool)
	out := make(Categories, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		name := strings.TrimSpace(keyNode.Value)
		if keyNode.Kind != yaml.ScalarNode || name == "" {
			return &ConfigurationError{Field: "categories", Reason: fmt.Sprintf("line %d: category name must be a non-empty string", keyNode.Line)}
		}
		if seen[name] {
			return &ConfigurationError{Field: "categories." + name, Reason: "declared more than once"}
		}
		seen[name] = true

		if valNode.Kind != yaml.SequenceNode {
			return &ConfigurationError{Field: "categories." + name, Reason: "must be a list of extensions"}
		}

		exts := make([]string, 0, len(valNode.Content))
		for _, item := range valNode.Content {
			// Raw text is kept so plain scalars such as .inf are not read as floats
			if item.Kind != yaml.ScalarNode {
				return &ConfigurationError{Field: "categories." + name, Reason: fmt.Sprintf("line %d: extension must be a string", item.Line)}
			}
			exts = append(exts, item.Value)
		}

		out = append(out, Category{Name: name, Extensions: exts})
	}

	*c = out
	return nil
}

// MarshalYAML encodes categories as an ordered mapping
func (c Categories) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range c {
		list := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, ext := range cat.Extensions {
			list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ext})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cat.Name},
			list)
	}
	return node, nil
}

// MarshalJSON encodes categories as an ordered JSON object
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		exts := cat.Extensions
		if exts == nil {
			exts = []string{}
		}
		val, err := json.Marshal(exts)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ConfigurationError reports a missing or malformed configuration.
// It is fatal: no filesystem change happens after it is returned.
type ConfigurationError struct {
	Path   string
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Load loads configuration from a JSON or YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, &ConfigurationError{Path: configPath, Reason: "failed to read config file", Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = configPath
			return nil, cfgErr
		}
		return nil, &ConfigurationError{Path: configPath, Reason: "failed to parse config file", Err: err}
	}

	return cfg, nil
}

// Parse decodes and validates a configuration document
func Parse(data []byte) (*Config, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ConfigurationError{Reason: "config file is empty"}
	}
	if trimmed[0] == '{' {
		// JSON only allows tabs as whitespace between tokens; YAML rejects them
		trimmed = bytes.ReplaceAll(trimmed, []byte("\t"), []byte(" "))
	}

	var raw struct {
		Directory       *string     `yaml:"directory"`
		Categories      *Categories `yaml:"categories"`
		BundleSuffixes  []string    `yaml:"bundle_suffixes"`
		ExcludePatterns []string    `yaml:"exclude_patterns"`
		DryRun          bool        `yaml:"dry_run"`
		ProtectedPaths  []string    `yaml:"protected_paths"`
	}
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}

	if raw.Directory == nil {
		return nil, &ConfigurationError{Field: "directory", Reason: "is required"}
	}
	if raw.Categories == nil {
		return nil, &ConfigurationError{Field: "categories", Reason: "is required"}
	}

	cfg := &Config{
		Directory:       *raw.Directory,
		Categories:      *raw.Categories,
		BundleSuffixes:  raw.BundleSuffixes,
		ExcludePatterns: raw.ExcludePatterns,
		DryRun:          raw.DryRun,
		ProtectedPaths:  raw.ProtectedPaths,
	}
	if cfg.BundleSuffixes == nil {
		cfg.BundleSuffixes = DefaultBundleSuffixes()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir, err := ExpandPath(cfg.Directory)
	if err != nil {
		return nil, &ConfigurationError{Field: "directory", Reason: "cannot be resolved", Err: err}
	}
	cfg.Directory = dir

	for i, path := range cfg.ProtectedPaths {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, &ConfigurationError{Field: "protected_paths", Reason: fmt.Sprintf("cannot resolve '%s'", path), Err: err}
		}
		cfg.ProtectedPaths[i] = expanded
	}

	return cfg, nil
}

// Save writes the configuration as JSON, or YAML for .yaml/.yml paths
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration and normalizes extensions to lowercase
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return &ConfigurationError{Field: "directory", Reason: "must not be empty"}
	}

	if len(c.Categories) == 0 {
		return &ConfigurationError{Field: "categories", Reason: "must declare at least one category"}
	}

	for i, cat := range c.Categories {
		if strings.ContainsAny(cat.Name, `/\`) || cat.Name == "." || cat.Name == ".." {
			return &ConfigurationError{Field: "categories." + cat.Name, Reason: "category name must be a plain folder name"}
		}
		for j, ext := range cat.Extensions {
			if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
				return &ConfigurationError{Field: "categories." + cat.Name, Reason: fmt.Sprintf("extension %q must start with '.'", ext)}
			}
			c.Categories[i].Extensions[j] = strings.ToLower(ext)
		}
	}

	for _, suffix := range c.BundleSuffixes {
		if strings.TrimSpace(suffix) == "" {
			return &ConfigurationError{Field: "bundle_suffixes", Reason: "must not contain empty entries"}
		}
	}

	for _, path := range c.ProtectedPaths {
		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
			return &ConfigurationError{Field: "protected_paths", Reason: fmt.Sprintf("path must be absolute: %s", path)}
		}
	}

	for _, pattern := range c.ExcludePatterns {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return &ConfigurationError{Field: "exclude_patterns", Reason: fmt.Sprintf("invalid pattern '%s'", pattern), Err: err}
		}
	}

	return nil
}

// ExpandPath expands a leading ~ and makes path absolute
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// GetConfigPath returns the per-user config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tidydir", "config.json"), nil
}

// FindConfig returns ./config.json when present, else the per-user path
func FindConfig() (string, error) {
	if _, err := os.Stat(LocalConfigName); err == nil {
		return filepath.Abs(LocalConfigName)
	}
	return GetConfigPath()
}

// LocalConfigName is looked up in the working directory before the user config
const LocalConfigName = "config.json"
