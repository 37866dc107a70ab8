// Package config loads tool settings from errctx.yml.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/errctx/errctx/internal/message"
	"github.com/errctx/errctx/internal/rewrite"
)

// DefaultFile is the configuration file looked up when no path was given.
const DefaultFile = "errctx.yml"

// Config mirrors the errctx.yml layout.
type Config struct {
	// Wrapper selects the wrap function. fmt.Errorf when empty.
	Wrapper WrapperRef `yaml:"wrapper"`

	// FnMessage templates fn-mode messages, one %s verb for the
	// function name.
	FnMessage string `yaml:"fn-message"`

	// Custom registers wrap functions beyond the predefined ones.
	Custom []CustomWrapper `yaml:"custom"`
}

// WrapperRef points at a wrap function by import path and name.
type WrapperRef struct {
	Package string `yaml:"package"`
	Name    string `yaml:"name"`
}

// CustomWrapper registers a wrap function together with its call shape.
type CustomWrapper struct {
	Package string            `yaml:"package"`
	Name    string            `yaml:"name"`
	Style   rewrite.WrapStyle `yaml:"style"`
}

// Default is the configuration used when errctx.yml does not exist.
func Default() *Config {
	return &Config{
		FnMessage: message.DefaultFnTemplate,
	}
}

// Load reads and templates the configuration file. A missing file at the
// default location is not an error, the defaults apply.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}

	templated, err := Template(raw)
	if err != nil {
		return nil, fmt.Errorf("error processing templates: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(templated, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file: %w", err)
	}

	for _, custom := range cfg.Custom {
		if custom.Package == "" || custom.Name == "" {
			return nil, fmt.Errorf("custom wrapper entries need both package and name")
		}
		if custom.Style == rewrite.WrapStyleInvalid {
			return nil, fmt.Errorf("custom wrapper %s.%s needs a call style", custom.Package, custom.Name)
		}
	}

	return cfg, nil
}

// Options converts the configuration into rewriter options.
func (c *Config) Options() rewrite.Options {
	custom := make(map[rewrite.Wrapper]rewrite.WrapStyle, len(c.Custom))
	for _, w := range c.Custom {
		custom[rewrite.Wrapper{PkgPath: w.Package, Name: w.Name}] = w.Style
	}

	var wrapper rewrite.Wrapper
	if c.Wrapper.Package != "" || c.Wrapper.Name != "" {
		wrapper = rewrite.Wrapper{PkgPath: c.Wrapper.Package, Name: c.Wrapper.Name}
	}

	return rewrite.Options{
		Wrapper:    wrapper,
		Registry:   rewrite.NewWrapperRegistry(custom),
		FnTemplate: c.FnMessage,
	}
}

var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+)\s*}}`)

// Template substitutes {{ env.NAME || fallback }} placeholders.
func Template(raw []byte) ([]byte, error) {
	var firstErr error

	processed := templateRegex.ReplaceAllFunc(raw, func(match []byte) []byte {
		content := strings.TrimSpace(string(match[2 : len(match)-2]))

		parts := strings.Split(content, "||")
		for i, part := range parts {
			parts[i] = strings.TrimSpace(part)
		}

		for _, part := range parts {
			if strings.HasPrefix(part, "env.") {
				key := strings.TrimPrefix(part, "env.")
				if value := os.Getenv(key); value != "" {
					return []byte(value)
				}
				continue
			}

			// A literal fallback.
			return []byte(strings.Trim(part, `"'`))
		}

		if firstErr == nil {
			firstErr = fmt.Errorf("no value available for template %q", content)
		}
		return match
	})

	if firstErr != nil {
		return nil, firstErr
	}

	return processed, nil
}
