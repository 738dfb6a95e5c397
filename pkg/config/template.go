package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is "yaml" or "toml".
	Format string
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch strings.ToLower(opts.Format) {
	case "", "yaml", "yml":
		return yamlTemplate(), nil
	case "toml":
		return tomlTemplate(), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func yamlTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Manuscript file extensions to check
extensions:
  - .press
  - .ms

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
#   - "**/*.old.ms"

# Number of parallel workers (0 = auto)
# jobs: 0

# Log level: debug, info, warn, error
# log_level: info

# Color output: auto, always, never
# color: auto

# Output format: text or json
# format: text

# Result cache
# cache:
#   enabled: true
#   path: ""
`)

	return buf.Bytes()
}

func tomlTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Manuscript file extensions to check
extensions = [".press", ".ms"]

# File patterns to ignore (glob patterns)
# ignore = ["drafts/**"]

# Number of parallel workers (0 = auto)
# jobs = 0

# log_level = "info"
# color = "auto"
# format = "text"

# [cache]
# enabled = true
# path = ""
`)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# press configuration
# See: https://github.com/yaklabco/press`
}
