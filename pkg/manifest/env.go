package manifest

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultEnvPrefix is the namespace of environment overrides. It is
	// matched case-insensitively.
	DefaultEnvPrefix = "WASMCLOUD_"

	// EnvNestingDelim separates nesting levels in an environment variable
	// name: WASMCLOUD_RUST__CARGO_PATH -> rust.cargo_path.
	EnvNestingDelim = "__"
)

// EnvKey converts an environment variable name into a manifest key path.
// It returns "" for names outside prefix or names that carry no key.
func EnvKey(prefix, name string) string {
	if len(name) < len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
		return ""
	}
	rest := strings.ToLower(name[len(prefix):])
	parts := make([]string, 0, 2)
	for _, part := range strings.Split(rest, EnvNestingDelim) {
		// WASMCLOUD___NAME, WASMCLOUD_RUST__ and similar leave empty segments
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ".")
}

// envListKeys are the keys whose environment values are comma-separated lists.
var envListKeys = map[string]bool{
	"actor.claims": true,
}

// envOverlay collects the keys set by the environment layers of one load.
type envOverlay struct {
	prefix string
	keys   []string
}

func (o *envOverlay) transform(name, value string) (string, any) {
	key := EnvKey(o.prefix, name)
	if key == "" {
		return "", nil
	}
	o.keys = append(o.keys, key)
	if envListKeys[key] {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}

// loadDotEnv overlays variables from a dotenv file. Only names inside the
// prefix are used; the file does not touch the process environment.
func (o *envOverlay) loadDotEnv(k *koanf.Koanf, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	values := make(map[string]any, len(vars))
	for name, value := range vars {
		key, v := o.transform(name, value)
		if key == "" {
			continue
		}
		values[key] = v
	}
	if len(values) == 0 {
		return nil
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return &SourceError{Path: path, Err: fmt.Errorf("failed to apply env file: %w", err)}
	}
	return nil
}

// loadProcessEnv overlays the process environment.
func (o *envOverlay) loadProcessEnv(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        "",
		TransformFunc: o.transform,
	}), nil); err != nil {
		return &SourceError{Path: "environment", Err: fmt.Errorf("failed to load environment variables: %w", err)}
	}
	return nil
}
