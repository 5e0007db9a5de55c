package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mattwilkinsonn/wasmcloud-config/pkg/logger"
)

// FileName is the manifest file looked up in the base directory.
const FileName = "wasmcloud.toml"

// Option customizes a Loader.
type Option func(*Loader)

// WithEnvPrefix replaces DefaultEnvPrefix. An empty prefix is rejected when
// loading, it would turn every process variable into a manifest key.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithEnvFile adds a dotenv file layer between the manifest and the process
// environment.
func WithEnvFile(path string) Option {
	return func(l *Loader) {
		l.envFile = path
	}
}

// Loader merges the manifest file with environment overrides. A Loader holds
// no per-load state and may be shared between goroutines.
type Loader struct {
	envPrefix string
	envFile   string
	validator *validator.Validate
}

// NewLoader creates a Loader with the given options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		envPrefix: DefaultEnvPrefix,
		validator: newValidator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ManifestPath returns the manifest location for baseDir, defaulting to the
// current working directory.
func ManifestPath(baseDir string) (string, error) {
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", &SourceError{Path: FileName, Err: fmt.Errorf("failed to resolve working directory: %w", err)}
		}
		baseDir = cwd
	}
	return filepath.Join(baseDir, FileName), nil
}

// Load reads and validates the manifest in baseDir.
func (l *Loader) Load(ctx context.Context, baseDir string) (*Config, error) {
	raw, err := l.LoadRaw(ctx, baseDir)
	if err != nil {
		return nil, err
	}
	cfg, err := Project(raw)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("manifest loaded",
		"name", cfg.Name,
		"version", cfg.Version.String(),
		"type", cfg.ProjectType.Kind(),
		"language", cfg.Language.Kind(),
	)
	return cfg, nil
}

// LoadRaw merges the manifest file, the optional env file and the process
// environment, in that order, and decodes the result into a RawConfig.
func (l *Loader) LoadRaw(ctx context.Context, baseDir string) (*RawConfig, error) {
	if l.envPrefix == "" {
		return nil, ErrEmptyEnvPrefix
	}
	path, err := ManifestPath(baseDir)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx).With("manifest", path)
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	log.Debug("manifest file read")

	overlay := &envOverlay{prefix: l.envPrefix}
	if l.envFile != "" {
		if err := overlay.loadDotEnv(k, l.envFile); err != nil {
			return nil, err
		}
	}
	if err := overlay.loadProcessEnv(k); err != nil {
		return nil, err
	}
	if len(overlay.keys) > 0 {
		log.Debug("environment overrides applied", "keys", overlay.keys)
	}
	return l.decode(k)
}

func (l *Loader) decode(k *koanf.Koanf) (*RawConfig, error) {
	var raw RawConfig
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: false,
			Result:           &raw,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToBoolHook,
				stringToVersionHook,
			),
		},
	}); err != nil {
		var versionErr *VersionParseError
		if errors.As(err, &versionErr) {
			return nil, versionErr
		}
		return nil, &ShapeError{Err: err}
	}
	if err := l.validator.Struct(&raw); err != nil {
		return nil, &ShapeError{Err: describeValidation(err)}
	}
	return &raw, nil
}

// stringToBoolHook lets environment strings such as "true" fill bool fields.
func stringToBoolHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as bool: %w", s, err)
	}
	return b, nil
}

var versionType = reflect.TypeOf(&semver.Version{})

// stringToVersionHook parses the version while decoding, so a malformed
// version fails before any tag is looked at.
func stringToVersionHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != versionType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return ParseVersion(s)
}

// describeValidation reports the first failing field by its manifest key.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	if fe.Tag() == "required" {
		if fe.Kind() == reflect.String {
			return fmt.Errorf("required key %q is missing or empty", key)
		}
		return fmt.Errorf("missing required key %q", key)
	}
	return fmt.Errorf("key %q failed %q validation", key, fe.Tag())
}

// LoadContext loads the manifest in baseDir, or in the current working
// directory when baseDir is empty, logging through the context logger.
func LoadContext(ctx context.Context, baseDir string, opts ...Option) (*Config, error) {
	return NewLoader(opts...).Load(ctx, baseDir)
}

// Load loads and validates the manifest in baseDir, or in the current
// working directory when baseDir is empty.
func Load(baseDir string, opts ...Option) (*Config, error) {
	return LoadContext(context.Background(), baseDir, opts...)
}
