package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// variant pairs a tag with its payload section. build is only called when
// the section is present.
type variant[T any] struct {
	tag     string
	present bool
	build   func() T
}

// selectVariant resolves a tag against its known variants. Matching is exact
// and case-sensitive; an unknown tag is never defaulted.
func selectVariant[T any](field, tag string, variants ...variant[T]) (T, error) {
	var zero T
	for _, v := range variants {
		if v.tag != tag {
			continue
		}
		if !v.present {
			return zero, &MissingPayloadError{Variant: v.tag}
		}
		return v.build(), nil
	}
	return zero, &UnknownDiscriminantError{Field: field, Value: tag}
}

func projectType(raw *RawConfig) (ProjectType, error) {
	return selectVariant[ProjectType]("type", *raw.ProjectType,
		variant[ProjectType]{
			tag:     string(ProjectActor),
			present: raw.Actor != nil,
			build:   func() ProjectType { return raw.Actor.toActor() },
		},
		variant[ProjectType]{
			tag:     string(ProjectProvider),
			present: raw.Provider != nil,
			build:   func() ProjectType { return raw.Provider.toProvider() },
		},
		variant[ProjectType]{
			tag:     string(ProjectInterface),
			present: raw.Interface != nil,
			build:   func() ProjectType { return *raw.Interface },
		},
	)
}

func language(raw *RawConfig) (Language, error) {
	return selectVariant[Language]("language", *raw.Language,
		variant[Language]{
			tag:     string(LanguageRust),
			present: raw.Rust != nil,
			build:   func() Language { return *raw.Rust },
		},
		variant[Language]{
			tag:     string(LanguageTinyGo),
			present: raw.TinyGo != nil,
			build:   func() Language { return *raw.TinyGo },
		},
	)
}

// ParseVersion parses a strict major.minor.patch version with optional
// pre-release and build metadata.
func ParseVersion(value string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(value)
	if err != nil {
		return nil, &VersionParseError{Value: value, Err: err}
	}
	return v, nil
}

// requireKeys reports the first top-level key a hand-built RawConfig lacks.
func requireKeys(raw *RawConfig) error {
	var key string
	switch {
	case raw.ProjectType == nil:
		key = "type"
	case raw.Language == nil:
		key = "language"
	case raw.Version == nil:
		key = "version"
	default:
		return nil
	}
	return &ShapeError{Err: fmt.Errorf("missing required key %q", key)}
}

// Project converts a RawConfig into a validated Config. The project type is
// resolved before the language and the first failure is returned; no partial
// Config is produced. The version was already parsed by the loader and is
// copied as is.
func Project(raw *RawConfig) (*Config, error) {
	if raw == nil {
		return nil, &ShapeError{Err: errors.New("no configuration to project")}
	}
	if err := requireKeys(raw); err != nil {
		return nil, err
	}
	pt, err := projectType(raw)
	if err != nil {
		return nil, err
	}
	lang, err := language(raw)
	if err != nil {
		return nil, err
	}
	return &Config{
		Language:    lang,
		ProjectType: pt,
		Name:        raw.Name,
		Version:     raw.Version,
	}, nil
}
