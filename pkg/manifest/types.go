package manifest

import (
	"github.com/Masterminds/semver/v3"
)

// LanguageKind is the tag selecting a Language variant.
type LanguageKind string

const (
	LanguageRust   LanguageKind = "rust"
	LanguageTinyGo LanguageKind = "tinygo"
)

// ProjectKind is the tag selecting a ProjectType variant.
type ProjectKind string

const (
	ProjectActor     ProjectKind = "actor"
	ProjectProvider  ProjectKind = "provider"
	ProjectInterface ProjectKind = "interface"
)

type (
	// Language is the build language of the project. It is implemented only by
	// RustConfig and TinyGoConfig.
	Language interface {
		Kind() LanguageKind
		isLanguage()
	}

	// ProjectType is the kind of component the project builds. It is implemented
	// only by ActorConfig, ProviderConfig and InterfaceConfig.
	ProjectType interface {
		Kind() ProjectKind
		isProjectType()
	}
)

// RustConfig holds the [rust] section.
type RustConfig struct {
	CargoPath  *string `koanf:"cargo_path"  json:"cargo_path,omitempty"  yaml:"cargo_path,omitempty"`
	TargetPath *string `koanf:"target_path" json:"target_path,omitempty" yaml:"target_path,omitempty"`
}

func (RustConfig) Kind() LanguageKind { return LanguageRust }
func (RustConfig) isLanguage()        {}

// TinyGoConfig holds the [tinygo] section, which has no fields.
type TinyGoConfig struct{}

func (TinyGoConfig) Kind() LanguageKind { return LanguageTinyGo }
func (TinyGoConfig) isLanguage()        {}

// ActorConfig holds the [actor] section.
type ActorConfig struct {
	Claims       []string `json:"claims,omitempty"        yaml:"claims,omitempty"`
	Registry     *string  `json:"registry,omitempty"      yaml:"registry,omitempty"`
	PushInsecure bool     `json:"push_insecure"           yaml:"push_insecure"`
	KeyDirectory *string  `json:"key_directory,omitempty" yaml:"key_directory,omitempty"`
	Filename     *string  `json:"filename,omitempty"      yaml:"filename,omitempty"`
	WasmType     *string  `json:"wasm_type,omitempty"     yaml:"wasm_type,omitempty"`
}

func (ActorConfig) Kind() ProjectKind { return ProjectActor }
func (ActorConfig) isProjectType()    {}

// ProviderConfig holds the [provider] section.
type ProviderConfig struct {
	CapabilityID string  `json:"capability_id"    yaml:"capability_id"`
	Vendor       *string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
}

func (ProviderConfig) Kind() ProjectKind { return ProjectProvider }
func (ProviderConfig) isProjectType()    {}

// InterfaceConfig holds the [interface] section, which has no fields.
type InterfaceConfig struct{}

func (InterfaceConfig) Kind() ProjectKind { return ProjectInterface }
func (InterfaceConfig) isProjectType()    {}

// Config is the validated project configuration. It is built once by Project
// and is never modified afterwards.
type Config struct {
	Language    Language
	ProjectType ProjectType
	Name        string
	Version     *semver.Version
}

// AsMap renders the configuration as a nested map keyed like the manifest,
// with each variant nested under its tag.
func (c *Config) AsMap() map[string]any {
	if c == nil {
		return nil
	}
	out := map[string]any{
		"name": c.Name,
	}
	if c.Version != nil {
		out["version"] = c.Version.String()
	}
	if c.Language != nil {
		out["language"] = map[string]any{string(c.Language.Kind()): c.Language}
	}
	if c.ProjectType != nil {
		out["type"] = map[string]any{string(c.ProjectType.Kind()): c.ProjectType}
	}
	return out
}
