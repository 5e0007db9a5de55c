package manifest

import "github.com/Masterminds/semver/v3"

// RawConfig is the loosely typed view of the merged manifest. Tags are plain
// strings and every variant payload is optional; a nil payload means the
// section was absent, an empty section decodes to a non-nil value.
//
// The tags are pointers so that a missing key can be told apart from an
// empty string. Version is parsed while decoding.
type RawConfig struct {
	Language    *string         `koanf:"language" validate:"required"`
	ProjectType *string         `koanf:"type"     validate:"required"`
	Name        string          `koanf:"name"     validate:"required"`
	Version     *semver.Version `koanf:"version"  validate:"required"`

	Actor     *RawActorConfig    `koanf:"actor"`
	Provider  *RawProviderConfig `koanf:"provider"`
	Interface *InterfaceConfig   `koanf:"interface"`
	Rust      *RustConfig        `koanf:"rust"`
	TinyGo    *TinyGoConfig      `koanf:"tinygo"`
}

// RawActorConfig mirrors ActorConfig. PushInsecure is a pointer so that an
// [actor] section without push_insecure is rejected instead of read as false.
type RawActorConfig struct {
	Claims       []string `koanf:"claims"`
	Registry     *string  `koanf:"registry"`
	PushInsecure *bool    `koanf:"push_insecure" validate:"required"`
	KeyDirectory *string  `koanf:"key_directory"`
	Filename     *string  `koanf:"filename"`
	WasmType     *string  `koanf:"wasm_type"`
}

// RawProviderConfig mirrors ProviderConfig. An empty capability_id is
// accepted, only a missing one is rejected.
type RawProviderConfig struct {
	CapabilityID *string `koanf:"capability_id" validate:"required"`
	Vendor       *string `koanf:"vendor"`
}

func (a *RawActorConfig) toActor() ActorConfig {
	cfg := ActorConfig{
		Claims:       a.Claims,
		Registry:     a.Registry,
		KeyDirectory: a.KeyDirectory,
		Filename:     a.Filename,
		WasmType:     a.WasmType,
	}
	if a.PushInsecure != nil {
		cfg.PushInsecure = *a.PushInsecure
	}
	return cfg
}

func (p *RawProviderConfig) toProvider() ProviderConfig {
	cfg := ProviderConfig{Vendor: p.Vendor}
	if p.CapabilityID != nil {
		cfg.CapabilityID = *p.CapabilityID
	}
	return cfg
}
