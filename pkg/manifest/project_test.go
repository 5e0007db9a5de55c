package manifest

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func validRaw() *RawConfig {
	return &RawConfig{
		Language:    ptr("rust"),
		ProjectType: ptr("actor"),
		Name:        "testactor",
		Version:     semver.MustParse("0.1.0"),
		Actor: &RawActorConfig{
			Claims:       []string{"wasmcloud:httpserver"},
			Registry:     ptr("localhost:8080"),
			PushInsecure: ptr(true),
			KeyDirectory: ptr("./keys"),
			Filename:     ptr("testactor.wasm"),
			WasmType:     ptr("wasm32-unknown-unknown"),
		},
		Rust: &RustConfig{CargoPath: ptr("./cargo"), TargetPath: ptr("./target")},
	}
}

func TestProject_ProjectType(t *testing.T) {
	t.Run("Should copy actor section verbatim", func(t *testing.T) {
		cfg, err := Project(validRaw())

		require.NoError(t, err)
		assert.Equal(t, ProjectActor, cfg.ProjectType.Kind())
		assert.Equal(t, ActorConfig{
			Claims:       []string{"wasmcloud:httpserver"},
			Registry:     ptr("localhost:8080"),
			PushInsecure: true,
			KeyDirectory: ptr("./keys"),
			Filename:     ptr("testactor.wasm"),
			WasmType:     ptr("wasm32-unknown-unknown"),
		}, cfg.ProjectType)
	})

	t.Run("Should keep absent actor fields absent", func(t *testing.T) {
		raw := validRaw()
		raw.Actor = &RawActorConfig{PushInsecure: ptr(false)}

		cfg, err := Project(raw)

		require.NoError(t, err)
		actor, ok := cfg.ProjectType.(ActorConfig)
		require.True(t, ok)
		assert.Nil(t, actor.Claims)
		assert.Nil(t, actor.Registry)
		assert.Nil(t, actor.KeyDirectory)
		assert.False(t, actor.PushInsecure)
	})

	t.Run("Should resolve provider section", func(t *testing.T) {
		raw := validRaw()
		raw.ProjectType = ptr("provider")
		raw.Provider = &RawProviderConfig{CapabilityID: ptr("wasmcloud:keyvalue"), Vendor: ptr("acme")}

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Equal(t, ProviderConfig{CapabilityID: "wasmcloud:keyvalue", Vendor: ptr("acme")}, cfg.ProjectType)
	})

	t.Run("Should resolve empty interface section", func(t *testing.T) {
		raw := validRaw()
		raw.ProjectType = ptr("interface")
		raw.Interface = &InterfaceConfig{}

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Equal(t, InterfaceConfig{}, cfg.ProjectType)
	})

	t.Run("Should fail on unknown project type", func(t *testing.T) {
		for _, tag := range []string{"library", "Actor", "ACTOR", " actor", ""} {
			raw := validRaw()
			raw.ProjectType = ptr(tag)

			cfg, err := Project(raw)

			require.Error(t, err, tag)
			assert.Nil(t, cfg)
			var unknown *UnknownDiscriminantError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, "type", unknown.Field)
			assert.Equal(t, tag, unknown.Value)
			assert.ErrorIs(t, err, ErrUnknownDiscriminant)
		}
	})

	t.Run("Should fail when provider section is missing", func(t *testing.T) {
		raw := validRaw()
		raw.ProjectType = ptr("provider")

		_, err := Project(raw)

		var missing *MissingPayloadError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "provider", missing.Variant)
		assert.ErrorIs(t, err, ErrMissingPayload)
		assert.EqualError(t, err, "missing [provider] section in wasmcloud.toml")
	})

	t.Run("Should ignore sections of other variants", func(t *testing.T) {
		raw := validRaw()
		raw.Provider = &RawProviderConfig{CapabilityID: ptr("wasmcloud:keyvalue")}
		raw.Interface = &InterfaceConfig{}

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Equal(t, ProjectActor, cfg.ProjectType.Kind())
	})
}

func TestProject_Language(t *testing.T) {
	t.Run("Should copy rust section verbatim", func(t *testing.T) {
		cfg, err := Project(validRaw())

		require.NoError(t, err)
		assert.Equal(t, RustConfig{CargoPath: ptr("./cargo"), TargetPath: ptr("./target")}, cfg.Language)
	})

	t.Run("Should resolve empty tinygo section", func(t *testing.T) {
		raw := validRaw()
		raw.Language = ptr("tinygo")
		raw.Rust = nil
		raw.TinyGo = &TinyGoConfig{}

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Equal(t, LanguageTinyGo, cfg.Language.Kind())
	})

	t.Run("Should fail when rust section is missing", func(t *testing.T) {
		raw := validRaw()
		raw.Rust = nil

		_, err := Project(raw)

		var missing *MissingPayloadError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "rust", missing.Variant)
	})

	t.Run("Should fail on unknown language", func(t *testing.T) {
		raw := validRaw()
		raw.Language = ptr("go")

		_, err := Project(raw)

		var unknown *UnknownDiscriminantError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "language", unknown.Field)
		assert.Equal(t, "go", unknown.Value)
		assert.EqualError(t, err, `unknown language in wasmcloud.toml: "go"`)
	})

	t.Run("Should report project type before language", func(t *testing.T) {
		raw := validRaw()
		raw.ProjectType = ptr("library")
		raw.Language = ptr("go")

		_, err := Project(raw)

		var unknown *UnknownDiscriminantError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "type", unknown.Field)
	})
}

func TestProject_Version(t *testing.T) {
	t.Run("Should copy the parsed version", func(t *testing.T) {
		raw := validRaw()

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Same(t, raw.Version, cfg.Version)
		assert.Equal(t, "0.1.0", cfg.Version.String())
	})
}

func TestParseVersion(t *testing.T) {
	t.Run("Should parse plain version", func(t *testing.T) {
		v, err := ParseVersion("0.1.0")

		require.NoError(t, err)
		assert.Equal(t, uint64(0), v.Major())
		assert.Equal(t, uint64(1), v.Minor())
		assert.Equal(t, uint64(0), v.Patch())
		assert.Empty(t, v.Prerelease())
		assert.Empty(t, v.Metadata())
	})

	t.Run("Should keep pre-release and build metadata", func(t *testing.T) {
		v, err := ParseVersion("1.2.3-beta.1+build.5")

		require.NoError(t, err)
		assert.Equal(t, "beta.1", v.Prerelease())
		assert.Equal(t, "build.5", v.Metadata())
	})

	t.Run("Should reject invalid versions", func(t *testing.T) {
		for _, value := range []string{"abc", "1.2", "v1.2.3", "1.2.3.4", ""} {
			v, err := ParseVersion(value)

			require.Error(t, err, value)
			assert.Nil(t, v)
			var parseErr *VersionParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, value, parseErr.Value)
			assert.ErrorIs(t, err, ErrVersionParse)
		}
	})
}

func TestProject_Nil(t *testing.T) {
	t.Run("Should reject nil raw config", func(t *testing.T) {
		cfg, err := Project(nil)

		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("Should reject missing top-level keys", func(t *testing.T) {
		testCases := []struct {
			key   string
			clear func(*RawConfig)
		}{
			{"type", func(r *RawConfig) { r.ProjectType = nil }},
			{"language", func(r *RawConfig) { r.Language = nil }},
			{"version", func(r *RawConfig) { r.Version = nil }},
		}
		for _, tc := range testCases {
			raw := validRaw()
			tc.clear(raw)

			cfg, err := Project(raw)

			assert.Nil(t, cfg, tc.key)
			require.ErrorIs(t, err, ErrShape, tc.key)
			assert.Contains(t, err.Error(), `"`+tc.key+`"`)
		}
	})

	t.Run("Should keep an empty capability id", func(t *testing.T) {
		raw := validRaw()
		raw.ProjectType = ptr("provider")
		raw.Provider = &RawProviderConfig{CapabilityID: ptr("")}

		cfg, err := Project(raw)

		require.NoError(t, err)
		assert.Equal(t, ProviderConfig{}, cfg.ProjectType)
	})
}

func TestSelectVariant(t *testing.T) {
	built := 0
	variants := []variant[string]{
		{tag: "a", present: true, build: func() string { built++; return "A" }},
		{tag: "b", present: false, build: func() string { built++; return "B" }},
	}

	t.Run("Should build matching present variant", func(t *testing.T) {
		got, err := selectVariant("field", "a", variants...)

		require.NoError(t, err)
		assert.Equal(t, "A", got)
		assert.Equal(t, 1, built)
	})

	t.Run("Should not build absent variant", func(t *testing.T) {
		got, err := selectVariant("field", "b", variants...)

		assert.Empty(t, got)
		assert.True(t, errors.Is(err, ErrMissingPayload))
		assert.Equal(t, 1, built)
	})

	t.Run("Should report unknown tag with field name", func(t *testing.T) {
		_, err := selectVariant("field", "c", variants...)

		assert.Equal(t, &UnknownDiscriminantError{Field: "field", Value: "c"}, err)
	})
}

func TestConfig_AsMap(t *testing.T) {
	t.Run("Should nest variants under their tags", func(t *testing.T) {
		cfg, err := Project(validRaw())
		require.NoError(t, err)

		m := cfg.AsMap()

		assert.Equal(t, "testactor", m["name"])
		assert.Equal(t, "0.1.0", m["version"])
		assert.Contains(t, m["language"], "rust")
		assert.Contains(t, m["type"], "actor")
	})

	t.Run("Should return nil for nil config", func(t *testing.T) {
		var cfg *Config
		assert.Nil(t, cfg.AsMap())
	})
}
