// Package manifest loads wasmcloud.toml project manifests.
//
// Loading happens in two steps. The manifest file is merged with environment
// overrides (WASMCLOUD_NAME, WASMCLOUD_RUST__CARGO_PATH, ...) and decoded into
// a RawConfig, where the language and project type are plain string tags next
// to optional per-variant sections and the version is already parsed. Project then turns the tags into the
// Language and ProjectType variants, requiring the section named by each tag.
//
//	cfg, err := manifest.Load("./my-actor")
//	if errors.Is(err, manifest.ErrMissingPayload) {
//		...
//	}
//	if actor, ok := cfg.ProjectType.(manifest.ActorConfig); ok {
//		...
//	}
package manifest
