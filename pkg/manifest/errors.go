package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the load and projection failure classes. Each typed
// error below reports true for errors.Is against its sentinel.
var (
	// ErrSource is returned when the manifest file is missing, unreadable or malformed.
	ErrSource = errors.New("manifest source error")

	// ErrShape is returned when the merged document does not fit the expected field types.
	ErrShape = errors.New("manifest shape error")

	// ErrUnknownDiscriminant is returned when a variant tag is not recognized.
	ErrUnknownDiscriminant = errors.New("unknown discriminant")

	// ErrMissingPayload is returned when a recognized tag has no matching section.
	ErrMissingPayload = errors.New("missing variant payload")

	// ErrVersionParse is returned when the version is not a semantic version.
	ErrVersionParse = errors.New("invalid semantic version")

	// ErrEmptyEnvPrefix is returned when a Loader is configured without an
	// environment prefix.
	ErrEmptyEnvPrefix = errors.New("environment prefix must not be empty")
)

// SourceError reports a failure to read or parse one of the configuration sources.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *SourceError) Is(target error) bool {
	return target == ErrSource
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ShapeError reports that the merged document could not be decoded into RawConfig.
type ShapeError struct {
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid %s: %v", FileName, e.Err)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// UnknownDiscriminantError carries the field holding the tag and the offending value.
type UnknownDiscriminantError struct {
	Field string
	Value string
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("unknown %s in %s: %q", e.Field, FileName, e.Value)
}

func (e *UnknownDiscriminantError) Is(target error) bool {
	return target == ErrUnknownDiscriminant
}

// MissingPayloadError names the variant whose section is absent.
type MissingPayloadError struct {
	Variant string
}

func (e *MissingPayloadError) Error() string {
	return fmt.Sprintf("missing [%s] section in %s", e.Variant, FileName)
}

func (e *MissingPayloadError) Is(target error) bool {
	return target == ErrMissingPayload
}

// VersionParseError reports a version string that is not valid semver.
type VersionParseError struct {
	Value string
	Err   error
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("version %q in %s is not a valid semantic version: %v", e.Value, FileName, e.Err)
}

func (e *VersionParseError) Is(target error) bool {
	return target == ErrVersionParse
}

func (e *VersionParseError) Unwrap() error {
	return e.Err
}
