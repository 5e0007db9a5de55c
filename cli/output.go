package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/mattwilkinsonn/wasmcloud-config/pkg/manifest"
)

// Output format constants
const (
	OutputFormatYAML = "yaml"
	OutputFormatJSON = "json"
)

// writeConfig renders cfg in the requested format.
func writeConfig(w io.Writer, format string, cfg *manifest.Config) error {
	switch format {
	case OutputFormatYAML:
		data, err := yaml.Marshal(cfg.AsMap())
		if err != nil {
			return fmt.Errorf("failed to encode configuration as YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case OutputFormatJSON:
		return writeJSON(w, cfg.AsMap())
	default:
		return fmt.Errorf("unsupported output format %q (expected %s or %s)", format, OutputFormatYAML, OutputFormatJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	data = pretty.Pretty(data)
	if isTerminal(w) {
		data = pretty.Color(data, nil)
	}
	_, err = w.Write(data)
	return err
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
