package state

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formats accepted by Encode
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes snap to w as pretty JSON or YAML.
func Encode(w io.Writer, snap *Snapshot, format string) error {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal state to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to marshal state to YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}
