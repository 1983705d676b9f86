// Package utils contains small helper functions used across the project.
//
// These are generic helpers that don't belong to a specific layer:
//   - ClassNames combines Tailwind class strings.
//   - Debounce / Debouncer delay a call until input settles.
//   - ImageSize resolves the rendered size of a transformed image.
//   - Shimmer / PlaceholderDataURL build the loading placeholder.
//   - HandleError logs a failure and rethrows it with a uniform message.
//   - PrintJSON pretty-prints any value (used by the CLI).
package utils

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON pretty-prints any Go value as indented JSON to w.
//
// If the value contains unsupported types (channels, funcs, circular refs),
// json.MarshalIndent returns an error and nothing is written.
func PrintJSON(w io.Writer, v any) error {
	// MarshalIndent serializes v into JSON, indenting each level with two spaces.
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}
