package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deppfellow/webkit/internal/lib/merge"
	"github.com/deppfellow/webkit/internal/lib/utils"
)

func NewMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge OBJECT OBJECT [OBJECT...]",
		Short: "Deep merge JSON objects, earlier arguments win",
		Long: `Deep merge JSON objects. Nested objects are merged key by key; on any
other conflict the earlier argument wins.

Each argument is inline JSON, @path to read a file, or - for stdin.`,
		Example: `  webkit merge '{"a":{"x":1}}' '{"a":{"y":2},"b":3}'
  webkit merge @overrides.json @defaults.json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			objects := make([]map[string]any, 0, len(args))
			for _, arg := range args {
				obj, err := readObject(arg, cmd.InOrStdin())
				if err != nil {
					return err
				}
				objects = append(objects, obj)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), merge.DeepAll(objects...))
		},
	}
}

// readObject parses arg as a JSON object: inline, "@file" or "-" for stdin.
func readObject(arg string, stdin io.Reader) (map[string]any, error) {
	var raw []byte
	switch {
	case arg == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	case strings.HasPrefix(arg, "@"):
		b, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		raw = b
	default:
		raw = []byte(arg)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON object %q: %w", arg, err)
	}
	return obj, nil
}
