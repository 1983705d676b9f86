package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/webkit/internal/lib/query"
	"github.com/deppfellow/webkit/internal/lib/utils"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Edit and inspect URL query strings",
	}

	cmd.AddCommand(newQuerySetCmd(), newQueryRemoveCmd(), newQueryDecodeCmd())
	return cmd
}

func newQuerySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set QUERY KEY VALUE",
		Short:   "Overwrite one parameter",
		Example: `  webkit query set "page=1&sort=asc" page 2`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]string{
				"query": query.SetParam(args[0], args[1], args[2]),
			})
		},
	}
}

func newQueryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove QUERY [KEY...]",
		Short:   "Remove parameters and drop bare keys",
		Example: `  webkit query remove "page=2&filter=&draft" filter`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]string{
				"query": query.RemoveParams(args[0], args[1:]),
			})
		},
	}
}

func newQueryDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode QUERY",
		Short:   "Decode a query string into nested parameters",
		Example: `  webkit query decode "filter[type]=png&tags[]=a&tags[]=b"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.PrintJSON(cmd.OutOrStdout(), query.Decode(args[0]))
		},
	}
}
