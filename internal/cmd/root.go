package cmd

import (
	"github.com/spf13/cobra"
)

const (
	groupServer  = "server"
	groupHelpers = "helpers"
)

// NewRootCmd builds the webkit command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "webkit",
		Short: "Web helper toolkit: query strings, deep merge, images and downloads",
		Long: `webkit bundles the helpers a web front end leans on: query-string
encoding with bracket nesting, deep merging of settings objects, image size
resolution and placeholders, and authenticated blob downloads.

Run "webkit serve" for the HTTP API, or use the helper commands directly.
Configuration is read from WEBKIT_* environment variables and a .env file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: groupServer, Title: "Server"},
		&cobra.Group{ID: groupHelpers, Title: "Helpers"},
	)

	serveCmd := NewServeCmd()
	serveCmd.GroupID = groupServer

	queryCmd := NewQueryCmd()
	mergeCmd := NewMergeCmd()
	imageCmd := NewImageCmd()
	for _, c := range []*cobra.Command{queryCmd, mergeCmd, imageCmd} {
		c.GroupID = groupHelpers
	}

	rootCmd.AddCommand(serveCmd, queryCmd, mergeCmd, imageCmd, NewVersionCmd())

	return rootCmd
}
