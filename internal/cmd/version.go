package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/deppfellow/webkit/internal/lib/utils"
)

// Set with -ldflags "-X github.com/deppfellow/webkit/internal/cmd.Version=v1.0.0 ...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// BuildInfo is what "webkit version" prints.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetBuildInfo prefers values injected at link time and falls back to the
// module build info for "go install" builds.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, Date: Date}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch {
		case setting.Key == "vcs.revision" && info.Commit == "unknown":
			info.Commit = setting.Value
		case setting.Key == "vcs.time" && info.Date == "unknown":
			info.Date = setting.Value
		}
	}
	return info
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.PrintJSON(cmd.OutOrStdout(), GetBuildInfo())
		},
	}
}
