package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "grimoire", displayVersion(version))
	},
}

// displayVersion normalizes a build version. Release builds are semver
// tags with or without the leading v; anything else is a dev build.
func displayVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "(devel)"
	}
	tagged := v
	if tagged[0] != 'v' {
		tagged = "v" + tagged
	}
	if !semver.IsValid(tagged) {
		return v + " (devel)"
	}
	return semver.Canonical(tagged)
}
