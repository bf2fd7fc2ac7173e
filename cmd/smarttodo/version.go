package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version may be set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the smarttodo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(effectiveVersion(Version))
	},
}

func effectiveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
