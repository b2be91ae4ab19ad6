package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tiger/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var versionColor = color.New(color.FgYellow, color.Bold)

func runVersion(cmd *cobra.Command, args []string) {
	if useColor(cmd, os.Stdout) {
		fmt.Fprintf(os.Stdout, "tiger %s\n", versionColor.Sprint(version.Version))
	} else {
		fmt.Fprintf(os.Stdout, "tiger %s\n", version.Version)
	}
	if version.GitCommit != "" {
		fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(os.Stdout, "built:  %s\n", version.BuildDate)
	}
}
