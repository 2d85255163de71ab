package main

import (
	"github.com/spf13/cobra"

	"ripple/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ripple",
	Short: "Ripple - API impact analysis",
	Long: `Ripple analyzes how the routes declared in an OpenAPI specification are
referenced across a source tree. It locates every call site, counts references
per route, and flags endpoints nothing references anymore - the ones that are
safe (or suspicious) to change.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("Ripple version {{.Version}}\n")
}
