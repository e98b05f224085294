package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wferrors "github.com/wayfind-dev/wayfind/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐
  ║║║├─┤└┬┘├┤ ││││ ││
  ╚╩╝┴ ┴ ┴ └  ┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "File-based routing for single-page Go apps",
		Long: `Wayfind turns a pages directory into a client-side route table.

Files map to URL paths: [name] becomes a parameter, [...name] a
catch-all, and a leading underscore excludes a file or subtree.
Features include:

  • Deterministic route table generation
  • First-match-wins ordered matching
  • Dev server with live reload
  • Route manifest export for external tooling
  • S3 publishing of the build output`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		createCmd(),
		devCmd(),
		genCmd(),
		publishCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		wferrors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Wayfind ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
