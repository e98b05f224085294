package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/dev"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <type>",
		Short: "Generate code",
		Long: `Generate route tables and manifests from the pages directory.

Types:
  routes    Generate routes_gen.go (and layouts_gen.go) from page files
  manifest  Generate a plain JSON route manifest for external tooling

Examples:
  wayfind gen routes                  # Regenerate routes_gen.go
  wayfind gen manifest                # Write dist/routes.json
  wayfind gen manifest -o routes.json # Custom output path`,
	}

	cmd.AddCommand(
		genRoutesCmd(),
		genManifestCmd(),
	)

	return cmd
}

// =============================================================================
// wayfind gen routes
// =============================================================================

func genRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Generate routes_gen.go from page files",
		Long: `Scan the pages directory and generate the routes_gen.go file.

Page files export a function ending in "Page"; the generated file wires
them into an ordered route table. When generator.layouts is enabled,
layouts_gen.go is generated from the layouts directory as well.

The output is deterministic - running it multiple times produces
identical output unless the pages change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenRoutes()
		},
	}

	return cmd
}

func runGenRoutes() error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	info("Scanning %s...", cfg.PagesPath())

	changed, err := dev.RegenerateRoutes(cfg)
	if err != nil {
		return err
	}

	target := filepath.Join(cfg.Paths.Pages, dev.GeneratedRoutesFile)
	if changed {
		success("Generated %s", target)
	} else {
		info("%s is up to date", target)
	}

	if cfg.Generator.Layouts {
		changed, err := dev.RegenerateLayouts(cfg)
		if err != nil {
			return err
		}
		target := filepath.Join(cfg.Paths.Layouts, dev.GeneratedLayoutsFile)
		if changed {
			success("Generated %s", target)
		} else {
			info("%s is up to date", target)
		}
	}

	return nil
}

// =============================================================================
// wayfind gen manifest
// =============================================================================

func genManifestCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Generate a JSON route manifest",
		Long: `Scan the pages directory and write a plain JSON route manifest.

The manifest mirrors the route table without loader functions: one
entry per route with its source file, URL pattern, and parsed segments.
External tooling (deploy previews, sitemap generators) consumes it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenManifest(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: <output>/routes.json)")

	return cmd
}

func runGenManifest(output string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if output == "" {
		output = filepath.Join(cfg.OutputPath(), "routes.json")
	}

	info("Scanning %s...", cfg.PagesPath())

	scanner := router.NewScanner(cfg.PagesPath())
	pages, err := scanner.ScanWithOptions(router.ScanOptions{
		Validate:   true,
		Sort:       true,
		Extensions: cfg.Generator.Extensions,
	})
	if err != nil {
		return err
	}

	info("Found %d routes", len(pages))

	manifest := router.BuildManifest(pages)

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := manifest.Write(f); err != nil {
		return err
	}

	success("Generated %s", output)
	return nil
}
