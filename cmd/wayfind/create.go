package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/errors"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new Wayfind project",
		Long: `Create a new Wayfind project with the specified name.

The scaffold contains wayfind.json, a go.mod, a pages directory with a
root page, a layouts directory, and a dist/index.html shell.

Examples:
  wayfind create my-app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0])
		},
	}

	return cmd
}

func runCreate(name string) error {
	printBanner()
	fmt.Println("  Creating a new Wayfind project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.New("E101").
			WithDetail("Project name must be a valid Go module name").
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E101").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	cfg := config.New()
	cfg.Name = name
	if err := cfg.SaveTo(filepath.Join(projectDir, config.ConfigFileName)); err != nil {
		os.RemoveAll(projectDir)
		return err
	}

	files := map[string]string{
		"go.mod": fmt.Sprintf("module %s\n\ngo 1.24\n\nrequire github.com/wayfind-dev/wayfind v0.1.0\n", name),
		filepath.Join(cfg.Paths.Pages, "index.go"): fmt.Sprintf(`package pages

import "github.com/wayfind-dev/wayfind/pkg/router"

func IndexPage() *router.PageModule {
	return &router.PageModule{
		Render: func(rc *router.RouteContext) router.View { return "Welcome to %s" },
		Meta:   &router.PageMeta{Title: "%s"},
	}
}
`, name, name),
		filepath.Join(cfg.Paths.Layouts, "index.go"): `package layouts

import "github.com/wayfind-dev/wayfind/pkg/router"

func RootLayout() *router.LayoutModule {
	return &router.LayoutModule{
		Render: func(rc *router.RouteContext, children router.View) router.View { return children },
	}
}
`,
		filepath.Join(cfg.Output, "index.html"): fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
</head>
<body>
  <div id="app"></div>
</body>
</html>
`, name),
	}

	info("Writing scaffold...")
	for rel, content := range files {
		path := filepath.Join(projectDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			os.RemoveAll(projectDir)
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			os.RemoveAll(projectDir)
			return err
		}
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    wayfind gen routes")
	fmt.Println("    wayfind dev")
	fmt.Println()
	fmt.Printf("  Your app will be running at http://localhost:%d\n", cfg.Dev.Port)
	fmt.Println()

	return nil
}

// isValidProjectName checks that a name works as a directory and module
// path component.
func isValidProjectName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return false
	}
	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
