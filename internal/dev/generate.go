package dev

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// GeneratedRoutesFile is the file name written into the pages directory.
const GeneratedRoutesFile = "routes_gen.go"

// GeneratedLayoutsFile is the file name written into the layouts directory.
const GeneratedLayoutsFile = "layouts_gen.go"

// GetModulePath reads the module path from go.mod in the project directory.
func GetModulePath(projectDir string) (string, error) {
	goModPath := filepath.Join(projectDir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}

	return "", fmt.Errorf("module declaration not found in %s", goModPath)
}

// RegenerateRoutes scans the pages directory and rewrites routes_gen.go.
// It returns true when the file content changed. Deterministic output
// means an unchanged route set is a no-op.
func RegenerateRoutes(cfg *config.Config) (bool, error) {
	pagesPath := cfg.PagesPath()

	scanner := router.NewScanner(pagesPath)
	pages, err := scanner.ScanWithOptions(router.ScanOptions{
		Validate:   true,
		Sort:       true,
		Extensions: cfg.Generator.Extensions,
	})
	if err != nil {
		return false, err
	}

	modulePath, err := GetModulePath(cfg.Dir())
	if err != nil {
		return false, err
	}
	importPath := modulePath + "/" + filepath.ToSlash(cfg.Paths.Pages)

	gen := router.NewGenerator(pages, importPath)
	content, err := gen.Generate()
	if err != nil {
		return false, err
	}

	return writeIfChanged(filepath.Join(pagesPath, GeneratedRoutesFile), content)
}

// RegenerateLayouts scans the layouts directory and rewrites
// layouts_gen.go. Returns true when the file content changed.
func RegenerateLayouts(cfg *config.Config) (bool, error) {
	layoutsPath := cfg.LayoutsPath()

	scanner := router.NewScanner(layoutsPath)
	layouts, err := scanner.ScanLayouts(layoutsPath)
	if err != nil {
		return false, err
	}

	modulePath, err := GetModulePath(cfg.Dir())
	if err != nil {
		return false, err
	}
	importPath := modulePath + "/" + filepath.ToSlash(cfg.Paths.Layouts)

	gen := router.NewLayoutGenerator(layouts, importPath)
	content, err := gen.Generate()
	if err != nil {
		return false, err
	}

	return writeIfChanged(filepath.Join(layoutsPath, GeneratedLayoutsFile), content)
}

func writeIfChanged(path string, content []byte) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if bytes.Equal(current, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, err
	}
	return true, nil
}
