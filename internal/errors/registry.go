package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Generation Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryGeneration,
		Message:  "Pages directory not found",
		Detail:   "The configured pages directory does not exist. Routes are generated from the files under it.",
		DocURL:   "https://wayfind.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryGeneration,
		Message:  "Route scan failed",
		Detail:   "A page file could not be read or parsed while scanning the pages directory.",
		DocURL:   "https://wayfind.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryGeneration,
		Message:  "Page file exports no provider",
		Detail:   "Go page files must export a function ending in \"Page\" returning the page module.",
		DocURL:   "https://wayfind.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryGeneration,
		Message:  "Code generation failed",
		Detail:   "The generated route registration file could not be produced or formatted.",
		DocURL:   "https://wayfind.dev/docs/errors/E004",
	},
	"E005": {
		Category: CategoryGeneration,
		Message:  "Layouts directory not found",
		Detail:   "Layout scanning was requested but the configured layouts directory does not exist.",
		DocURL:   "https://wayfind.dev/docs/errors/E005",
	},

	// ============================================
	// Validation Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryValidation,
		Message:  "Duplicate route pattern",
		Detail:   "Two or more page files resolve to the same URL pattern. Route priority is table order, so duplicates are rejected at generation time.",
		DocURL:   "https://wayfind.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryValidation,
		Message:  "Segments after catch-all",
		Detail:   "A catch-all segment consumes the whole remaining pathname; segments declared after it can never match.",
		DocURL:   "https://wayfind.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryValidation,
		Message:  "Empty parameter name",
		Detail:   "A parameter or catch-all fragment was declared with no name, e.g. [].go or [...].go.",
		DocURL:   "https://wayfind.dev/docs/errors/E022",
	},

	// ============================================
	// Config Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No wayfind.json was found in the current directory or any parent directory.",
		DocURL:   "https://wayfind.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "wayfind.json exists but could not be parsed as JSON.",
		DocURL:   "https://wayfind.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config field holds a value outside its allowed range.",
		DocURL:   "https://wayfind.dev/docs/errors/E042",
	},

	// ============================================
	// Dev Server Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryDev,
		Message:  "Dev server failed to start",
		Detail:   "The development server could not bind its address. The port may already be in use.",
		DocURL:   "https://wayfind.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryDev,
		Message:  "File watcher failed",
		Detail:   "The pages watcher could not read the watched directories.",
		DocURL:   "https://wayfind.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryDev,
		Message:  "Reload channel failed",
		Detail:   "A browser reload connection could not be upgraded or written to.",
		DocURL:   "https://wayfind.dev/docs/errors/E062",
	},

	// ============================================
	// Publish Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryPublish,
		Message:  "Publish upload failed",
		Detail:   "An artifact could not be uploaded to the configured bucket.",
		DocURL:   "https://wayfind.dev/docs/errors/E080",
	},
	"E081": {
		Category: CategoryPublish,
		Message:  "Publish misconfigured",
		Detail:   "The publish section of wayfind.json is missing a bucket or region.",
		DocURL:   "https://wayfind.dev/docs/errors/E081",
	},
	"E082": {
		Category: CategoryPublish,
		Message:  "Build output not found",
		Detail:   "The configured output directory does not exist. Run the build before publishing.",
		DocURL:   "https://wayfind.dev/docs/errors/E082",
	},

	// ============================================
	// CLI Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryCLI,
		Message:  "Unknown command",
		Detail:   "The command is not recognized. Run 'wayfind --help' for available commands.",
		DocURL:   "https://wayfind.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "A command argument has an unexpected form.",
		DocURL:   "https://wayfind.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryCLI,
		Message:  "Not a wayfind project",
		Detail:   "This command must run inside a project containing wayfind.json.",
		DocURL:   "https://wayfind.dev/docs/errors/E102",
	},
}

// Register adds a custom error template to the registry. Intended for
// extensions; built-in codes cannot be overwritten.
func Register(code string, template ErrorTemplate) bool {
	if _, exists := registry[code]; exists {
		return false
	}
	registry[code] = template
	return true
}

// Lookup returns the template registered for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
