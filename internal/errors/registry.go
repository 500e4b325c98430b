package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Document Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryDocument,
		Message:  "Malformed tree document",
		Detail:   "The tree document could not be decoded. Check that it is valid JSON or YAML.",
	},
	"E101": {
		Category: CategoryDocument,
		Message:  "Unknown node kind",
		Detail:   `A node's kind must be "element", "text", "fragment" or the numbers 1, 3, 11.`,
	},
	"E102": {
		Category: CategoryDocument,
		Message:  "Malformed attribute pair",
		Detail:   "Attributes are written as [name, value] pairs of strings.",
	},
	"E103": {
		Category: CategoryDocument,
		Message:  "Unsupported document format",
		Detail:   "Tree documents are read from .json, .yaml or .yml files.",
	},
	"E104": {
		Category: CategoryDocument,
		Message:  "Tree nested too deeply",
		Detail:   "The document exceeds the maximum nesting depth.",
	},
	"E105": {
		Category: CategoryDocument,
		Message:  "Tree document too large",
		Detail:   "The request body exceeds the server's size limit.",
	},

	// ============================================
	// Render Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The rendered markup could not be written to its destination.",
	},
	"E121": {
		Category: CategoryRender,
		Message:  "Output sink failed",
		Detail:   "The rendered markup could not be stored by the output sink.",
	},
	"E122": {
		Category: CategoryRender,
		Message:  "AWS configuration failed",
		Detail:   "The AWS configuration for the S3 sink could not be loaded.",
	},

	// ============================================
	// Config Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The synthdom.json file could not be read or parsed.",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No synthdom.json was found at the requested location.",
	},
	"E142": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with invalid arguments.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
