package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

var (
	registry = map[string]ErrorTemplate{
		// ============================================
		// Runtime Errors
		// ============================================

		"E009": {
			Category: CategoryRuntime,
			Message:  "Handler not found",
			Detail:   "The event handler for this element was not found. The component may have re-rendered with different handlers.",
			DocURL:   "https://vango.dev/docs/errors/E009",
		},
		"E010": {
			Category: CategoryRuntime,
			Message:  "Unsupported handler signature",
			Detail:   "Event handlers take no argument, a vango.MouseEvent, a vango.KeyboardEvent or an any.",
			DocURL:   "https://vango.dev/docs/errors/E010",
		},
		"E200": {
			Category: CategoryRuntime,
			Message:  "Modal collector not mounted",
			Detail:   "A modal was opened or closed, but no modal.Collector is mounted above the calling component and the handle is not bound to a slot.",
			DocURL:   "https://vango.dev/docs/errors/E200",
		},
		"E201": {
			Category: CategoryRuntime,
			Message:  "Context provider missing",
			Detail:   "A required context value was not provided by any ancestor component.",
			DocURL:   "https://vango.dev/docs/errors/E201",
		},

		// ============================================
		// Protocol Errors
		// ============================================

		"E060": {
			Category: CategoryProtocol,
			Message:  "WebSocket connection failed",
			Detail:   "The live session connection could not be established or was interrupted.",
			DocURL:   "https://vango.dev/docs/errors/E060",
		},
		"E061": {
			Category: CategoryProtocol,
			Message:  "Invalid message",
			Detail:   "The client sent a message that could not be decoded.",
			DocURL:   "https://vango.dev/docs/errors/E061",
		},

		// ============================================
		// Config Errors
		// ============================================

		"E120": {
			Category: CategoryConfig,
			Message:  "Invalid configuration file",
			Detail:   "The configuration file could not be read or parsed.",
			DocURL:   "https://vango.dev/docs/errors/E120",
		},
		"E122": {
			Category: CategoryConfig,
			Message:  "Invalid configuration value",
			Detail:   "A configuration value is out of range or malformed.",
			DocURL:   "https://vango.dev/docs/errors/E122",
		},
		"E141": {
			Category: CategoryConfig,
			Message:  "Configuration file not found",
			Detail:   "No vango-modal.json or vango-modal.yaml was found.",
			DocURL:   "https://vango.dev/docs/errors/E141",
		},

		// ============================================
		// CLI Errors
		// ============================================

		"E160": {
			Category: CategoryCLI,
			Message:  "Invalid command usage",
			Detail:   "The command was called with invalid flags or arguments.",
			DocURL:   "https://vango.dev/docs/errors/E160",
		},
	}
	registryMu sync.RWMutex
)

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds a custom error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}
