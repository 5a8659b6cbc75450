package templates

// ByName looks up one of the four built-in templates by its Name tag
// ("chrome_130", "firefox_135", "safari_17", "edge_130"). It backs the
// orchestrator's rotation policy and lets callers resolve a custls.TemplateRef
// without a separate registry dependency, grounded on the teacher's
// GetClientHelloID browser-name switch in internal/tls/presets.go.
func ByName(name string) (TemplateData, bool) {
	switch name {
	case "chrome_130":
		return Chrome130(), true
	case "firefox_135":
		return Firefox135(), true
	case "safari_17":
		return Safari17(), true
	case "edge_130":
		return Edge130(), true
	default:
		return TemplateData{}, false
	}
}

// All returns the four built-in templates in a stable, documented order:
// Chrome, Firefox, Safari, Edge. This is the default rotation list when a
// caller configures rotation without naming explicit templates.
func All() []TemplateData {
	return []TemplateData{Chrome130(), Firefox135(), Safari17(), Edge130()}
}
