// Package template provides the static invoice template registry.
//
// Templates control invoice appearance only; they never affect totals or
// lifecycle. Visual rendering itself lives behind the plugin exporter
// boundary, so this package holds just the deterministic view inputs.
package template

// Template describes one invoice appearance preset.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PrimaryColor string `json:"primary_color"`
	FontFamily   string `json:"font_family"`
	ShowLogo     bool   `json:"show_logo"`
	FooterNotes  string `json:"footer_notes"`
}

// registry lists every built-in template. Order matters: the first entry
// is the fallback for unknown IDs.
var registry = []Template{
	{ID: "classic", Name: "Classic", PrimaryColor: "#1f2937", FontFamily: "Helvetica", ShowLogo: true},
	{ID: "modern", Name: "Modern", PrimaryColor: "#2563eb", FontFamily: "Inter", ShowLogo: true},
	{ID: "minimal", Name: "Minimal", PrimaryColor: "#111111", FontFamily: "Georgia", ShowLogo: false},
	{ID: "compact", Name: "Compact", PrimaryColor: "#065f46", FontFamily: "Arial", ShowLogo: true},
}

// Default returns the fallback template (the first registered one).
func Default() Template { return registry[0] }

// ByID looks up a template by ID. Unknown IDs return the default
// template; this never fails.
func ByID(id string) Template {
	for _, t := range registry {
		if t.ID == id {
			return t
		}
	}
	return Default()
}

// All returns every registered template in registry order.
func All() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)
	return out
}
