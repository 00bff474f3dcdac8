package template

import "testing"

func TestByID(t *testing.T) {
	tests := []struct {
		id       string
		expected string
	}{
		{"classic", "classic"},
		{"modern", "modern"},
		{"minimal", "minimal"},
		{"no-such-template", "classic"}, // unknown falls back to the first template
		{"", "classic"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ByID(tt.id); got.ID != tt.expected {
				t.Errorf("ByID(%q): got %q, want %q", tt.id, got.ID, tt.expected)
			}
		})
	}
}

func TestDefaultIsFirst(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("registry is empty")
	}
	if Default().ID != all[0].ID {
		t.Errorf("default template %q is not the first registered %q", Default().ID, all[0].ID)
	}
}
