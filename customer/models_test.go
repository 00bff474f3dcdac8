package customer

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "Acme Corp", "Acme Corp"},
		{"Padded", "  Acme Corp  ", "Acme Corp"},
		{"Empty", "", "(unnamed)"},
		{"Whitespace", "   ", "(unnamed)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Customer{Name: tt.in}
			if got := c.DisplayName(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
