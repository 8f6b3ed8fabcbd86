package docx

import "testing"

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid", "héllo", "héllo"},
		{"invalid byte", "a\xffb", "ab"},
		{"truncated sequence", "a\xe2\x82", "a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeUTF8(tt.in); got != tt.want {
				t.Errorf("sanitizeUTF8(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
