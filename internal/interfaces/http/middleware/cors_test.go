// internal/interfaces/http/middleware/cors_test.go
package middleware

import "testing"

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"exact match", "https://cafe.example.com", []string{"https://cafe.example.com"}, true},
		{"wildcard all", "https://anything.test", []string{"*"}, true},
		{"subdomain wildcard", "https://admin.example.com", []string{"*.example.com"}, true},
		{"bare domain on wildcard", "https://example.com", []string{"*.example.com"}, true},
		{"suffix lookalike rejected", "https://evil-example.com", []string{"*.example.com"}, false},
		{"unlisted origin", "https://other.test", []string{"https://cafe.example.com"}, false},
		{"empty list", "https://cafe.example.com", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := originAllowed(tt.origin, tt.allowed); got != tt.want {
				t.Errorf("originAllowed(%q, %v) = %v, want %v", tt.origin, tt.allowed, got, tt.want)
			}
		})
	}
}
