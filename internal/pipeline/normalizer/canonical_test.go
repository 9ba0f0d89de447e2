package normalizer

import "testing"

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SQL Injection", "sql_injection"},
		{"Cross-Site Scripting (Reflected)", "cross_site_scripting_reflected"},
		{"cross_site_scripting_reflected", "cross_site_scripting_reflected"},
		{"  Mass Assignment  ", "mass_assignment"},
		{"CWE-89", "cwe_89"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := NormalizeToken(tt.in); got != tt.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalPath(t *testing.T) {
	prefixes := []string{"/rails/app", "C:/build/src"}

	tests := []struct {
		in   string
		want string
	}{
		{"app/models/user.rb", "app/models/user.rb"},
		{"/rails/app/app/models/user.rb", "app/models/user.rb"},
		{"C:\\build\\src\\app\\models\\user.rb", "app/models/user.rb"},
		{"./app/models/../models/user.rb", "app/models/user.rb"},
		{"/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalPath(tt.in, prefixes); got != tt.want {
			t.Errorf("CanonicalPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/users?id=1", "https://example.com/users"},
		{"https://example.com/users?id=2", "https://example.com/users"},
		{"HTTPS://Example.COM/Users/", "https://example.com/Users"},
		{"https://example.com/page#section", "https://example.com/page"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalURL(tt.in); got != tt.want {
			t.Errorf("CanonicalURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
