package paths

import "testing"

func TestPagePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"about", "about"},
		{"/about/team/", "about/team"},
		{"about//team", "about/team"},
		{`about\team`, "about/team"},
		{"  contact  ", "contact"},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := PagePath(tt.in); got != tt.want {
			t.Errorf("PagePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSiteURL(t *testing.T) {
	tests := []struct {
		base string
		rel  string
		want string
	}{
		{"https://example.com", "/", "https://example.com/"},
		{"https://example.com/", "/about", "https://example.com/about"},
		{"https://example.com", "contact", "https://example.com/contact"},
		{"https://example.com/blog/", "/2024/", "https://example.com/blog/2024/"},
		{"", "/sub", "/sub"},
	}

	for _, tt := range tests {
		if got := SiteURL(tt.base, tt.rel); got != tt.want {
			t.Errorf("SiteURL(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}

func TestRelativeURL(t *testing.T) {
	tests := []struct {
		base string
		u    string
		want string
	}{
		{"https://example.com", "https://example.com/about", "/about"},
		{"https://example.com/", "https://example.com", "/"},
		{"https://example.com", "https://example.com/", "/"},
		{"https://example.com", "https://example.com?p=1", "/?p=1"},
		{"https://example.com", "https://other.org/x", "https://other.org/x"},
		{"https://example.com", "https://example.com.au/x", "https://example.com.au/x"},
		{"", "https://example.com/about", "https://example.com/about"},
	}

	for _, tt := range tests {
		if got := RelativeURL(tt.base, tt.u); got != tt.want {
			t.Errorf("RelativeURL(%q, %q) = %q, want %q", tt.base, tt.u, got, tt.want)
		}
	}
}
