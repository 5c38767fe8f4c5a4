package slugs

import "testing"

func TestSymbolic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Home", "home"},
		{"About Us", "about-us"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Contact_Form", "contact-form"},
		{"Sub -- Page", "sub-page"},
		{"Release 2", "release-2"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Symbolic(tt.in); got != tt.want {
				t.Fatalf("Symbolic(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDashedKeepsNonLatinLetters(t *testing.T) {
	if got := dashed("Привет, мир"); got != "привет-мир" {
		t.Fatalf("dashed() = %q, want %q", got, "привет-мир")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Main", "main"},
		{"Footer Links", "footer-links"},
		{"UPPER CASE", "upper-case"},
		{" Primary Navigation ", "primary-navigation"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Name(tt.in); got != tt.want {
				t.Fatalf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
