package ui

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("- [Home](https://example.com/)\n  - [Team](https://example.com/about/team)\n- News\n")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	for _, want := range []string{
		`<a href="https://example.com/">Home</a>`,
		`<a href="https://example.com/about/team">Team</a>`,
		"<li>News</li>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Count(out, "<ul>") != 2 {
		t.Errorf("expected a nested list, got:\n%s", out)
	}
}

func TestRenderHTMLOmitsRawHTML(t *testing.T) {
	out, err := RenderHTML("- <script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML passed through:\n%s", out)
	}
	if !strings.Contains(out, "<!-- raw HTML omitted -->") {
		t.Errorf("expected the omitted-HTML marker:\n%s", out)
	}
}
