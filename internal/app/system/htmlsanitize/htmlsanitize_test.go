package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/cyberhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Patch Tuesday is tomorrow."); got != "Patch Tuesday is tomorrow." {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Reminder:</strong> training due <em>Friday</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); got == input {
		t.Error("expected onclick attribute to be removed")
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); got == input {
		t.Error("expected javascript: href to be removed")
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	input := `<a href="https://cisa.gov/advisories">Advisories</a>`
	got := htmlsanitize.Sanitize(input)
	if got == "" || !strings.Contains(got, "https://cisa.gov/advisories") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	got := htmlsanitize.StripTags("<p>All <strong>clear</strong></p>")
	if got != "All clear" {
		t.Errorf("StripTags: got %q", got)
	}
}
