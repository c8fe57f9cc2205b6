package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/campushub/campushub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", got)
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestSanitize_AllowsLists(t *testing.T) {
	input := "<ul><li>Item 1</li><li>Item 2</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected list preserved, got %q", got)
	}
}

func TestSanitize_AllowsCodeBlocks(t *testing.T) {
	input := "<pre><code>func main() {}</code></pre>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected code block preserved, got %q", got)
	}
}

func TestSanitize_RemovesIframe(t *testing.T) {
	got := htmlsanitize.Sanitize(`<p>Content</p><iframe src="https://evil.com"></iframe>`)
	if strings.Contains(got, "iframe") {
		t.Errorf("expected iframe removed, got %q", got)
	}
	if !strings.Contains(got, "Content") {
		t.Errorf("expected safe content preserved, got %q", got)
	}
}

func TestStripTags_Empty(t *testing.T) {
	if got := htmlsanitize.StripTags(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestStripTags_RemovesAllMarkup(t *testing.T) {
	got := htmlsanitize.StripTags("<p>Hello <strong>there</strong></p>")
	if got != "Hello there" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestStripTags_CollapsesWhitespace(t *testing.T) {
	got := htmlsanitize.StripTags("<p>Line 1</p>\n\n  <p>Line 2</p>")
	if got != "Line 1 Line 2" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}
