package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(RenderMarkdown("# Lagos Chapter\n\nMonthly **meetup** for members."))

	assert.Contains(t, html, "Lagos Chapter")
	assert.Contains(t, html, "<strong>meetup</strong>")
}

func TestRenderMarkdownSanitizesScripts(t *testing.T) {
	html := string(RenderMarkdown("hello <script>alert('x')</script> world"))

	assert.False(t, strings.Contains(html, "<script>"), "script tags must be stripped")
	assert.Contains(t, html, "hello")
}
