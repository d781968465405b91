package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head>
  <title>Understanding Goroutines</title>
  <meta name="description" content="A practical guide to goroutines.">
  <meta name="author" content="Jordan Blake">
</head>
<body>
  <nav>Home | About | Contact</nav>
  <article>
    <h1>Understanding Goroutines</h1>
    <script>trackPageView();</script>
    <p>Goroutines are lightweight threads managed
       by the Go runtime.</p>
    <aside>Related reading</aside>
    <p>They start with a small stack that grows as needed.</p>
  </article>
  <footer>Copyright 2026</footer>
</body>
</html>`

const bareBodyPage = `<html>
<head><meta property="og:title" content="Fallback Title">
<meta property="og:description" content="Fallback description."></head>
<body>
  <header>Site header</header>
  <p>Only body text here.</p>
  <footer>Site footer</footer>
</body>
</html>`

func TestExtract(t *testing.T) {
	t.Parallel()

	e := NewPageExtractor(0)

	page, err := e.Extract("https://example.com/goroutines", []byte(articlePage))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/goroutines", page.URL)
	assert.Equal(t, "Understanding Goroutines", page.Title)
	assert.Equal(t, "A practical guide to goroutines.", page.Description)
	assert.Equal(t, "Jordan Blake", page.Author)
	assert.False(t, page.FetchedAt.IsZero())

	assert.Contains(t, page.Text, "Goroutines are lightweight threads managed by the Go runtime.")
	assert.Contains(t, page.Text, "small stack that grows")
	assert.NotContains(t, page.Text, "trackPageView")
	assert.NotContains(t, page.Text, "Related reading")
	assert.NotContains(t, page.Text, "Home | About")
	assert.NotContains(t, page.Text, "Copyright")

	assert.Len(t, page.ContentHash, 64)
}

func TestExtractFallbacks(t *testing.T) {
	t.Parallel()

	e := NewPageExtractor(0)

	page, err := e.Extract("https://example.com/page", []byte(bareBodyPage))
	require.NoError(t, err)

	assert.Equal(t, "Fallback Title", page.Title)
	assert.Equal(t, "Fallback description.", page.Description)
	assert.Empty(t, page.Author)
	assert.Equal(t, "Only body text here.", page.Text)
}

func TestExtractHashIsStable(t *testing.T) {
	t.Parallel()

	e := NewPageExtractor(0)

	first, err := e.Extract("https://example.com/a", []byte(articlePage))
	require.NoError(t, err)
	second, err := e.Extract("https://example.com/b", []byte(articlePage))
	require.NoError(t, err)

	assert.Equal(t, first.ContentHash, second.ContentHash)

	other, err := e.Extract("https://example.com/c", []byte(bareBodyPage))
	require.NoError(t, err)
	assert.NotEqual(t, first.ContentHash, other.ContentHash)
}

func TestTruncateAtWordBoundary(t *testing.T) {
	t.Parallel()

	e := NewPageExtractor(20)

	body := "<html><body><p>" + strings.Repeat("word ", 20) + "</p></body></html>"
	page, err := e.Extract("https://example.com", []byte(body))
	require.NoError(t, err)

	assert.LessOrEqual(t, len(page.Text), 20)
	assert.Equal(t, "word word word word", page.Text)
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", collapseWhitespace("  a \n\t b \r\n c  "))
	assert.Empty(t, collapseWhitespace("   \n\t  "))
}
