package llm

import (
	"fmt"
	"strings"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// excerptChars caps how much of each page goes into the prompt.
const excerptChars = 2000

const systemPrompt = "You are a research assistant. Answer the user's " +
	"question using only the numbered sources provided. Cite every claim " +
	"with its source number in square brackets, like [1] or [2]. If the " +
	"sources do not contain the answer, say so."

// buildPrompt renders the numbered source excerpts and the question.
func buildPrompt(query string, pages []*domain.CrawledPage) string {
	var b strings.Builder

	b.WriteString("Sources:\n\n")
	for i, page := range pages {
		fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, page.Title, page.URL, page.Excerpt(excerptChars))
	}

	fmt.Fprintf(&b, "Question: %s\n", query)
	return b.String()
}
