// Package stats computes simple aggregates over a tweet batch: top authors,
// keyword frequencies, and a naive lexicon-based sentiment tally.
package stats

import (
	"sort"
	"strings"
	"unicode"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// Ranking sizes.
const (
	topAuthorCount   = 5
	topKeywordCount  = 10
	minKeywordLength = 3
)

// stopwords excluded from keyword counting.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "this": {}, "that": {}, "with": {},
	"from": {}, "they": {}, "have": {}, "has": {}, "was": {}, "were": {},
	"will": {}, "what": {}, "when": {}, "your": {}, "about": {}, "just": {},
	"like": {}, "more": {}, "out": {}, "get": {}, "its": {}, "their": {},
	"there": {}, "been": {}, "than": {}, "then": {}, "them": {}, "how": {},
	"who": {}, "why": {}, "any": {}, "still": {}, "too": {}, "very": {},
}

// Naive sentiment lexicons.
var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "amazing": {}, "love": {},
	"best": {}, "wonderful": {}, "impressed": {}, "awesome": {}, "nice": {},
	"fantastic": {}, "happy": {}, "progress": {}, "better": {}, "favorite": {},
	"win": {}, "success": {}, "beautiful": {}, "fast": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "hate": {}, "worst": {},
	"disappointing": {}, "broken": {}, "mess": {}, "overrated": {},
	"tired": {}, "slow": {}, "avoid": {}, "fail": {}, "failure": {},
	"problem": {}, "issue": {}, "bug": {}, "wrong": {}, "sad": {},
}

// Aggregate computes the statistics for one tweet batch.
func Aggregate(query string, tweets []domain.Tweet) *domain.TweetStats {
	s := &domain.TweetStats{
		Query:      query,
		TweetCount: len(tweets),
		TopAuthors: topAuthors(tweets),
		Keywords:   topKeywords(tweets),
	}

	for _, t := range tweets {
		switch classify(t.Text) {
		case 1:
			s.Sentiment.Positive++
		case -1:
			s.Sentiment.Negative++
		default:
			s.Sentiment.Neutral++
		}
	}
	return s
}

// topAuthors ranks authors by tweet count, breaking ties by handle.
func topAuthors(tweets []domain.Tweet) []domain.AuthorCount {
	counts := make(map[string]*domain.AuthorCount)
	for _, t := range tweets {
		handle := t.AuthorHandle
		if handle == "" {
			handle = t.AuthorID
		}
		if entry, ok := counts[handle]; ok {
			entry.Count++
			continue
		}
		counts[handle] = &domain.AuthorCount{Handle: handle, Name: t.AuthorName, Count: 1}
	}

	ranked := make([]domain.AuthorCount, 0, len(counts))
	for _, entry := range counts {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Handle < ranked[j].Handle
	})

	if len(ranked) > topAuthorCount {
		ranked = ranked[:topAuthorCount]
	}
	return ranked
}

// topKeywords ranks lowercased, stopword-filtered tokens by frequency.
func topKeywords(tweets []domain.Tweet) []domain.KeywordCount {
	counts := make(map[string]int)
	for _, t := range tweets {
		for _, token := range tokenize(t.Text) {
			counts[token]++
		}
	}

	ranked := make([]domain.KeywordCount, 0, len(counts))
	for word, n := range counts {
		ranked = append(ranked, domain.KeywordCount{Keyword: word, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})

	if len(ranked) > topKeywordCount {
		ranked = ranked[:topKeywordCount]
	}
	return ranked
}

// tokenize lowercases the text and splits it into countable tokens, keeping
// hashtags and mentions intact. URLs are dropped whole before punctuation
// splitting so their fragments do not count as keywords.
func tokenize(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if strings.HasPrefix(word, "http") {
			continue
		}
		fields := strings.FieldsFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '#' && r != '@'
		})
		for _, f := range fields {
			if len(f) < minKeywordLength {
				continue
			}
			if _, skip := stopwords[f]; skip {
				continue
			}
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// classify returns 1 for positive, -1 for negative, 0 for neutral, based on
// which lexicon has more hits in the text.
func classify(text string) int {
	var pos, neg int
	for _, f := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if _, ok := positiveWords[f]; ok {
			pos++
		}
		if _, ok := negativeWords[f]; ok {
			neg++
		}
	}

	switch {
	case pos > neg:
		return 1
	case neg > pos:
		return -1
	default:
		return 0
	}
}
