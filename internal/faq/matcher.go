package faq

import (
	"strings"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
)

// MatchKind reports which pass of the matcher found a record.
type MatchKind string

const (
	MatchNone     MatchKind = "none"
	MatchQuestion MatchKind = "question"
	MatchKeyword  MatchKind = "keyword"
)

// Match returns the first record whose question, or failing that whose
// keyword, is contained in query. Comparison is case-insensitive and
// follows document order. An empty question or keyword is contained in
// every query and therefore always matches.
func Match(query string, database []model.FAQRecord) (*model.FAQRecord, MatchKind) {
	lowerQuery := strings.ToLower(query)

	for i := range database {
		if strings.Contains(lowerQuery, strings.ToLower(database[i].Question)) {
			rec := database[i]
			return &rec, MatchQuestion
		}
	}

	for i := range database {
		for _, keyword := range database[i].Keywords {
			if strings.Contains(lowerQuery, strings.ToLower(keyword)) {
				rec := database[i]
				return &rec, MatchKeyword
			}
		}
	}

	return nil, MatchNone
}
