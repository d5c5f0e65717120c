package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
)

func registrationDB() []model.FAQRecord {
	return []model.FAQRecord{
		{
			Question:     "how to register",
			Answer:       "Go to Registration page.",
			Keywords:     []string{"register", "signup"},
			QuickReplies: []string{"Where is it?", "What do I need?", "Deadline?"},
		},
	}
}

func TestMatch_EmptyDatabase(t *testing.T) {
	for _, q := range []string{"hello", "how to register", "x", "   "} {
		rec, kind := Match(q, nil)
		assert.Nil(t, rec, q)
		assert.Equal(t, MatchNone, kind, q)

		rec, kind = Match(q, []model.FAQRecord{})
		assert.Nil(t, rec, q)
		assert.Equal(t, MatchNone, kind, q)
	}
}

func TestMatch_QuestionContainment(t *testing.T) {
	db := []model.FAQRecord{
		{Question: "Membership Fee", Answer: "fee"},
		{Question: "membership", Answer: "membership"},
	}

	tests := []struct {
		name   string
		query  string
		answer string
	}{
		{"exact", "membership fee", "fee"},
		{"case insensitive", "WHAT IS THE MEMBERSHIP FEE?", "fee"},
		{"shorter question later in order", "tell me about membership", "membership"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, kind := Match(tt.query, db)
			require.NotNil(t, rec)
			assert.Equal(t, tt.answer, rec.Answer)
			assert.Equal(t, MatchQuestion, kind)
		})
	}
}

func TestMatch_FirstQuestionInDocumentOrderWins(t *testing.T) {
	db := []model.FAQRecord{
		{Question: "event", Answer: "first"},
		{Question: "next event", Answer: "second"},
	}

	rec, kind := Match("when is the next event", db)
	require.NotNil(t, rec)
	assert.Equal(t, "first", rec.Answer)
	assert.Equal(t, MatchQuestion, kind)
}

func TestMatch_QuestionIsNotReversedContainment(t *testing.T) {
	// The question must be inside the query, not the query inside the question.
	rec, kind := Match("register", []model.FAQRecord{
		{Question: "how to register", Answer: "a"},
	})
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)
}

func TestMatch_QuestionPassBeatsEarlierKeyword(t *testing.T) {
	db := []model.FAQRecord{
		{Question: "officers", Answer: "keyword record", Keywords: []string{"fee"}},
		{Question: "membership fee", Answer: "question record"},
	}

	rec, kind := Match("what is the membership fee", db)
	require.NotNil(t, rec)
	assert.Equal(t, "question record", rec.Answer)
	assert.Equal(t, MatchQuestion, kind)
}

func TestMatch_KeywordOrder(t *testing.T) {
	db := []model.FAQRecord{
		{Question: "q1", Answer: "first", Keywords: []string{"alpha", "beta"}},
		{Question: "q2", Answer: "second", Keywords: []string{"gamma", "alpha"}},
	}

	tests := []struct {
		name   string
		query  string
		answer string
	}{
		{"first record first keyword", "ALPHA", "first"},
		{"first record second keyword", "about beta and gamma", "first"},
		{"second record", "gamma only", "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, kind := Match(tt.query, db)
			require.NotNil(t, rec)
			assert.Equal(t, tt.answer, rec.Answer)
			assert.Equal(t, MatchKeyword, kind)
		})
	}
}

func TestMatch_RegisterScenario(t *testing.T) {
	rec, kind := Match("How do I register for this?", registrationDB())
	require.NotNil(t, rec)
	assert.Equal(t, MatchKeyword, kind)
	assert.Equal(t, "Go to Registration page.", rec.Answer)
}

func TestMatch_NoMatch(t *testing.T) {
	rec, kind := Match("banana", registrationDB())
	assert.Nil(t, rec)
	assert.Equal(t, MatchNone, kind)
}

// Known edge case: an empty question or keyword is a substring of every
// query, so such a record matches anything. Kept for compatibility with
// existing FAQ files.
func TestMatch_EmptyStringMatchesEverything(t *testing.T) {
	t.Run("empty question", func(t *testing.T) {
		db := []model.FAQRecord{
			{Question: "", Answer: "catch-all"},
			{Question: "banana", Answer: "banana"},
		}
		rec, kind := Match("banana", db)
		require.NotNil(t, rec)
		assert.Equal(t, "catch-all", rec.Answer)
		assert.Equal(t, MatchQuestion, kind)
	})

	t.Run("empty keyword", func(t *testing.T) {
		db := []model.FAQRecord{
			{Question: "unrelated", Answer: "catch-all", Keywords: []string{""}},
		}
		rec, kind := Match("anything at all", db)
		require.NotNil(t, rec)
		assert.Equal(t, "catch-all", rec.Answer)
		assert.Equal(t, MatchKeyword, kind)
	})
}

func TestMatch_ReturnsCopy(t *testing.T) {
	db := registrationDB()
	rec, _ := Match("how to register", db)
	require.NotNil(t, rec)

	rec.Answer = "mutated"
	assert.Equal(t, "Go to Registration page.", db[0].Answer)
}
