package faq

import (
	"fmt"

	"github.com/capitalize-ai/faq-chatbot/internal/model"
)

// MaxQuickReplies caps the number of suggestions attached to a reply.
const MaxQuickReplies = 3

const fallbackTemplate = `I understand you're asking about: "%s". For more specific assistance, please contact our support team or try one of these common questions:`

// Reply is the bot's answer to one user message.
type Reply struct {
	Text         string
	QuickReplies []string
}

// ComposeReply builds the bot reply for query from an optional match.
func ComposeReply(query string, matched *model.FAQRecord, doc *model.FAQDocument) Reply {
	if matched != nil {
		return Reply{
			Text:         matched.Answer,
			QuickReplies: firstN(matched.QuickReplies, MaxQuickReplies),
		}
	}

	var common []string
	if doc != nil {
		common = doc.CommonQuestions
	}
	return Reply{
		Text:         FallbackText(query),
		QuickReplies: firstN(common, MaxQuickReplies),
	}
}

// FallbackText is the reply used when no FAQ record matches.
func FallbackText(query string) string {
	return fmt.Sprintf(fallbackTemplate, query)
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}
