// Package model defines data structures for the FAQ chatbot.
package model

// FAQRecord is one question/answer unit of the FAQ document.
type FAQRecord struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Keywords     []string `json:"keywords"`
	QuickReplies []string `json:"quickReplies"`
}

// FAQDocument is the static knowledge base the bot answers from.
type FAQDocument struct {
	InitialMessage  string      `json:"initialMessage"`
	FAQDatabase     []FAQRecord `json:"faqDatabase"`
	CommonQuestions []string    `json:"commonQuestions"`
}

// Clone returns a deep copy of the document.
func (d *FAQDocument) Clone() *FAQDocument {
	if d == nil {
		return nil
	}

	out := &FAQDocument{
		InitialMessage:  d.InitialMessage,
		FAQDatabase:     make([]FAQRecord, len(d.FAQDatabase)),
		CommonQuestions: append([]string{}, d.CommonQuestions...),
	}
	for i, rec := range d.FAQDatabase {
		out.FAQDatabase[i] = FAQRecord{
			Question:     rec.Question,
			Answer:       rec.Answer,
			Keywords:     append([]string{}, rec.Keywords...),
			QuickReplies: append([]string{}, rec.QuickReplies...),
		}
	}
	return out
}
