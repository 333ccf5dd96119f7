package ai

import (
	"strings"
	"unicode/utf8"
)

// contactTriggers mean the customer is asking how to reach a human.
// They take precedence over FAQ matching.
var contactTriggers = []string{"contact", "phone", "email", "call", "reach"}

// contactBlock is returned verbatim whenever the customer asks how to reach us.
const contactBlock = `You can reach our support team directly:
Email: support@example-store.com
Phone: +1 (800) 555-0142 (Mon-Fri, 9am-6pm EST)
We usually reply to email within one business day.`

// genericFallback is the answer of last resort.
const genericFallback = `Sorry, I couldn't find an answer to that right now. Please email support@example-store.com or call +1 (800) 555-0142 and our team will help you out.`

// questionPrefixLen is how much of an FAQ question is used for direct matching.
const questionPrefixLen = 15

// Respond produces a reply without consulting any model. Pure and total:
// identical input gives identical output, and some text always comes back.
//
// Matching runs in fixed precedence: contact triggers, then FAQ question
// prefixes in list order, then FAQ keyword hits in list order, then the
// generic fallback.
func Respond(userMessage string, faqs []FAQ) string {
	msg := strings.ToLower(userMessage)

	for _, w := range contactTriggers {
		if strings.Contains(msg, w) {
			return contactBlock
		}
	}

	// Direct match: the customer typed (at least the start of) an FAQ question.
	for _, f := range faqs {
		prefix := strings.ToLower(f.Question)
		if r := []rune(prefix); len(r) > questionPrefixLen {
			prefix = string(r[:questionPrefixLen])
		}
		if prefix != "" && strings.Contains(msg, prefix) {
			return f.Answer
		}
	}

	// Looser match on the question's longer words.
	for _, f := range faqs {
		for _, word := range strings.Fields(strings.ToLower(f.Question)) {
			if utf8.RuneCountInString(word) > 4 && strings.Contains(msg, word) {
				return f.Answer
			}
		}
	}

	return genericFallback
}
