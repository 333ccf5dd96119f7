package ai

import "strings"

// systemInstructions opens every prompt and pins the model to the support-agent role.
const systemInstructions = `You are a friendly customer support agent for an online store.
Answer using the FAQ entries below whenever they cover the question.
If the FAQs do not cover it, answer briefly and suggest contacting support.
Keep replies short, polite and concrete.`

// BuildPrompt assembles the full prompt for one reply: instructions, the FAQ
// knowledge base, the recent conversation (only when there is one), and the
// new message with a cue for the model to answer as the agent. Pure; FAQ and
// history order is preserved as given.
func BuildPrompt(faqs []FAQ, history []Turn, userMessage string) string {
	var b strings.Builder

	b.WriteString(systemInstructions)
	b.WriteString("\n\nFAQ:\n")
	for _, f := range faqs {
		b.WriteString("Q: ")
		b.WriteString(f.Question)
		b.WriteString("\nA: ")
		b.WriteString(f.Answer)
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, t := range history {
			if t.Role == RoleAgent {
				b.WriteString("Agent: ")
			} else {
				b.WriteString("Customer: ")
			}
			b.WriteString(t.Text)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nCustomer: ")
	b.WriteString(userMessage)
	b.WriteString("\nAgent:")

	return b.String()
}
