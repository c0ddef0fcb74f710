package rephrase

import "strings"

// SystemInstruction is the persona and style directive sent with every call.
const SystemInstruction = `You are an expert AI named THAMBI. Your primary roles are to rephrase text and provide insights based on given content. ` +
	`Always format your responses clearly using Markdown. Start with a main heading (e.g., # Rephrased Content or # Key Insights). ` +
	`Use sub-headings (e.g., ## Option 1, ## Main Points) to organize different sections of your answer. ` +
	`Present your main content as readable paragraphs under the appropriate headings but never try to generate a tabular format. just present the information in text. ` +
	`Never use '*' to mark important points. ` +
	`When rephrasing, offer multiple options (not more than 3) and present them clearly, either using numbered lists or distinct sub-headings for each option. ` +
	`When asked for insights or summaries, if a webpage context is provided, use that context to formulate your answer, but only when it is directly relevant to the user's query. ` +
	`Be clear, accurate, concise, and helpful. Keep rephrased text simple, like: 'the books are found to be in library'.`

const (
	contextStart = "--- Webpage Context ---"
	contextEnd   = "--- End Webpage Context ---"

	withContextInstruction = "Given the user's request and the provided webpage context, please provide rephrasing or insights. " +
		"Use the webpage context only if it's relevant to the user's query."
	withoutContextInstruction = "Given the user's request, please provide rephrasing or insights."
	formatInstruction         = " Ensure your response is well-formatted using Markdown (headings, sub-headings, and paragraphs)."
)

// BuildPrompt assembles the single user message sent to the provider.
// Whether the context is relevant is left to the model.
func BuildPrompt(text, webpageContent string) string {
	var b strings.Builder
	b.WriteString("User's request: '")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("'")

	if ctx := strings.TrimSpace(webpageContent); ctx != "" {
		b.WriteString("\n\n" + contextStart + "\n")
		b.WriteString(ctx)
		b.WriteString("\n" + contextEnd)
		b.WriteString("\n\n" + withContextInstruction)
	} else {
		b.WriteString("\n\n" + withoutContextInstruction)
	}

	b.WriteString(formatInstruction)
	return b.String()
}
