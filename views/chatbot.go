package views

import (
	"regexp"
	"strings"

	"syncode/types"
)

// ChatbotView is the canned coding assistant: transient messages, pattern
// matched replies, nothing persisted.
type ChatbotView struct {
	Messages []types.ChatMessage
}

var botResponses = []struct {
	match  *regexp.Regexp
	answer string
}{
	{regexp.MustCompile(`(?i)hello|hi|hey`), "Hello there! 👋 How can I assist you with coding today?"},
	{regexp.MustCompile(`(?i)javascript|js`), "JavaScript is super versatile! Do you want a quick snippet example?"},
	{regexp.MustCompile(`(?i)python`), "Python is perfect for AI, web, and automation. Want a sample function?"},
	{regexp.MustCompile(`(?i)react`), "React helps you build interactive UIs efficiently. Need a component example?"},
	{regexp.MustCompile(`(?i)node|express`), "Node.js is great for backend work. Should I show a simple server setup?"},
	{regexp.MustCompile(`(?i)html`), "HTML is the backbone of the web. Want a simple template?"},
	{regexp.MustCompile(`(?i)css`), "CSS styles your webpages. Should I show a gradient or flexbox example?"},
	{regexp.MustCompile(`(?i)git`), "Git helps track code changes. Need basic commands or workflow tips?"},
	{regexp.MustCompile(`(?i)error|bug`), "Oh no! Can you give me the exact error message so I can help debug?"},
}

const botFallback = "Hmm 🤔 I don't have an answer for that yet, but I can try!"

func NewChatbotView() *ChatbotView {
	return &ChatbotView{
		Messages: []types.ChatMessage{
			{Role: "system", Text: "Hello! I'm your coding assistant 🤖"},
		},
	}
}

// Send appends the user's message and the bot's reply. Empty input is
// ignored.
func (v *ChatbotView) Send(input string) {
	if strings.TrimSpace(input) == "" {
		return
	}

	v.Messages = append(v.Messages, types.ChatMessage{Role: "user", Text: input})

	answer := botFallback
	for _, r := range botResponses {
		if r.match.MatchString(input) {
			answer = r.answer
			break
		}
	}
	v.Messages = append(v.Messages, types.ChatMessage{Role: "bot", Text: answer})
}
