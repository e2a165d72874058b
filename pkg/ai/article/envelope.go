package article

import (
	"encoding/json"
	"strings"
)

type updateEnvelope struct {
	IsModification bool   `json:"is_modification"`
	Content        string `json:"content"`
	Message        string `json:"message"`
}

// parseUpdate decodes the model's response into an Update. Models wrap JSON
// in code fences or prose often enough that strict decoding would reject
// good answers, so the parse is lenient: fences are stripped and the
// decoder works on the outermost brace pair. Anything that still fails to
// decode is treated as a conversational reply rather than an error.
func parseUpdate(raw string) *Update {
	text := strings.TrimSpace(raw)
	text = stripCodeFence(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var env updateEnvelope
		if err := json.Unmarshal([]byte(text[start:end+1]), &env); err == nil && env.Message != "" {
			return &Update{
				IsModification: env.IsModification,
				Content:        env.Content,
				Message:        env.Message,
			}
		}
	}

	return &Update{IsModification: false, Message: strings.TrimSpace(raw)}
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := text[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:] // drop the info string line
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
