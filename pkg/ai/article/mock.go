package article

import (
	"context"
	"regexp"
	"strings"
)

// MockTransformer produces deterministic drafts and updates without calling
// a model. It backs local development and the integration tests; the update
// heuristics mirror the behaviors the editor UI exercises most (rewriting
// the intro, adding examples, swapping images).
type MockTransformer struct{}

var _ Transformer = MockTransformer{}

var (
	introPattern = regexp.MustCompile(`(?s)^(# .+\n\n)([^#]+)`)
	imagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
)

func (MockTransformer) Generate(_ context.Context, prompt string) (*Draft, error) {
	title := "Your Article Title Will Appear Here"
	if trimmed := strings.TrimSpace(prompt); trimmed != "" {
		title = strings.ToUpper(trimmed[:1]) + trimmed[1:]
	}
	content := "# " + title + `

This is where your article content will appear, structured into clear sections based on your description.

![Placeholder image](https://via.placeholder.com/800x400?text=Your+Article+Image)

## Section 1

Your article will include multiple sections with clear headings, engaging content, and relevant examples.

## Conclusion

A summary of the key points and suggested next steps.`

	return &Draft{
		Title:   title,
		Content: content,
		Excerpt: deriveExcerpt(content),
	}, nil
}

func (MockTransformer) Update(_ context.Context, req UpdateRequest) (*Update, error) {
	currentContent := req.Content
	request := strings.ToLower(req.Instruction)

	switch {
	case strings.Contains(request, "intro"):
		return &Update{
			IsModification: true,
			Content: introPattern.ReplaceAllString(currentContent,
				"${1}This updated introduction is more engaging and compelling, drawing readers in with improved clarity and flow.\n\n"),
			Message: "I've made the introduction more engaging and compelling!",
		}, nil

	case strings.Contains(request, "example"):
		return &Update{
			IsModification: true,
			Content: currentContent + "\n\n## Code Example\n\nHere's a practical example to illustrate the concepts:\n\n```javascript\nconsole.log(\"Practical Example\");\n```",
			Message: "I've added a practical code example to help illustrate the concepts!",
		}, nil

	case strings.Contains(request, "image") || strings.Contains(request, "replace"):
		replaced := false
		content := imagePattern.ReplaceAllStringFunc(currentContent, func(m string) string {
			if replaced {
				return m
			}
			replaced = true
			return "![Updated image description](https://via.placeholder.com/800x400?text=New+Updated+Image)"
		})
		return &Update{
			IsModification: true,
			Content:        content,
			Message:        "I've replaced the image with a new one based on your description!",
		}, nil

	case strings.HasSuffix(request, "?"):
		return &Update{
			IsModification: false,
			Message:        "That part of the article looks solid to me; let me know if you want it rewritten.",
		}, nil

	default:
		return &Update{
			IsModification: true,
			Content: currentContent + "\n\n## Additional Section\n\nI've added this new section based on your request, keeping the same tone and structure as the rest of the article.",
			Message: "I've updated the article based on your request!",
		}, nil
	}
}
