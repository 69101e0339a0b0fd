// Package classifier maps a free-text incident description to one label from
// a fixed category set, using a single LLM completion per call.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"speakup.app/intake/common/llm"
	"speakup.app/intake/common/logger"
)

// Categories is the closed set of report categories. Order matters: it is
// embedded verbatim in the prompt.
var Categories = []string{
	"Academic Misconduct",
	"Harassment and Discrimination",
	"Financial/Resources Misconduct",
	"Safety/Security Breaches",
	"None of the Above",
}

// FallbackCategory is substituted when the model replies with anything
// outside the fixed set.
const FallbackCategory = "None of the Above"

// Gateway turns descriptions into category labels. It is stateless: no
// retries, no caching, one round trip per call.
type Gateway struct {
	llm       llm.Client
	maxTokens int
}

func New(client llm.Client, maxTokens int) *Gateway {
	return &Gateway{
		llm:       client,
		maxTokens: maxTokens,
	}
}

type categoryResult struct {
	Category string `json:"category" jsonschema:"required,description=The single most appropriate category for the report"`
}

// Classify returns the category for the given description. Any transport or
// upstream failure propagates as a single error; the caller decides how to
// recover.
func (g *Gateway) Classify(ctx context.Context, description string) (string, error) {
	sc := logger.StartSpan(ctx, "intake.classifier.classify")
	defer sc.End()
	ctx = sc.Context()

	result := categoryResult{}
	_, err := g.llm.Chat(ctx, llm.Request{
		UserPrompt:  buildPrompt(description),
		SchemaName:  "report_category",
		Schema:      llm.GenerateSchema[categoryResult](),
		MaxTokens:   g.maxTokens,
		Temperature: llm.Temp(0),
	}, &result)
	if err != nil {
		sc.RecordError(err)
		return "", fmt.Errorf("classify description: %w", err)
	}

	category := Normalize(result.Category)
	slog.DebugContext(ctx, "description classified",
		"category", category,
		"raw_label", logger.Truncate(result.Category, 80),
		"description", logger.Truncate(description, 120))

	return category, nil
}

// Normalize trims the model's reply and coerces anything outside the fixed
// category set to FallbackCategory.
func Normalize(label string) string {
	trimmed := strings.TrimSpace(label)
	for _, c := range Categories {
		if trimmed == c {
			return c
		}
	}
	return FallbackCategory
}

func buildPrompt(description string) string {
	return fmt.Sprintf(`Classify the following report description into one of these categories:
%s

Description:
%q

Only reply with the most appropriate category. If none match, return %q.`,
		strings.Join(Categories, ", "), description, FallbackCategory)
}
