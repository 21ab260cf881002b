// Package llm provides the optional natural-language summary of a
// company record. It sits strictly downstream of extraction: the
// summarizer reads a finished CompanyRecord and never feeds anything
// back into parsing.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/bormex/bormex/internal/model"
)

// Provider generates prose summaries of company records.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for one summary.
type SummarizeRequest struct {
	Record *model.CompanyRecord

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	MaxTokens int
}

// SummarizeResponse is the generated summary.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// BuildPrompt renders the record into the default summarization prompt.
// The model is told to restate only what the record contains; gaps stay
// gaps.
func BuildPrompt(rec *model.CompanyRecord) string {
	var b strings.Builder

	b.WriteString(`You are summarizing a company's commercial-registry history.

RULES:
1. State ONLY facts present in the record below. Do not infer or speculate.
2. If a field is missing, omit it; never guess dates, names or amounts.
3. Keep the summary to 3-5 sentences, plain prose, no bullet points.

Record:
`)
	fmt.Fprintf(&b, "- Company: %s\n", rec.Name)
	fmt.Fprintf(&b, "- Status: %s\n", rec.Status)
	if rec.ConstitutionDate != "" {
		fmt.Fprintf(&b, "- Constituted: %s\n", rec.ConstitutionDate)
	}
	if rec.Capital != "" {
		fmt.Fprintf(&b, "- Capital: %s\n", rec.Capital)
	}
	if rec.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", rec.Address)
	}
	if rec.Activity != "" {
		fmt.Fprintf(&b, "- Activity: %s\n", rec.Activity)
	}

	if n := len(rec.OfficerRecords); n > 0 {
		fmt.Fprintf(&b, "- Officers (%d):\n", n)
		for i, or := range rec.OfficerRecords {
			if i >= 10 {
				fmt.Fprintf(&b, "  ... and %d more\n", n-10)
				break
			}
			positions := make([]string, 0, len(or.CurrentPositions))
			for _, p := range or.CurrentPositions {
				positions = append(positions, p.Position)
			}
			if len(positions) > 0 {
				fmt.Fprintf(&b, "  - %s (%s): %s\n", or.CanonicalName, or.Status, strings.Join(positions, ", "))
			} else {
				fmt.Fprintf(&b, "  - %s (%s)\n", or.CanonicalName, or.Status)
			}
		}
	}

	if n := len(rec.Events); n > 0 {
		fmt.Fprintf(&b, "- Corporate events (%d):\n", n)
		for i, ev := range rec.Events {
			if i >= 10 {
				fmt.Fprintf(&b, "  ... and %d more\n", n-10)
				break
			}
			if ev.Date.IsZero() {
				fmt.Fprintf(&b, "  - %s\n", ev.Type)
			} else {
				fmt.Fprintf(&b, "  - %s (%s)\n", ev.Type, ev.Date.Format("2006-01-02"))
			}
		}
	}

	b.WriteString("\nSummarize the company's registry history.")
	return b.String()
}
