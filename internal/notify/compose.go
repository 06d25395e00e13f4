// Package notify renders the outcome email sent to a candidate.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/spigell/ats-screener/internal/types"
	"github.com/spigell/ats-screener/internal/validation"
)

// DefaultSignature closes every message.
const DefaultSignature = "HR Team"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// question is the candidate-facing view of an MCQ: the answer and its
// explanation are deliberately absent.
type question struct {
	Question string
	Options  []string
}

type view struct {
	CandidateName string
	JobTitle      string
	CompanyName   string
	Questions     []question
	Improvements  []string
	Signature     string
}

// Composer renders drafts with a fixed signature.
type Composer struct {
	signature string
}

func NewComposer(signature string) *Composer {
	if signature = strings.TrimSpace(signature); signature == "" {
		signature = DefaultSignature
	}
	return &Composer{signature: signature}
}

// Compose renders the draft for result, choosing the qualified or
// not-qualified message by result.Status.
func (c *Composer) Compose(result *types.AnalysisResult, recipient string) (*types.EmailDraft, error) {
	if result == nil {
		return nil, fmt.Errorf("analysis result is required")
	}

	recipient = strings.TrimSpace(recipient)
	if err := validation.Var("candidate email", recipient, "required,email"); err != nil {
		return nil, err
	}

	v := view{
		CandidateName: result.CandidateName,
		JobTitle:      result.JobTitle,
		CompanyName:   result.CompanyName,
		Signature:     c.signature,
	}

	name := "not_qualified.html"
	if result.Qualified() {
		name = "qualified.html"
		v.Questions = make([]question, 0, len(result.MCQs))
		for _, q := range result.MCQs {
			v.Questions = append(v.Questions, question{Question: q.Question, Options: q.Options})
		}
	} else {
		v.Improvements = result.Improvements
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, v); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	return &types.EmailDraft{
		Recipient: recipient,
		Subject:   Subject(result),
		HTMLBody:  body.String(),
	}, nil
}

// Compose renders with the default signature.
func Compose(result *types.AnalysisResult, recipient string) (*types.EmailDraft, error) {
	return NewComposer("").Compose(result, recipient)
}

// Subject is the subject line for result.
func Subject(result *types.AnalysisResult) string {
	return fmt.Sprintf("Application Update - %s at %s", result.JobTitle, result.CompanyName)
}
