// Package types holds the records handed between the screening stages.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Status is the qualification verdict of an analysis.
type Status string

const (
	Qualified    Status = "Qualified"
	NotQualified Status = "Not Qualified"
)

// MCQRecord is one multiple-choice question produced by the model. Records
// are passed through as produced: the option count and answer letter are not
// checked.
type MCQRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// AnalysisResult is the outcome of one screening run.
type AnalysisResult struct {
	ID            uuid.UUID   `json:"id"`
	CandidateName string      `json:"candidate_name"`
	JobTitle      string      `json:"job_title"`
	CompanyName   string      `json:"company_name"`
	Score         int         `json:"score"`
	Status        Status      `json:"qualified"`
	MCQs          []MCQRecord `json:"mcqs"`
	Improvements  []string    `json:"improvements"`

	// ScoreParsed is false when no percentage was found and Score defaulted to 0.
	ScoreParsed bool `json:"score_parsed"`
	// QuestionsParsed is false when the assessment payload was unusable and
	// MCQs defaulted to empty. Always true for NotQualified results.
	QuestionsParsed bool `json:"questions_parsed"`

	CreatedAt time.Time `json:"created_at"`
}

// Qualified reports whether the candidate passed the screening.
func (r *AnalysisResult) Qualified() bool {
	return r != nil && r.Status == Qualified
}

// EmailDraft is a composed candidate notification ready for delivery.
type EmailDraft struct {
	Recipient string
	Subject   string
	HTMLBody  string
}
