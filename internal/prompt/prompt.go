// Package prompt renders the instructions sent to the language model.
package prompt

import (
	_ "embed"
	"strconv"
	"strings"
)

const (
	// QualificationThreshold is the inclusive experience-match percentage at
	// which a candidate is considered qualified.
	QualificationThreshold = 70
	// QuestionCount is how many assessment questions are requested.
	QuestionCount = 5
)

//go:embed screening.md
var screeningTemplate string

//go:embed mcq.md
var mcqTemplate string

// Screening embeds the resume and job description into the screening instructions.
func Screening(resumeText, jobDescription string) string {
	return strings.NewReplacer(
		"{{THRESHOLD}}", strconv.Itoa(QualificationThreshold),
		"{{RESUME}}", strings.TrimSpace(resumeText),
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
	).Replace(screeningTemplate)
}

// MCQ asks for the assessment questions for jobTitle as a JSON object.
func MCQ(jobTitle string) string {
	return strings.NewReplacer(
		"{{COUNT}}", strconv.Itoa(QuestionCount),
		"{{JOB_TITLE}}", strings.TrimSpace(jobTitle),
	).Replace(mcqTemplate)
}
