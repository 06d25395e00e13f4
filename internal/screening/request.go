package screening

import (
	"strings"

	"github.com/spigell/ats-screener/internal/validation"
)

// AnalysisRequest is one submission from the recruiter.
type AnalysisRequest struct {
	CandidateName  string `label:"candidate name" validate:"required"`
	JobTitle       string `label:"job title" validate:"required"`
	CompanyName    string `label:"company name" validate:"required"`
	Resume         []byte `label:"resume" validate:"required,min=1"`
	JobDescription string `label:"job description" validate:"required"`
}

// normalized returns a copy with surrounding whitespace removed from the text
// fields, so blank input counts as missing.
func (r AnalysisRequest) normalized() AnalysisRequest {
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	return r
}

// Validate reports every missing field as a *validation.Error.
func (r AnalysisRequest) Validate() error {
	return validation.Struct(r.normalized())
}
