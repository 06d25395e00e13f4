// Package screening runs a resume through the model and decides whether the
// candidate qualifies.
package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/document"
	"github.com/spigell/ats-screener/internal/llm"
	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/parser"
	"github.com/spigell/ats-screener/internal/prompt"
	"github.com/spigell/ats-screener/internal/types"
)

// Threshold is the inclusive score at which a candidate qualifies.
const Threshold = prompt.QualificationThreshold

var defaultImprovements = []string{
	"Improve technical skills related to the role.",
	"Work on more projects to gain experience.",
	"Enhance your resume with measurable results.",
}

// Improvements returns the suggestions sent to candidates who did not qualify.
func Improvements() []string {
	return append([]string(nil), defaultImprovements...)
}

// Decide maps a score to a verdict.
func Decide(score int) types.Status {
	if score >= Threshold {
		return types.Qualified
	}
	return types.NotQualified
}

// Screener sequences extraction, scoring, the verdict and the assessment.
type Screener struct {
	model   llm.Completer
	session *Session
	logger  *zap.Logger
	extract func([]byte) (string, error)
	now     func() time.Time
}

// Option customizes a Screener.
type Option func(*Screener)

// WithExtractor replaces the resume text extractor.
func WithExtractor(fn func([]byte) (string, error)) Option {
	return func(s *Screener) { s.extract = fn }
}

// WithClock replaces the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Screener) { s.now = now }
}

func New(model llm.Completer, session *Session, log *zap.Logger, opts ...Option) *Screener {
	if session == nil {
		session = NewSession()
	}

	s := &Screener{
		model:   model,
		session: session,
		logger:  logger.WithFields(log),
		extract: document.Extract,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Session returns the session the screener stores results in.
func (s *Screener) Session() *Session {
	return s.session
}

// Analyze screens the request and stores the result in the session. On any
// error the previously stored result is left untouched.
func (s *Screener) Analyze(ctx context.Context, req AnalysisRequest) (*types.AnalysisResult, error) {
	req = req.normalized()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	r := &run{
		state:  StateIdle,
		logger: s.logger.With(logger.AnalysisFields(id.String(), req.CandidateName, req.JobTitle)...),
	}

	resumeText, err := s.extract(req.Resume)
	if err != nil {
		return nil, r.fail(fmt.Errorf("extract resume: %w", err))
	}
	r.advance(StateExtracted)

	response, err := s.model.Complete(ctx, prompt.Screening(resumeText, req.JobDescription))
	if err != nil {
		return nil, r.fail(fmt.Errorf("screening request: %w", err))
	}

	score := parser.Score(response)
	if !score.Parsed {
		r.logger.Warn("no percentage in screening response, defaulting score to 0")
	}
	r.advance(StateScored, zap.Int("score", score.Value))

	result := &types.AnalysisResult{
		ID:              id,
		CandidateName:   req.CandidateName,
		JobTitle:        req.JobTitle,
		CompanyName:     req.CompanyName,
		Score:           score.Value,
		Status:          Decide(score.Value),
		ScoreParsed:     score.Parsed,
		QuestionsParsed: true,
		MCQs:            []types.MCQRecord{},
		Improvements:    []string{},
	}
	r.advance(StateDecided, zap.String("status", string(result.Status)))

	if result.Qualified() {
		response, err := s.model.Complete(ctx, prompt.MCQ(req.JobTitle))
		if err != nil {
			return nil, r.fail(fmt.Errorf("assessment request: %w", err))
		}

		questions := parser.Questions(response)
		if !questions.OK() {
			r.logger.Warn("assessment payload unusable, sending no questions", zap.String("reason", questions.Reason))
		}
		result.MCQs = questions.Records
		result.QuestionsParsed = questions.OK()
		r.advance(StateMCQGenerated, zap.Int("questions", len(result.MCQs)))
	} else {
		result.Improvements = Improvements()
		r.advance(StateImprovementsAssigned)
	}

	result.CreatedAt = s.now()
	s.session.Replace(result)
	r.advance(StateResultReady)

	r.logger.Info("analysis completed",
		zap.Int("score", result.Score),
		zap.String("status", string(result.Status)),
		zap.Bool("score_parsed", result.ScoreParsed),
		zap.Bool("questions_parsed", result.QuestionsParsed),
	)

	return result, nil
}

type run struct {
	state  State
	logger *zap.Logger
}

func (r *run) advance(next State, fields ...zap.Field) {
	r.logger.Debug("screening transition",
		append([]zap.Field{zap.Stringer("from", r.state), zap.Stringer("to", next)}, fields...)...,
	)
	r.state = next
}

func (r *run) fail(err error) error {
	return &StageError{State: r.state, Err: err}
}
