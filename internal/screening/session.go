package screening

import (
	"sync/atomic"

	"github.com/spigell/ats-screener/internal/types"
)

// Session holds the single live analysis result of an interactive session.
// The result is always swapped as a whole record.
type Session struct {
	current atomic.Pointer[types.AnalysisResult]
}

func NewSession() *Session {
	return &Session{}
}

// Replace stores r as the current result, discarding the previous one.
func (s *Session) Replace(r *types.AnalysisResult) {
	s.current.Store(r)
}

// Current returns the latest completed result, if any.
func (s *Session) Current() (*types.AnalysisResult, bool) {
	r := s.current.Load()
	return r, r != nil
}
