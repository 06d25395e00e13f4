package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/notify"
	"github.com/spigell/ats-screener/internal/screening"
	"github.com/spigell/ats-screener/internal/types"
)

const msgAnalysisRequired = "Please complete analysis first."

var errExit = errors.New("exit requested")

// inputs are the values given on the command line. Empty ones are asked for.
type inputs struct {
	ResumePath     string
	JobDescription string
	Candidate      string
	JobTitle       string
	Company        string
	Email          string
}

type sender interface {
	Send(ctx context.Context, draft *types.EmailDraft) error
}

// askFunc reads one value from the user; def is offered as the default answer.
type askFunc func(label, def string) (string, error)

// session drives the analyze, view and send stages. Each stage after the
// first works on the latest stored analysis only.
type session struct {
	screener    *screening.Screener
	composer    *notify.Composer
	mailer      sender
	input       inputs
	interactive bool
	aiTimeout   time.Duration
	mailTimeout time.Duration
	ask         askFunc
	out         io.Writer
	logger      *zap.Logger
}

func (s *session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptAnalyze:
		return s.analyze(ctx)
	case PromptView:
		return s.view()
	case PromptSend:
		return s.send(ctx)
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// auto runs analyze, view and send in sequence without menus.
func (s *session) auto(ctx context.Context) error {
	for _, action := range []string{PromptAnalyze, PromptView, PromptSend} {
		if err := s.handleAction(ctx, action); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) analyze(ctx context.Context) error {
	req, err := s.request()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.aiTimeout)
	defer cancel()

	result, err := s.screener.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze resume: %w", err)
	}

	fmt.Fprintf(s.out, "Analysis completed: %s with %d%%. Choose %q to see the details.\n", result.Status, result.Score, PromptView)
	return nil
}

func (s *session) view() error {
	result, ok := s.screener.Session().Current()
	if !ok {
		s.logger.Warn(msgAnalysisRequired)
		return nil
	}

	writeReport(s.out, result)
	return nil
}

func (s *session) send(ctx context.Context) error {
	result, ok := s.screener.Session().Current()
	if !ok {
		s.logger.Warn(msgAnalysisRequired)
		return nil
	}

	email, err := s.value("Candidate email", s.input.Email)
	if err != nil {
		return err
	}

	draft, err := s.composer.Compose(result, email)
	if err != nil {
		return fmt.Errorf("compose email: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.mailTimeout)
	defer cancel()

	if err := s.mailer.Send(ctx, draft); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Email successfully sent to %s\n", draft.Recipient)
	return nil
}

// request gathers the analysis inputs. Validation of blank values is left to
// the screener so every missing field is reported together.
func (s *session) request() (screening.AnalysisRequest, error) {
	var req screening.AnalysisRequest

	resumePath, err := s.value("Resume file (PDF, DOCX or text)", s.input.ResumePath)
	if err != nil {
		return req, err
	}
	if resumePath != "" {
		if req.Resume, err = os.ReadFile(resumePath); err != nil {
			return req, fmt.Errorf("reading resume: %w", err)
		}
	}

	jd, err := s.value("Job description (text or @file)", s.input.JobDescription)
	if err != nil {
		return req, err
	}
	if req.JobDescription, err = readText(jd); err != nil {
		return req, fmt.Errorf("reading job description: %w", err)
	}

	if req.CandidateName, err = s.value("Candidate name", s.input.Candidate); err != nil {
		return req, err
	}
	if req.JobTitle, err = s.value("Job title", s.input.JobTitle); err != nil {
		return req, err
	}
	if req.CompanyName, err = s.value("Company name", s.input.Company); err != nil {
		return req, err
	}

	return req, nil
}

// value returns preset without asking when running unattended, otherwise it
// asks with preset as the default answer.
func (s *session) value(label, preset string) (string, error) {
	if !s.interactive && preset != "" {
		return preset, nil
	}

	answer, err := s.ask(label, preset)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(answer), nil
}

// readText returns v, or the content of the file it names when prefixed with @.
func readText(v string) (string, error) {
	path, ok := strings.CutPrefix(v, "@")
	if !ok {
		return v, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// withTimeout bounds ctx by timeout. A non-positive timeout disables the bound.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
