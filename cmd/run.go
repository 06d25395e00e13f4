package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/logger"
	"github.com/spigell/ats-screener/internal/mail"
	"github.com/spigell/ats-screener/internal/notify"
	"github.com/spigell/ats-screener/internal/screening"
)

const (
	PromptAnalyze = "Analyze resume"
	PromptView    = "View analysis result"
	PromptSend    = "Send email"
	PromptExit    = "Exit"
)

var prompt = promptui.Select{
	Label: "Choose a step",
	Items: []string{PromptAnalyze, PromptView, PromptSend, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive screening session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume", "r", "", "path to the candidate resume (PDF, DOCX or plain text)")
	runCmd.Flags().String("job-description", "", "job description text, or @path to read it from a file")
	runCmd.Flags().String("candidate", "", "candidate name")
	runCmd.Flags().String("job-title", "", "job title")
	runCmd.Flags().String("company", "", "company name")
	runCmd.Flags().String("email", "", "candidate email address")
	runCmd.Flags().BoolP("auto-approve", "y", false, "analyze and send the email without asking")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ats-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	model, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating a model client", zap.Error(err))
	}

	mailer, err := mail.New(mail.Config{
		Host:     config.Mail.Host,
		Port:     config.Mail.Port,
		Username: config.Mail.Username,
		Password: config.Mail.Password,
		From:     config.Mail.From,
		Timeout:  config.Mail.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("creating a mail dispatcher", zap.Error(err))
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	s := &session{
		screener:    screening.New(model, screening.NewSession(), logger),
		composer:    notify.NewComposer(config.Signature),
		mailer:      mailer,
		input:       inputsFromFlags(cmd),
		interactive: !autoApprove,
		aiTimeout:   config.AI.Timeout,
		mailTimeout: config.Mail.Timeout,
		ask:         ask,
		out:         cmd.OutOrStdout(),
		logger:      logger,
	}

	if autoApprove {
		if err := s.auto(ctx); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", "prompt closed"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			// Nothing is retried, the recruiter picks the next step.
			logger.Error("step failed", zap.String("step_name", action), zap.Error(err))
		}

		if ctx.Err() != nil {
			logger.Info("exiting", zap.String("reason", "interrupted"))
			return
		}
	}
}

func inputsFromFlags(cmd *cobra.Command) inputs {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	return inputs{
		ResumePath:     get("resume"),
		JobDescription: get("job-description"),
		Candidate:      get("candidate"),
		JobTitle:       get("job-title"),
		Company:        get("company"),
		Email:          get("email"),
	}
}

func ask(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	return p.Run()
}
