package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ats-screener/internal/secrets"
	"github.com/spigell/ats-screener/internal/validation"
)

const (
	app = "ats-screener"
)

type Config struct {
	AI        AIConfig   `mapstructure:"ai"`
	Mail      MailConfig `mapstructure:"mail"`
	Signature string     `mapstructure:"signature"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=groq gemini openai"`
	APIKey       string        `mapstructure:"api-key" json:"-"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Model        string        `mapstructure:"model"`
	BaseURL      string        `mapstructure:"base-url" validate:"omitempty,url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type MailConfig struct {
	Host         string        `mapstructure:"host" validate:"required,hostname_rfc1123"`
	Port         int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username     string        `mapstructure:"username" validate:"required"`
	Password     string        `mapstructure:"password" json:"-"`
	PasswordFile string        `mapstructure:"password-file"`
	From         string        `mapstructure:"from" validate:"omitempty,email"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-screener screens a resume against a job description and emails the candidate the outcome",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

var envBindings = map[string][]string{
	"ai.provider":        {"AI_PROVIDER"},
	"ai.api-key":         {"GROQ_API_KEY", "GEMINI_API_KEY", "AI_API_KEY"},
	"ai.api-key-file":    {"AI_API_KEY_FILE"},
	"ai.model":           {"AI_MODEL"},
	"ai.base-url":        {"AI_BASE_URL"},
	"ai.timeout":         {"AI_TIMEOUT"},
	"mail.host":          {"SMTP_SERVER"},
	"mail.port":          {"SMTP_PORT"},
	"mail.username":      {"EMAIL_USER"},
	"mail.password":      {"EMAIL_PASS"},
	"mail.password-file": {"EMAIL_PASS_FILE"},
	"mail.from":          {"EMAIL_FROM"},
	"mail.timeout":       {"SMTP_TIMEOUT"},
	"signature":          {"EMAIL_SIGNATURE"},
}

func init() {
	if err := bindEnv(viper.GetViper()); err != nil {
		log.Fatal(err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// bindEnv maps the config keys to the environment variable names in envBindings.
func bindEnv(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("binding %s environment variables: %w", strings.Join(envs, ", "), err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "groq")
	v.SetDefault("ai.timeout", 2*time.Minute)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("mail.timeout", 30*time.Second)
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	// A missing .env is fine, environment variables may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (cfgFile != "" || !errors.As(err, &notFound)) {
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

// decodeConfig unmarshals v and resolves the file-backed secrets. Every
// missing or invalid key is reported in a single error.
func decodeConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))

	var errs []error
	if err := validation.Struct(config); err != nil {
		errs = append(errs, err)
	}

	resolved, err := secrets.LoadAll(
		secrets.Source{Name: "ai.api-key", Value: config.AI.APIKey, File: config.AI.APIKeyFile},
		secrets.Source{Name: "mail.password", Value: config.Mail.Password, File: config.Mail.PasswordFile},
	)
	if err != nil {
		errs = append(errs, err)
	} else {
		config.AI.APIKey, config.Mail.Password = resolved[0], resolved[1]
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &config, nil
}
