package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/career-compass/internal/ai/openrouter"
	"github.com/spigell/career-compass/internal/dataset"
	"github.com/spigell/career-compass/internal/jobs"
	"github.com/spigell/career-compass/internal/server"
)

const (
	app       = "career-compass"
	envPrefix = "CAREER_COMPASS"
)

type Config struct {
	Datasets dataset.Paths    `mapstructure:"datasets"`
	S3       dataset.S3Config `mapstructure:"s3"`
	Server   server.Config    `mapstructure:"server"`
	Jobs     *JobsConfig      `mapstructure:"jobs"`
	AI       *AIConfig        `mapstructure:"ai"`
	History  *HistoryConfig   `mapstructure:"history"`
}

type JobsConfig struct {
	jobs.Config `mapstructure:",squash"`

	Enabled    bool   `mapstructure:"enabled"`
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AIConfig struct {
	Enabled    bool              `mapstructure:"enabled"`
	Provider   string            `mapstructure:"provider" validate:"omitempty,oneof=gemini openrouter"`
	Gemini     *GeminiConfig     `mapstructure:"gemini"`
	OpenRouter *OpenRouterConfig `mapstructure:"openrouter"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type OpenRouterConfig struct {
	openrouter.Config `mapstructure:",squash"`

	APIKeyFile string `mapstructure:"api-key-file"`
}

type HistoryConfig struct {
	DatabaseURL string `mapstructure:"database-url" validate:"omitempty,url" json:"-"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-compass recommends careers, mentors and learning roadmaps for a skills profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-compass.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("datasets.careers", "data/careers.csv")
	v.SetDefault("datasets.mentors", "data/mentors.csv")
	v.SetDefault("datasets.roadmaps", "data/roadmaps.json")
	v.SetDefault("datasets.model", "data/model.json")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("server.address", "127.0.0.1:5000")
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.api-key", "")
	v.SetDefault("jobs.api-key-file", "")
	v.SetDefault("jobs.location", "India")
	v.SetDefault("jobs.limit", 5)
	v.SetDefault("jobs.timeout", 15*time.Second)
	v.SetDefault("jobs.exclude-companies", []string{})

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "openrouter")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)
	v.SetDefault("ai.openrouter.api-key-file", "")
	v.SetDefault("ai.openrouter.model", "mistralai/mistral-7b-instruct")
	v.SetDefault("ai.openrouter.temperature", 0.7)
	v.SetDefault("ai.openrouter.max-tokens", 400)
	v.SetDefault("ai.openrouter.timeout", 40*time.Second)

	v.SetDefault("history.database-url", "")
}

func initConfig() {
	// A missing .env file is fine; variables may come from the real environment.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Defaults and environment are enough when no config file exists.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
