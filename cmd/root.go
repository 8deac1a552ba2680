package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/jobsearch"
)

const (
	app = "resume-matcher"
)

type Config struct {
	Pipeline *PipelineConfig `mapstructure:"pipeline" validate:"required"`
	Search   *SearchConfig   `mapstructure:"search" validate:"required"`
	Analyzer *AnalyzerConfig `mapstructure:"analyzer" validate:"required"`
}

type PipelineConfig struct {
	InterestMinScore           float64 `mapstructure:"interest-min-score" validate:"gte=0,lte=10"`
	MaxSuggestions             int     `mapstructure:"max-suggestions" validate:"gte=0"`
	DropLowSeveritySuggestions bool    `mapstructure:"drop-low-severity-suggestions"`
	TopSkillsForQuery          int     `mapstructure:"top-skills-for-query" validate:"gte=0"`
}

type SearchConfig struct {
	BaseURL string `mapstructure:"base-url" validate:"required,url"`
}

type AnalyzerConfig struct {
	Provider string        `mapstructure:"provider" validate:"oneof=service gemini"`
	URL      string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		InterestMinScore:           c.Pipeline.InterestMinScore,
		MaxSuggestions:             c.Pipeline.MaxSuggestions,
		DropLowSeveritySuggestions: c.Pipeline.DropLowSeveritySuggestions,
	}
}

func (c *Config) SearchOptions() jobsearch.Options {
	return jobsearch.Options{
		TopSkills: c.Pipeline.TopSkillsForQuery,
		BaseURL:   c.Search.BaseURL,
	}
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher normalizes resume analyses and builds matching job searches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	if err := viper.BindEnv("analyzer.gemini.api-key-file", "RESUME_MATCHER_GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding RESUME_MATCHER_GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	defaults := analysis.DefaultOptions()
	viper.SetDefault("pipeline.interest-min-score", defaults.InterestMinScore)
	viper.SetDefault("pipeline.max-suggestions", defaults.MaxSuggestions)
	viper.SetDefault("pipeline.drop-low-severity-suggestions", defaults.DropLowSeveritySuggestions)
	viper.SetDefault("pipeline.top-skills-for-query", jobsearch.DefaultTopSkills)
	viper.SetDefault("search.base-url", jobsearch.DefaultBaseURL)
	viper.SetDefault("analyzer.provider", "service")
	viper.SetDefault("analyzer.url", analyzer.DefaultServiceURL)
	viper.SetDefault("analyzer.timeout", analyzer.DefaultTimeout)
}

func initConfig() {
	// A local .env may carry RESUME_MATCHER_* variables; it is optional.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Defaults are enough to run without a config file unless one was given explicitly.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if err := validator.New().Struct(config); err != nil {
		return config, err
	}

	return config, nil
}
