package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/absa/internal/logging"
	"github.com/ppiankov/absa/internal/model"
)

// Version is set at build time via -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "absa",
	Short: "absa - aspect-based sentiment aggregation for app reviews",
	Long: `absa tags app reviews with one of five aspects (Song, Price, Tutorial,
Login, Technical) by keyword matching, joins the aspect with the review's
existing sentiment label, and counts reviews per aspect and sentiment
within a date range.

absa does not predict sentiment. The predicted_sentiment column of the
input is taken as given; rows without a Positive or Negative label are
left out of every count.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("absa %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.absa/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".absa"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// ABSA_LOCALE, ABSA_OUTPUT_DIR, ABSA_LLM_MODEL, ...
	viper.SetEnvPrefix("ABSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env variables are picked up
// by Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("locale", cfg.Locale)
	viper.SetDefault("input.max_bytes", cfg.Input.MaxBytes)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.json", cfg.Output.JSON)
	viper.SetDefault("output.markdown", cfg.Output.Markdown)
	viper.SetDefault("output.table", cfg.Output.Table)
	viper.SetDefault("output.include_footer", cfg.Output.IncludeFooter)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("concurrency.rate_per_second", cfg.Concurrency.RatePerSecond)
	viper.SetDefault("concurrency.burst", cfg.Concurrency.Burst)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("llm.provider", cfg.LLM.Provider)
	viper.SetDefault("llm.model", cfg.LLM.Model)
	viper.SetDefault("llm.api_key", cfg.LLM.APIKey)
	viper.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	viper.SetDefault("llm.http_proxy", cfg.LLM.HTTPProxy)
	viper.SetDefault("llm.https_proxy", cfg.LLM.HTTPSProxy)
	viper.SetDefault("llm.timeout", cfg.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig merges defaults, config file and environment
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// newLogger builds the stderr logger; --verbose forces debug level
func newLogger(cfg *model.Config) zerolog.Logger {
	level := cfg.Log.Level
	if cfg.Output.Verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level, cfg.Log.Format)
}

// applyLLMFlags enables the summarizer and resolves provider credentials
func applyLLMFlags(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	if modelName != "" {
		cfg.LLM.Model = modelName
	}

	switch provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s (use openai or ollama)", provider)
	}
	return nil
}
