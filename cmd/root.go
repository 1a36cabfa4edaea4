package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "skill-matrix"
)

type Config struct {
	InputDir    string        `mapstructure:"input-dir"`
	ExcludeFile string        `mapstructure:"exclude-file"`
	Concurrency int           `mapstructure:"concurrency"`
	Output      *OutputConfig `mapstructure:"output"`
	Skills      *SkillsConfig `mapstructure:"skills"`
	AI          *AIConfig     `mapstructure:"ai"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
	Top int    `mapstructure:"top"`
}

// SkillsConfig holds keyword rules. Keywords replaces the built-in list,
// ExtraKeywords is appended to whichever list is active.
type SkillsConfig struct {
	Keywords      any      `mapstructure:"keywords"`
	ExtraKeywords any      `mapstructure:"extra-keywords"`
	Extensions    []string `mapstructure:"extensions"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skill-matrix extracts contacts and technology skills from PDF resumes and builds a skill matrix",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "SKILL_MATRIX_GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding SKILL_MATRIX_GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.top", 20)
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skill-matrix.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
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

	return config, nil
}
