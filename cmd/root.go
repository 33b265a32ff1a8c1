package cmd

import (
	"log"

	"github.com/profilematch/profile-match/internal/matching"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "profile-match"
)

type Config struct {
	ProfilesDir        string           `mapstructure:"profiles-dir"`
	JobDescriptionsDir string           `mapstructure:"job-descriptions-dir"`
	OutputDir          string           `mapstructure:"output-dir"`
	Matching           *matching.Config `mapstructure:"matching"`
	AI                 *AIConfig        `mapstructure:"ai"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	Model        string `mapstructure:"model"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "profile-match scores candidate profiles against team job descriptions and reports the qualifying teams",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is profile-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("profiles-dir", "profiles")
	viper.SetDefault("job-descriptions-dir", "job_descriptions")
	viper.SetDefault("output-dir", "outputs")
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	if config.ProfilesDir == "" {
		config.ProfilesDir = viper.GetString("profiles-dir")
	}
	if config.JobDescriptionsDir == "" {
		config.JobDescriptionsDir = viper.GetString("job-descriptions-dir")
	}
	if config.OutputDir == "" {
		config.OutputDir = viper.GetString("output-dir")
	}

	if config.Matching == nil {
		defaults := matching.DefaultConfig()
		config.Matching = &defaults
	}

	return config, nil
}
