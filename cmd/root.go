package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/applianceops/remoterun/pkg/config"
	"github.com/applianceops/remoterun/pkg/logger"
)

var (
	cfgFile     string
	verboseMode bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "remoterun",
	Short: "Remoterun executes commands on appliances over SSH",
	Long: `Remoterun is a helper for exercising web-administered appliances:
it establishes validated SSH sessions with bounded retry, runs commands
under a hard deadline, and transfers files.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.remoterun.yaml)")
	rootCmd.PersistentFlags().
		BoolVar(&verboseMode, "verbose", false, "enable verbose logging to the console")
}

func initConfig() {
	// Credentials can come from a .env file instead of the config file.
	_ = godotenv.Load()

	if cfgFile == "" {
		home, err := homedir.Dir()
		if err == nil {
			candidate := filepath.Join(home, ".remoterun.yaml")
			if _, statErr := os.Stat(candidate); statErr == nil {
				cfgFile = candidate
			}
		}
	}

	level := "info"
	if verboseMode {
		level = "debug"
	}
	_ = logger.Initialize(logger.Config{
		Level:         level,
		EnableConsole: verboseMode,
	})
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf(
			"no config file found: pass --config or create $HOME/.remoterun.yaml",
		)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cfg.LogFile != "" || !verboseMode {
		_ = logger.Initialize(logger.Config{
			Level:         cfg.LogLevel,
			FilePath:      cfg.LogFile,
			EnableConsole: verboseMode,
		})
	}

	return cfg, nil
}
