package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/applianceops/remoterun/pkg/remote"
)

var (
	runTarget  string
	runCommand string
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single command on a configured target",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runTarget, "target", "", "target name from the config file")
	runCmd.Flags().StringVarP(&runCommand, "command", "c", "", "command to execute")
	runCmd.Flags().
		DurationVar(&runTimeout, "timeout", 0, "command timeout (default: command_timeout from config)")
	_ = runCmd.MarkFlagRequired("target")
	_ = runCmd.MarkFlagRequired("command")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := cfg.Target(runTarget)
	if err != nil {
		return err
	}

	timeout := runTimeout
	if timeout == 0 {
		timeout = cfg.CommandTimeout
	}

	spin := spinner.New(spinner.CharSets[11], 100*time.Millisecond) //nolint:mnd
	spin.Suffix = fmt.Sprintf(" connecting to %s...", target.Host)
	spin.Start()
	session, err := remote.NewConnector().Establish(
		cmd.Context(),
		target.Endpoint(),
		cfg.Retry.Policy(),
	)
	spin.Stop()
	if err != nil {
		return err
	}
	defer session.Close()

	result := session.Execute(cmd.Context(), runCommand, timeout)
	fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
	if result.Stderr != "" {
		fmt.Fprint(cmd.ErrOrStderr(), result.Stderr)
	}
	if result.Failure != nil {
		return fmt.Errorf("command failed: %w", result.Failure)
	}
	return nil
}
