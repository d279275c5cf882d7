package cmd

import (
	"github.com/spf13/cobra"

	"github.com/applianceops/remoterun/pkg/remote"
)

var pushTarget string

var pushCmd = &cobra.Command{
	Use:   "push <local-path> <remote-path>",
	Short: "Copy a local file to a configured target over SFTP",
	Args:  cobra.ExactArgs(2), //nolint:mnd
	RunE:  runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushTarget, "target", "", "target name from the config file")
	_ = pushCmd.MarkFlagRequired("target")

	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := cfg.Target(pushTarget)
	if err != nil {
		return err
	}

	session, err := remote.NewConnector().Establish(
		cmd.Context(),
		target.Endpoint(),
		cfg.Retry.Policy(),
	)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Upload(cmd.Context(), args[0], args[1])
}
