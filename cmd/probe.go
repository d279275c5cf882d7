package cmd

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/applianceops/remoterun/pkg/remote"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check connectivity to every configured target",
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

type probeRow struct {
	name    string
	addr    string
	state   string
	latency string
	detail  string
	ok      bool
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Targets) == 0 {
		return fmt.Errorf("no targets configured")
	}

	// One session per target; sessions are single-caller, so parallelism
	// comes from separate sessions.
	rows := make([]probeRow, len(cfg.Targets))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, target := range cfg.Targets {
		i, target := i, target
		g.Go(func() error {
			endpoint := target.Endpoint()
			start := time.Now()
			session, err := remote.NewConnector().Establish(ctx, endpoint, cfg.Retry.Policy())
			elapsed := time.Since(start).Round(time.Millisecond)

			row := probeRow{
				name:    target.Name,
				addr:    endpoint.Addr(),
				latency: elapsed.String(),
			}
			if err != nil {
				row.state = "unreachable"
				row.detail = err.Error()
			} else {
				row.state = session.State().String()
				row.ok = true
				session.Close()
			}
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Target", "Address", "State", "Latency", "Detail"})
	failed := 0
	for _, row := range rows {
		if !row.ok {
			failed++
		}
		table.Append([]string{row.name, row.addr, row.state, row.latency, row.detail})
	}
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d targets unreachable", failed, len(rows))
	}
	return nil
}
