package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chefscore/testctl/internal/history"
	"github.com/chefscore/testctl/internal/logger"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded test runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCommand,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to show")
	addCommonFlags(cmd)

	return cmd
}

func runHistoryCommand(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.New(cmd.OutOrStdout())

	dbPath := cfg.HistoryDBPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Infof("No run history recorded yet.")
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if len(runs) == 0 {
		log.Infof("No run history recorded yet.")
		return nil
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %-10s  %-11s  exit %d  %s",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Runner,
			r.Category,
			r.ExitCode,
			r.Duration.Round(time.Millisecond),
		)
		if r.Success {
			log.Successf("%s  PASSED", line)
		} else {
			log.Failf("%s  FAILED", line)
		}
	}
	return nil
}
