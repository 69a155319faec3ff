package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/logging"
)

// NewOpsCmd constructs the `vsearch ops` command, which lists recently
// started long-running operations from the local journal.
func NewOpsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List recently started operations",
		Long: `List long-running operations recorded by datastore create, engine
create, and import, newest first. The journal is local to this machine
(~/.vsearch/journal.db by default, VSEARCH_JOURNAL_DB overrides).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			j, closeJournal := openJournal(log)
			defer closeJournal()
			if j == nil {
				return fmt.Errorf("ops: journal is disabled or unavailable")
			}

			entries, err := j.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("ops: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("no recorded operations")
				return nil
			}

			for _, e := range entries {
				opName := e.OperationName
				if opName == "" {
					opName = "-"
				}
				fmt.Printf("%s  %-16s  %-20s  %s\n",
					e.CreatedAt.Format(time.RFC3339), e.Kind, e.Resource, opName)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to list")

	return cmd
}
