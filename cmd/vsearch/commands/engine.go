package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/journal"
	"github.com/vertexkit/vsearch/internal/logging"
)

// NewEngineCmd constructs the `vsearch engine` command group.
func NewEngineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engine",
		Short: "Manage Discovery Engine search engines",
	}
	cmd.AddCommand(newEngineCreateCmd())
	return cmd
}

// newEngineCreateCmd constructs `vsearch engine create`.
func newEngineCreateCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "create [engine-id] [data-store-id]...",
		Short: "Create a search engine attached to one or more data stores",
		Long: `Create an enterprise-tier search engine with the LLM add-on enabled,
attached to the given data stores. The command blocks until the engine
is fully created.

Examples:
  vsearch engine create my-engine my-docs
  vsearch engine create my-engine docs-a docs-b --display-name "All docs"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)
			engineID := args[0]
			dataStoreIDs := args[1:]

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			engine, err := client.CreateEngine(ctx, engineID, displayName, dataStoreIDs)
			if err != nil {
				return err
			}

			j, closeJournal := openJournal(log)
			defer closeJournal()
			recordOp(ctx, log, j, journal.KindEngineCreate, engineID, "")

			fmt.Printf("engine created: %s\n", engine.GetName())
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Human-readable engine name (defaults to the engine ID)")

	return cmd
}
