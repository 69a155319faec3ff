package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/logging"
)

// NewStatusCmd constructs the `vsearch status` command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [data-store-id] [document-id]",
		Short: "Check whether a document has been indexed",
		Long: `Check whether the service has indexed a document yet. Documents become
searchable only after indexing completes, which can lag the import
operation by several minutes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			indexTime, indexed, err := client.CheckIndexStatus(ctx, client.DocumentPath(args[0], args[1]))
			if err != nil {
				return err
			}

			if !indexed {
				fmt.Println("not indexed yet")
				return nil
			}
			fmt.Printf("indexed at %s\n", indexTime.Format(time.RFC3339))
			return nil
		},
	}
}
