package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/journal"
	"github.com/vertexkit/vsearch/internal/logging"
)

// NewImportCmd constructs the `vsearch import` command.
func NewImportCmd() *cobra.Command {
	var (
		gcsURI    string
		bqDataset string
		bqTable   string
	)

	cmd := &cobra.Command{
		Use:   "import [data-store-id]",
		Short: "Bulk-import documents into a data store",
		Long: `Import documents into a data store's default branch from either a
Cloud Storage JSONL file or a BigQuery table. The two sources are
mutually exclusive. Imports are incremental: existing documents are
updated and nothing is deleted.

The import runs asynchronously; the operation name is printed and
journalled. Use 'vsearch status' to check when a document is indexed.

Examples:
  vsearch import my-docs --gcs-uri gs://bucket/documents.jsonl
  vsearch import my-docs --bq-dataset corp --bq-table pages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)
			dataStoreID := args[0]

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			op, err := client.ImportDocuments(ctx, dataStoreID, discovery.ImportSource{
				GCSURI:          gcsURI,
				BigQueryDataset: bqDataset,
				BigQueryTable:   bqTable,
			})
			if err != nil {
				return err
			}

			j, closeJournal := openJournal(log)
			defer closeJournal()
			recordOp(ctx, log, j, journal.KindImport, dataStoreID, op.Name())

			fmt.Printf("import into %q started\noperation: %s\n", dataStoreID, op.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&gcsURI, "gcs-uri", "", "Cloud Storage URI of JSONL document metadata")
	cmd.Flags().StringVar(&bqDataset, "bq-dataset", "", "BigQuery dataset ID (requires --bq-table)")
	cmd.Flags().StringVar(&bqTable, "bq-table", "", "BigQuery table ID (requires --bq-dataset)")

	return cmd
}
