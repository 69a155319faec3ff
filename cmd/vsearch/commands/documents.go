package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/logging"
)

// NewDocumentsCmd constructs the `vsearch documents` command group.
func NewDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Inspect documents in a data store",
	}
	cmd.AddCommand(newDocumentsListCmd(), newDocumentsGetCmd(), newDocumentsProcessedCmd())
	return cmd
}

func newDocumentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [data-store-id]",
		Short: "List all documents in a data store's default branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			docs, err := client.ListDocuments(ctx, args[0])
			if err != nil {
				return err
			}

			for _, doc := range docs {
				if err := printProto(doc); err != nil {
					return err
				}
			}
			fmt.Printf("%d document(s)\n", len(docs))
			return nil
		},
	}
}

func newDocumentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [data-store-id] [document-id]",
		Short: "Fetch a single document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			doc, err := client.GetDocument(ctx, client.DocumentPath(args[0], args[1]))
			if err != nil {
				return err
			}
			return printProto(doc)
		},
	}
}

func newDocumentsProcessedCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "processed [data-store-id] [document-id]",
		Short: "Fetch a processed rendition of a document",
		Long: `Fetch the parsed, chunked, or PNG-converted rendition the service
produced for a document. The chunked rendition exists only for data
stores created with chunking enabled.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			name := client.DocumentPath(args[0], args[1])
			doc, err := client.GetProcessedDocument(ctx, name, discovery.ProcessedDocumentType(kind))
			if err != nil {
				return err
			}
			fmt.Println(doc.GetJsonData())
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", string(discovery.ProcessedParsed), "Rendition to fetch: parsed, chunked, png")

	return cmd
}
