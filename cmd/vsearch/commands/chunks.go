package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/logging"
)

// NewChunksCmd constructs the `vsearch chunks` command group.
func NewChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Inspect chunks of an indexed document",
	}
	cmd.AddCommand(newChunksListCmd(), newChunksGetCmd())
	return cmd
}

func newChunksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [data-store-id] [document-id]",
		Short: "List all chunks of a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			chunks, err := client.ListChunks(ctx, client.DocumentPath(args[0], args[1]))
			if err != nil {
				return err
			}

			for _, chunk := range chunks {
				if err := printProto(chunk); err != nil {
					return err
				}
			}
			fmt.Printf("%d chunk(s)\n", len(chunks))
			return nil
		},
	}
}

func newChunksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [data-store-id] [document-id] [chunk-id]",
		Short: "Fetch a single chunk",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			chunk, err := client.GetChunk(ctx, client.ChunkPath(args[0], args[1], args[2]))
			if err != nil {
				return err
			}
			return printProto(chunk)
		},
	}
}
