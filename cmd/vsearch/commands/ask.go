package commands

import (
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/answer"
	"github.com/vertexkit/vsearch/internal/logging"
	"github.com/vertexkit/vsearch/internal/provider"
	"github.com/vertexkit/vsearch/internal/tracing"
)

// NewAskCmd constructs the `vsearch ask` command, which retrieves chunks for
// a question and generates a grounded answer on stdout.
func NewAskCmd() *cobra.Command {
	var (
		topK      int
		maxTokens int
	)

	cmd := &cobra.Command{
		Use:   "ask [data-store-id] [question]",
		Short: "Ask a question grounded in a data store",
		Long: `Retrieve the most relevant chunks for a question and have an LLM answer
from them. The data store must have been created with chunking enabled.

The model backend is selected with MODEL_PROVIDER (ollama, openai, ark,
gemini) and its matching credentials.

Examples:
  vsearch ask my-docs "what is our refund policy?"
  vsearch ask my-docs --top-k 20 "summarise the onboarding steps"
  MODEL_PROVIDER=gemini vsearch ask my-docs "who approves expenses?"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())
			dataStoreID, question := args[0], args[1]

			// Langfuse tracing is opt-in and a no-op when keys are absent.
			handler, flush, ok := tracing.Setup()
			if ok {
				callbacks.AppendGlobalHandlers(handler)
				defer flush()
			}

			chatModel, err := provider.NewFromEnv(ctx)
			if err != nil {
				return fmt.Errorf("ask: failed to initialise model provider: %w", err)
			}

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			answerer, err := answer.New(&answer.Config{
				ChatModel:        chatModel,
				Searcher:         client,
				TopK:             topK,
				MaxContextTokens: maxTokens,
			})
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			text, err := answerer.Answer(ctx, dataStoreID, question)
			if err != nil {
				return err //nolint:wrapcheck // CLI entry point — error goes directly to cobra
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 0, "Chunks retrieved per question (0 for the default)")
	cmd.Flags().IntVar(&maxTokens, "max-context-tokens", 0, "Estimated token budget for retrieved context (0 for the default)")

	return cmd
}
