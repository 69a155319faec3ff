package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/logging"
)

// NewSearchCmd constructs the `vsearch search` command.
func NewSearchCmd() *cobra.Command {
	var (
		filter       string
		pageSize     int
		mode         string
		maxAnswers   int
		maxSegments  int
		segScores    bool
		snippet      bool
		spellCorrect string
		prevChunks   int
		nextChunks   int
	)

	cmd := &cobra.Command{
		Use:   "search [data-store-id] [query]",
		Short: "Run a search against a data store",
		Long: `Search a data store through its default serving config. Results are
printed as JSON, one per result.

Chunk mode returns individual chunks instead of whole documents and
requires a data store created with chunking enabled.

Examples:
  vsearch search my-docs "quarterly revenue"
  vsearch search my-docs "onboarding process" --mode chunks --next-chunks 1
  vsearch search my-docs "invoice" --filter 'category: ANY("finance")'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), logging.New())
			dataStoreID, query := args[0], args[1]

			client, err := dialClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()

			opts := &discovery.SearchOptions{
				Query:                        query,
				Filter:                       filter,
				PageSize:                     pageSize,
				MaxExtractiveAnswerCount:     maxAnswers,
				MaxExtractiveSegmentCount:    maxSegments,
				ReturnExtractiveSegmentScore: segScores,
				ReturnSnippet:                snippet,
				ResultMode:                   discovery.SearchResultMode(mode),
				SpellCorrection:              discovery.SpellCorrectionMode(spellCorrect),
				NumPreviousChunks:            prevChunks,
				NumNextChunks:                nextChunks,
			}

			results, err := client.Search(ctx, dataStoreID, opts)
			if err != nil {
				return err
			}

			for _, res := range results {
				if err := printProto(res); err != nil {
					return err
				}
			}
			fmt.Printf("%d result(s)\n", len(results))
			return nil
		},
	}

	// Flag defaults honour the search section of the config file, which is
	// projected into VSEARCH_* environment variables at load time.
	cmd.Flags().StringVar(&filter, "filter", "", "Filter expression applied to the search")
	cmd.Flags().IntVar(&pageSize, "page-size", envInt("VSEARCH_PAGE_SIZE", 0), "Results per page (0 lets the service pick)")
	cmd.Flags().StringVar(&mode, "mode", envOrDefault("VSEARCH_RESULT_MODE", string(discovery.SearchModeDocuments)), "Result mode: documents or chunks")
	cmd.Flags().IntVar(&maxAnswers, "max-extractive-answers", envInt("VSEARCH_MAX_EXTRACTIVE_ANSWERS", 1), "Extractive answers per document")
	cmd.Flags().IntVar(&maxSegments, "max-extractive-segments", envInt("VSEARCH_MAX_EXTRACTIVE_SEGMENTS", 0), "Extractive segments per document")
	cmd.Flags().BoolVar(&segScores, "segment-scores", false, "Request relevance scores on extractive segments")
	cmd.Flags().BoolVar(&snippet, "snippet", envBool("VSEARCH_RETURN_SNIPPET", false), "Return snippets with results")
	cmd.Flags().StringVar(&spellCorrect, "spell-correction", string(discovery.SpellSuggestionOnly), "Spell correction: auto or suggestion")
	cmd.Flags().IntVar(&prevChunks, "previous-chunks", 0, "Neighbouring chunks before each hit (chunk mode only)")
	cmd.Flags().IntVar(&nextChunks, "next-chunks", 0, "Neighbouring chunks after each hit (chunk mode only)")

	return cmd
}
