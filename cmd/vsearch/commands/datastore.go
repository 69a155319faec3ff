package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/journal"
	"github.com/vertexkit/vsearch/internal/logging"
)

// NewDataStoreCmd constructs the `vsearch datastore` command group.
func NewDataStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datastore",
		Short: "Manage Discovery Engine data stores",
	}
	cmd.AddCommand(newDataStoreCreateCmd())
	return cmd
}

// newDataStoreCreateCmd constructs `vsearch datastore create`.
func newDataStoreCreateCmd() *cobra.Command {
	var (
		parser           string
		ocrNativeText    bool
		chunking         bool
		chunkSize        int
		ancestorHeadings bool
		overrides        []string
	)

	cmd := &cobra.Command{
		Use:   "create [data-store-id]",
		Short: "Create a data store with a document processing config",
		Long: `Create a Discovery Engine data store for unstructured documents.

The data store is created with the generic industry vertical, scoped to
search, and configured with the parsing and chunking options given here.
Creation is asynchronous; the operation name is printed and journalled.

Per-file-type overrides take the form <type>=<strategy>, where type is one of
pdf, html, docx, pptx, xlsm, xlsx and strategy is digital, ocr, or layout.
OCR is only valid for pdf.

Examples:
  vsearch datastore create my-docs
  vsearch datastore create my-docs --parser layout --chunk-size 300
  vsearch datastore create scans --parser digital --chunking=false --override pdf=ocr`,
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

			opts := &discovery.ProcessingOptions{
				Strategy:                discovery.ParsingStrategy(parser),
				UseNativeText:           ocrNativeText,
				EnableChunking:          chunking,
				ChunkSize:               chunkSize,
				IncludeAncestorHeadings: ancestorHeadings,
			}
			opts.Overrides, err = parseOverrides(overrides, ocrNativeText)
			if err != nil {
				return err
			}

			processing, err := client.BuildProcessingConfig(dataStoreID, opts)
			if err != nil {
				return err
			}

			op, err := client.CreateDataStore(ctx, dataStoreID, processing, nil)
			if err != nil {
				return err
			}

			j, closeJournal := openJournal(log)
			defer closeJournal()
			recordOp(ctx, log, j, journal.KindDataStoreCreate, dataStoreID, op.Name())

			fmt.Printf("data store %q creation started\noperation: %s\n", dataStoreID, op.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&parser, "parser", string(discovery.ParsingLayout), "Default parsing strategy: digital, ocr, layout")
	cmd.Flags().BoolVar(&ocrNativeText, "ocr-native-text", false, "Keep embedded digital text when OCR parsing")
	cmd.Flags().BoolVar(&chunking, "chunking", true, "Enable layout-based chunking (requires --parser layout)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", discovery.MaxChunkSize, "Target chunk size in tokens (100-500)")
	cmd.Flags().BoolVar(&ancestorHeadings, "ancestor-headings", true, "Prepend ancestor headings to each chunk")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "Per-file-type parsing override, e.g. pdf=ocr (repeatable)")

	return cmd
}

// parseOverrides converts --override flags into ParsingOverride values.
func parseOverrides(specs []string, ocrNativeText bool) (map[discovery.FileType]discovery.ParsingOverride, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[discovery.FileType]discovery.ParsingOverride, len(specs))
	for _, spec := range specs {
		ft, strategy, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --override %q: expected <file-type>=<strategy>", spec)
		}
		out[discovery.FileType(ft)] = discovery.ParsingOverride{
			Strategy:      discovery.ParsingStrategy(strategy),
			UseNativeText: ocrNativeText,
		}
	}
	return out, nil
}
