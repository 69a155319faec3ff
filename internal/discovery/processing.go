package discovery

import (
	"errors"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// ErrInvalidConfig is wrapped by every validation failure in this package so
// callers can distinguish local configuration errors from remote failures
// with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ParsingStrategy selects how the service parses ingested documents.
type ParsingStrategy string

const (
	// ParsingDigital extracts text from born-digital documents without OCR.
	ParsingDigital ParsingStrategy = "digital"
	// ParsingOCR runs optical character recognition over scanned documents.
	ParsingOCR ParsingStrategy = "ocr"
	// ParsingLayout parses document structure (headings, tables) and is the
	// only strategy that supports chunking.
	ParsingLayout ParsingStrategy = "layout"
)

// FileType identifies a file format eligible for a per-type parsing override.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeHTML FileType = "html"
	FileTypeDOCX FileType = "docx"
	FileTypePPTX FileType = "pptx"
	FileTypeXLSM FileType = "xlsm"
	FileTypeXLSX FileType = "xlsx"
)

// supportedFileTypes is the fixed set of file types the service accepts
// parsing overrides for.
var supportedFileTypes = map[FileType]bool{
	FileTypePDF:  true,
	FileTypeHTML: true,
	FileTypeDOCX: true,
	FileTypePPTX: true,
	FileTypeXLSM: true,
	FileTypeXLSX: true,
}

const (
	// MinChunkSize is the smallest chunk size (in tokens) the service accepts.
	MinChunkSize = 100
	// MaxChunkSize is the largest chunk size the service accepts, and the
	// default when none is given.
	MaxChunkSize = 500
)

// ParsingOverride replaces the default parsing strategy for one file type.
type ParsingOverride struct {
	// Strategy is the parsing strategy to apply to this file type.
	// OCR is only valid for pdf.
	Strategy ParsingStrategy

	// UseNativeText keeps embedded digital text instead of re-OCRing it.
	// Only meaningful when Strategy is ParsingOCR.
	UseNativeText bool
}

// ProcessingOptions configures document processing for a data store.
// The zero value is not usable — start from DefaultProcessingOptions or set
// Strategy explicitly.
type ProcessingOptions struct {
	// Strategy is the default parsing strategy for all documents.
	Strategy ParsingStrategy

	// UseNativeText keeps embedded digital text instead of re-OCRing it.
	// Only meaningful when Strategy is ParsingOCR.
	UseNativeText bool

	// EnableChunking turns on layout-based chunking. Requires Strategy to be
	// ParsingLayout.
	EnableChunking bool

	// ChunkSize is the target chunk size in tokens, within
	// [MinChunkSize, MaxChunkSize]. Zero means MaxChunkSize.
	// Only validated when EnableChunking is true.
	ChunkSize int

	// IncludeAncestorHeadings prepends ancestor heading context to each chunk.
	IncludeAncestorHeadings bool

	// Overrides maps file types to per-type parsing overrides. Overrides are
	// not checked against the chunking constraint — only the base Strategy is.
	Overrides map[FileType]ParsingOverride
}

// DefaultProcessingOptions returns the options the service treats as its
// recommended chunk-retrieval setup: layout parsing, chunking enabled at the
// maximum size, ancestor headings included.
func DefaultProcessingOptions() *ProcessingOptions {
	return &ProcessingOptions{
		Strategy:                ParsingLayout,
		EnableChunking:          true,
		ChunkSize:               MaxChunkSize,
		IncludeAncestorHeadings: true,
	}
}

// BuildProcessingConfig validates opts and assembles the
// DocumentProcessingConfig for the given data store. It has no side effects
// beyond validation; the returned message is ready to attach to a data store
// creation request.
func (c *Client) BuildProcessingConfig(dataStoreID string, opts *ProcessingOptions) (*discoveryenginepb.DocumentProcessingConfig, error) {
	if opts == nil {
		opts = DefaultProcessingOptions()
	}

	defaultParsing, err := parsingConfig(opts.Strategy, opts.UseNativeText)
	if err != nil {
		return nil, err
	}

	if opts.EnableChunking && opts.Strategy != ParsingLayout {
		return nil, fmt.Errorf("%w: chunking is only supported with the layout parsing strategy (got %q)",
			ErrInvalidConfig, opts.Strategy)
	}

	cfg := &discoveryenginepb.DocumentProcessingConfig{
		Name:                 c.ProcessingConfigPath(dataStoreID),
		DefaultParsingConfig: defaultParsing,
	}

	if opts.EnableChunking {
		size := opts.ChunkSize
		if size == 0 {
			size = MaxChunkSize
		}
		if size < MinChunkSize || size > MaxChunkSize {
			return nil, fmt.Errorf("%w: chunk size must be between %d and %d inclusive (got %d)",
				ErrInvalidConfig, MinChunkSize, MaxChunkSize, size)
		}
		cfg.ChunkingConfig = &discoveryenginepb.DocumentProcessingConfig_ChunkingConfig{
			ChunkMode: &discoveryenginepb.DocumentProcessingConfig_ChunkingConfig_LayoutBasedChunkingConfig_{
				LayoutBasedChunkingConfig: &discoveryenginepb.DocumentProcessingConfig_ChunkingConfig_LayoutBasedChunkingConfig{
					ChunkSize:               int32(size),
					IncludeAncestorHeadings: opts.IncludeAncestorHeadings,
				},
			},
		}
	}

	if len(opts.Overrides) > 0 {
		cfg.ParsingConfigOverrides = make(map[string]*discoveryenginepb.DocumentProcessingConfig_ParsingConfig, len(opts.Overrides))
		for ft, ov := range opts.Overrides {
			if !supportedFileTypes[ft] {
				return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidConfig, ft)
			}
			if ov.Strategy == ParsingOCR && ft != FileTypePDF {
				return nil, fmt.Errorf("%w: the ocr parsing strategy is only supported for pdf files (got %q)",
					ErrInvalidConfig, ft)
			}
			pc, err := parsingConfig(ov.Strategy, ov.UseNativeText)
			if err != nil {
				return nil, err
			}
			cfg.ParsingConfigOverrides[string(ft)] = pc
		}
	}

	return cfg, nil
}

// parsingConfig maps a strategy to the service's parsing-config oneof.
func parsingConfig(strategy ParsingStrategy, useNativeText bool) (*discoveryenginepb.DocumentProcessingConfig_ParsingConfig, error) {
	switch strategy {
	case ParsingDigital:
		return &discoveryenginepb.DocumentProcessingConfig_ParsingConfig{
			TypeDedicatedConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_DigitalParsingConfig_{
				DigitalParsingConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_DigitalParsingConfig{},
			},
		}, nil
	case ParsingOCR:
		return &discoveryenginepb.DocumentProcessingConfig_ParsingConfig{
			TypeDedicatedConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_OcrParsingConfig_{
				OcrParsingConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_OcrParsingConfig{
					UseNativeText: useNativeText,
				},
			},
		}, nil
	case ParsingLayout:
		return &discoveryenginepb.DocumentProcessingConfig_ParsingConfig{
			TypeDedicatedConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_LayoutParsingConfig_{
				LayoutParsingConfig: &discoveryenginepb.DocumentProcessingConfig_ParsingConfig_LayoutParsingConfig{},
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown parsing strategy %q — valid values: digital, ocr, layout",
			ErrInvalidConfig, strategy)
	}
}
