package discovery

import (
	"context"
	"fmt"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
)

// SearchResultMode selects the shape of search results.
type SearchResultMode string

const (
	// SearchModeDocuments returns whole documents (the default).
	SearchModeDocuments SearchResultMode = "documents"
	// SearchModeChunks returns individual chunks. Requires a data store with
	// chunking enabled.
	SearchModeChunks SearchResultMode = "chunks"
)

// SpellCorrectionMode selects how the service applies spell correction.
type SpellCorrectionMode string

const (
	// SpellAuto lets the service rewrite the query automatically.
	SpellAuto SpellCorrectionMode = "auto"
	// SpellSuggestionOnly returns a suggestion without rewriting the query
	// (the default).
	SpellSuggestionOnly SpellCorrectionMode = "suggestion"
)

// SearchOptions configures a single search request.
type SearchOptions struct {
	// Query is the search query text.
	Query string

	// Filter is an optional filter expression in the service's filter syntax.
	Filter string

	// PageSize is the number of results per page. Zero lets the service pick.
	PageSize int

	// MaxExtractiveAnswerCount is the number of extractive answers requested
	// per document.
	MaxExtractiveAnswerCount int

	// MaxExtractiveSegmentCount is the number of extractive segments
	// requested per document.
	MaxExtractiveSegmentCount int

	// ReturnExtractiveSegmentScore requests relevance scores on extractive
	// segments.
	ReturnExtractiveSegmentScore bool

	// ReturnSnippet attaches a snippet spec so results carry snippets.
	ReturnSnippet bool

	// ResultMode selects document-level or chunk-level results.
	// Empty means SearchModeDocuments.
	ResultMode SearchResultMode

	// NumPreviousChunks and NumNextChunks request neighbouring chunks around
	// each hit. Only applied in SearchModeChunks; ignored otherwise.
	NumPreviousChunks int
	NumNextChunks     int

	// SpellCorrection selects the spell-correction mode.
	// Empty means SpellSuggestionOnly.
	SpellCorrection SpellCorrectionMode
}

// BuildSearchRequest validates opts and assembles a search request against
// the data store's default serving config. The request always carries an
// extractive-content spec and a spell-correction spec; the snippet spec is
// attached only when requested, and the chunk spec only in chunk mode. The
// request is not executed — hand it to Search or submit it directly.
func (c *Client) BuildSearchRequest(dataStoreID string, opts *SearchOptions) (*discoveryenginepb.SearchRequest, error) {
	if opts == nil || opts.Query == "" {
		return nil, fmt.Errorf("%w: a search query is required", ErrInvalidConfig)
	}

	mode := opts.ResultMode
	if mode == "" {
		mode = SearchModeDocuments
	}
	var pbMode discoveryenginepb.SearchRequest_ContentSearchSpec_SearchResultMode
	switch mode {
	case SearchModeDocuments:
		pbMode = discoveryenginepb.SearchRequest_ContentSearchSpec_DOCUMENTS
	case SearchModeChunks:
		pbMode = discoveryenginepb.SearchRequest_ContentSearchSpec_CHUNKS
	default:
		return nil, fmt.Errorf("%w: unknown search result mode %q — valid values: documents, chunks",
			ErrInvalidConfig, mode)
	}

	spell := opts.SpellCorrection
	if spell == "" {
		spell = SpellSuggestionOnly
	}
	var pbSpell discoveryenginepb.SearchRequest_SpellCorrectionSpec_Mode
	switch spell {
	case SpellAuto:
		pbSpell = discoveryenginepb.SearchRequest_SpellCorrectionSpec_AUTO
	case SpellSuggestionOnly:
		pbSpell = discoveryenginepb.SearchRequest_SpellCorrectionSpec_SUGGESTION_ONLY
	default:
		return nil, fmt.Errorf("%w: unknown spell correction mode %q — valid values: auto, suggestion",
			ErrInvalidConfig, spell)
	}

	contentSpec := &discoveryenginepb.SearchRequest_ContentSearchSpec{
		SearchResultMode: pbMode,
		// The extractive-content spec is always attached, even with zero
		// counts, matching the service contract this layer mirrors.
		ExtractiveContentSpec: &discoveryenginepb.SearchRequest_ContentSearchSpec_ExtractiveContentSpec{
			MaxExtractiveAnswerCount:     int32(opts.MaxExtractiveAnswerCount),
			MaxExtractiveSegmentCount:    int32(opts.MaxExtractiveSegmentCount),
			ReturnExtractiveSegmentScore: opts.ReturnExtractiveSegmentScore,
		},
	}

	if opts.ReturnSnippet {
		contentSpec.SnippetSpec = &discoveryenginepb.SearchRequest_ContentSearchSpec_SnippetSpec{
			ReturnSnippet: true,
		}
	}

	if mode == SearchModeChunks {
		contentSpec.ChunkSpec = &discoveryenginepb.SearchRequest_ContentSearchSpec_ChunkSpec{
			NumPreviousChunks: int32(opts.NumPreviousChunks),
			NumNextChunks:     int32(opts.NumNextChunks),
		}
	}

	return &discoveryenginepb.SearchRequest{
		ServingConfig:     c.ServingConfigPath(dataStoreID),
		Query:             opts.Query,
		Filter:            opts.Filter,
		PageSize:          int32(opts.PageSize),
		ContentSearchSpec: contentSpec,
		SpellCorrectionSpec: &discoveryenginepb.SearchRequest_SpellCorrectionSpec{
			Mode: pbSpell,
		},
	}, nil
}

// Search builds the request from opts and executes it, returning one page of
// results.
func (c *Client) Search(ctx context.Context, dataStoreID string, opts *SearchOptions) ([]*discoveryenginepb.SearchResponse_SearchResult, error) {
	req, err := c.BuildSearchRequest(dataStoreID, opts)
	if err != nil {
		return nil, err
	}
	results, err := c.svc.Search.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("discovery: search %q: %w", dataStoreID, err)
	}
	return results, nil
}
