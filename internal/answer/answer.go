// Package answer wires a chat model to chunk-level search so the ask command
// can produce grounded answers. It retrieves the most relevant chunks for a
// question, fits them into a token budget, and sends a single generate call
// with the retrieved passages as context.
package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	discoveryenginepb "cloud.google.com/go/discoveryengine/apiv1alpha/discoveryenginepb"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/vertexkit/vsearch/internal/discovery"
	"github.com/vertexkit/vsearch/internal/logging"
)

// systemPrompt establishes the answering contract: ground every statement in
// the retrieved passages, and say so when the passages do not cover the
// question.
const systemPrompt = `You are a precise technical assistant. Answer the user's question using ONLY
the numbered context passages provided. Rules:

- Quote or paraphrase the passages; do not invent facts that are not in them.
- Reference passages by number when it helps, e.g. "as passage [2] notes".
- If the passages do not contain enough information to answer, say so plainly
  and state what is missing. Do not guess.
- Keep the answer focused. No preamble, no restating the question.`

// defaultTopK is the number of chunks retrieved per question when the caller
// does not set one.
const defaultTopK = 10

// Searcher is the chunk retrieval capability the answerer depends on.
// *discovery.Client satisfies it.
type Searcher interface {
	// Search executes a search against the named data store.
	Search(ctx context.Context, dataStoreID string, opts *discovery.SearchOptions) ([]*discoveryenginepb.SearchResponse_SearchResult, error)
}

// Config holds the answerer's dependencies and tuning.
type Config struct {
	// ChatModel generates the final answer.
	ChatModel model.ToolCallingChatModel
	// Searcher retrieves candidate chunks.
	Searcher Searcher
	// TopK is the number of chunks retrieved per question.
	// Zero means defaultTopK.
	TopK int
	// MaxContextTokens caps the estimated size of the assembled prompt.
	// Zero means DefaultMaxContextTokens.
	MaxContextTokens int
}

// Answerer produces grounded answers from a data store.
type Answerer struct {
	model     model.ToolCallingChatModel
	searcher  Searcher
	topK      int
	maxTokens int
}

// New constructs an Answerer from cfg.
func New(cfg *Config) (*Answerer, error) {
	if cfg == nil || cfg.ChatModel == nil {
		return nil, fmt.Errorf("answer: chat model must not be nil")
	}
	if cfg.Searcher == nil {
		return nil, fmt.Errorf("answer: searcher must not be nil")
	}
	topK := cfg.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	maxTokens := cfg.MaxContextTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxContextTokens
	}
	return &Answerer{
		model:     cfg.ChatModel,
		searcher:  cfg.Searcher,
		topK:      topK,
		maxTokens: maxTokens,
	}, nil
}

// Answer retrieves chunks for question from dataStoreID and generates a
// grounded answer. Retrieval failures are fatal; an empty retrieval is not,
// the model is simply told no passages were found.
func (a *Answerer) Answer(ctx context.Context, dataStoreID, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("answer: question must not be empty")
	}
	log := logging.FromContext(ctx)

	results, err := a.searcher.Search(ctx, dataStoreID, &discovery.SearchOptions{
		Query:      question,
		PageSize:   a.topK,
		ResultMode: discovery.SearchModeChunks,
	})
	if err != nil {
		return "", fmt.Errorf("answer: retrieve chunks: %w", err)
	}

	passages := extractPassages(results)
	kept := trimPassages(passages, a.maxTokens-estimate(systemPrompt)-estimate(question))
	if len(kept) < len(passages) {
		log.Debug("answer: context trimmed to fit budget",
			slog.Int("retrieved", len(passages)),
			slog.Int("kept", len(kept)),
		)
	}

	msgs := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(buildUserMessage(question, kept)),
	}

	resp, err := a.model.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("answer: generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("answer: model returned nil response")
	}
	return resp.Content, nil
}

// extractPassages pulls the chunk content out of chunk-mode search results,
// preserving rank order and skipping results without content.
func extractPassages(results []*discoveryenginepb.SearchResponse_SearchResult) []string {
	var passages []string
	for _, res := range results {
		content := res.GetChunk().GetContent()
		if content == "" {
			continue
		}
		passages = append(passages, content)
	}
	return passages
}

// buildUserMessage assembles the numbered context block and the question.
func buildUserMessage(question string, passages []string) string {
	var b strings.Builder
	if len(passages) == 0 {
		b.WriteString("No context passages were retrieved for this question.\n\n")
	} else {
		b.WriteString("Context passages:\n\n")
		for i, p := range passages {
			fmt.Fprintf(&b, "[%d] %s\n\n", i+1, p)
		}
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
