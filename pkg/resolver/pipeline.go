// Package resolver turns free-text analytic questions into executable
// SQL. A model-backed primary resolver is tried first; a fixed rule
// table guarantees availability when the model is absent, slow, or
// answers with something unusable.
package resolver

import (
	"context"
	"fmt"
	"log"
)

// Source identifies which resolver produced a query.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

// ResolvedQuery is the pipeline's output: one canonical SQL statement
// and the resolver that produced it.
type ResolvedQuery struct {
	Query  string
	Source Source
}

// UnresolvableError reports that neither resolver produced a query for
// a question. It is the only resolution failure surfaced to callers.
type UnresolvableError struct {
	Question string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("could not resolve question %q to a query", e.Question)
}

// Guard vets a resolved query before it is handed to the executor.
// Returning false rejects the query.
type Guard func(query string) bool

// Pipeline orchestrates primary-then-fallback resolution.
type Pipeline struct {
	primary  *PrimaryResolver
	fallback *FallbackResolver
	guard    Guard
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithGuard installs a query guard. Primary queries rejected by the
// guard fall through to the fallback resolver; a rejected fallback
// query makes the question unresolvable.
func WithGuard(g Guard) PipelineOption {
	return func(p *Pipeline) {
		p.guard = g
	}
}

// NewPipeline creates a resolution pipeline. primary may be nil when no
// model is configured; resolution then goes straight to the rule table.
func NewPipeline(primary *PrimaryResolver, fallback *FallbackResolver, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{primary: primary, fallback: fallback}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve produces one canonical query for the question, or an
// *UnresolvableError. Primary resolver failures are soft: they are
// logged and superseded by the fallback path, never retried and never
// propagated.
func (p *Pipeline) Resolve(ctx context.Context, question string) (*ResolvedQuery, error) {
	if p.primary != nil {
		query, err := p.primary.Resolve(ctx, question)
		switch {
		case err != nil:
			log.Printf("[resolver] primary resolution failed, trying fallback: %v", err)
		case !p.allowed(query):
			log.Printf("[resolver] primary query rejected by guard, trying fallback: %s", truncate(query, 120))
		default:
			return &ResolvedQuery{Query: query, Source: SourcePrimary}, nil
		}
	}

	if query, ok := p.fallback.Resolve(question); ok {
		if !p.allowed(query) {
			return nil, &UnresolvableError{Question: question}
		}
		return &ResolvedQuery{Query: query, Source: SourceFallback}, nil
	}

	return nil, &UnresolvableError{Question: question}
}

func (p *Pipeline) allowed(query string) bool {
	return p.guard == nil || p.guard(query)
}
