package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/askcart/askcart/pkg/adapter"
	"github.com/askcart/askcart/pkg/dataset"
)

// Soft failure kinds for the primary resolver. Both fall through to the
// fallback resolver; neither is surfaced to the caller.
var (
	// ErrModelUnavailable means the model could not be reached before
	// the deadline.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrModelInvalidOutput means the model answered with something
	// that is not a single SQL statement.
	ErrModelInvalidOutput = errors.New("model returned non-SQL output")
)

// DefaultModelTimeout bounds the model round trip. A model that has not
// answered by then is treated as unavailable, never as a hard error.
const DefaultModelTimeout = 30 * time.Second

// sqlPrefixes are the statement keywords an acceptable model response
// may start with. The read-only guard downstream is the policy point
// that actually rejects mutating statements.
var sqlPrefixes = []string{"SELECT", "INSERT", "UPDATE", "DELETE"}

// PrimaryResolver translates questions to SQL through a chat model. The
// fixed schema-and-examples prompt is sent with every question and
// deterministic sampling is requested, so identical questions yield
// stable queries.
type PrimaryResolver struct {
	adapter adapter.Adapter
	model   string
	timeout time.Duration
}

// NewPrimaryResolver creates a primary resolver backed by the given
// adapter and model. A zero timeout selects DefaultModelTimeout.
func NewPrimaryResolver(a adapter.Adapter, model string, timeout time.Duration) *PrimaryResolver {
	if timeout <= 0 {
		timeout = DefaultModelTimeout
	}
	return &PrimaryResolver{adapter: a, model: model, timeout: timeout}
}

// Resolve asks the model for a SQL translation of the question. The
// returned error is always one of the soft failure kinds (wrapped);
// nothing from the model boundary propagates as a hard error.
func (r *PrimaryResolver) Resolve(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.adapter.Generate(ctx, r.model, dataset.SystemPrompt, question)
	if err != nil {
		if adapter.IsUnavailable(err) {
			return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return "", fmt.Errorf("%w: %v", ErrModelInvalidOutput, err)
	}

	query := sanitizeResponse(resp.Content)
	if !acceptableSQL(query) {
		log.Printf("[resolver] model returned non-SQL response: %s", truncate(query, 120))
		return "", ErrModelInvalidOutput
	}
	return query, nil
}

// sanitizeResponse trims whitespace and markdown code fences from a
// model response. Models often wrap SQL in ```sql blocks even when told
// not to.
func sanitizeResponse(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// acceptableSQL reports whether the text looks like a single executable
// statement: it must start, case-insensitively, with one of the known
// statement keywords.
func acceptableSQL(query string) bool {
	if query == "" {
		return false
	}
	upper := strings.ToUpper(query)
	for _, prefix := range sqlPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
