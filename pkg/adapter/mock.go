package adapter

import "context"

// MockAdapter returns deterministic responses for local runs and tests.
type MockAdapter struct {
	responses       map[string]string
	defaultResponse string

	// Err, when set, is returned from every Generate call. Used to
	// simulate an unreachable model.
	Err error

	// Calls records the user prompts passed to Generate.
	Calls []string
}

// NewMockAdapter creates a mock adapter with a default response.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		responses:       make(map[string]string),
		defaultResponse: "SELECT 1;",
	}
}

// NewMockAdapterWithResponses creates a mock adapter with responses
// keyed by user prompt.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	if defaultResponse == "" {
		defaultResponse = "SELECT 1;"
	}
	return &MockAdapter{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (a *MockAdapter) Models() []string {
	return []string{"mock-1"}
}

// Generate returns a deterministic response for the user prompt.
func (a *MockAdapter) Generate(ctx context.Context, model string, system string, user string) (*Response, error) {
	a.Calls = append(a.Calls, user)
	if a.Err != nil {
		return nil, a.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if model == "" {
		model = "mock-1"
	}
	if response, ok := a.responses[user]; ok {
		return &Response{Content: response, Adapter: a.Name(), Model: model}, nil
	}
	return &Response{
		Content: a.defaultResponse,
		Adapter: a.Name(),
		Model:   model,
	}, nil
}
