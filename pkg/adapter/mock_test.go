package adapter

import (
	"context"
	"testing"
)

func TestMockAdapter(t *testing.T) {
	a := NewMockAdapterWithResponses(map[string]string{
		"known": "SELECT COUNT(*) FROM product_eligibility;",
	}, "SELECT 1;")

	resp, err := a.Generate(context.Background(), "", "sys", "known")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "SELECT COUNT(*) FROM product_eligibility;" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "mock-1" {
		t.Errorf("Model = %q, want mock-1", resp.Model)
	}

	resp, err = a.Generate(context.Background(), "mock-2", "sys", "unknown")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "SELECT 1;" {
		t.Errorf("default Content = %q", resp.Content)
	}

	if len(a.Calls) != 2 || a.Calls[0] != "known" || a.Calls[1] != "unknown" {
		t.Errorf("Calls = %v", a.Calls)
	}
}
