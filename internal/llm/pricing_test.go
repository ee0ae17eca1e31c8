package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	if LookupCost("gpt-4o-mini") == nil {
		t.Fatal("expected price for gpt-4o-mini")
	}
	if LookupCost("openai/gpt-4o-mini") == nil {
		t.Error("expected vendor-prefixed ID to resolve")
	}
	if LookupCost("mock") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestEstimateCost(t *testing.T) {
	usd, ok := EstimateCost("gpt-4o-mini", 1_000_000, 500_000)
	if !ok {
		t.Fatal("expected known model")
	}
	if math.Abs(usd-0.45) > 1e-9 {
		t.Errorf("cost = %v, want 0.45", usd)
	}
	if _, ok := EstimateCost("mock", 10, 10); ok {
		t.Error("expected unknown model")
	}
}
