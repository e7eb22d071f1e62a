package gate

import (
	"testing"

	"github.com/sprite-ai/purecode/internal/stats"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }

func TestEmptyConfigPasses(t *testing.T) {
	sum := stats.Summary{
		Added: stats.Counts{Total: 100, Comment: 100}, // pure noise
	}
	v := Evaluate(sum, Config{})
	if !v.Passed {
		t.Errorf("empty config must pass, got violations %v", v.Violations)
	}
}

func TestNoiseRatioExceeded(t *testing.T) {
	// 62 noise of 100 total
	sum := stats.Summary{
		Added: stats.Counts{Total: 100, Pure: 38, Comment: 40, Blank: 22},
	}
	v := Evaluate(sum, Config{MaxNoiseRatio: floatPtr(0.5)})
	if v.Passed {
		t.Fatal("expected a violation")
	}
	if len(v.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(v.Violations))
	}
	viol := v.Violations[0]
	if viol.Reason != ReasonNoiseRatio {
		t.Errorf("reason = %q", viol.Reason)
	}
	if viol.Observed != 0.62 || viol.Limit != 0.5 {
		t.Errorf("observed=%v limit=%v", viol.Observed, viol.Limit)
	}
}

func TestNoiseRatioAtLimitPasses(t *testing.T) {
	sum := stats.Summary{
		Added: stats.Counts{Total: 10, Pure: 5, Comment: 5},
	}
	v := Evaluate(sum, Config{MaxNoiseRatio: floatPtr(0.5)})
	if !v.Passed {
		t.Errorf("ratio equal to the limit must pass, got %v", v.Violations)
	}
}

func TestMinPureLines(t *testing.T) {
	sum := stats.Summary{
		Added: stats.Counts{Total: 3, Pure: 3},
	}
	v := Evaluate(sum, Config{MinPureLines: intPtr(10)})
	if v.Passed || len(v.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", v.Violations)
	}
	if v.Violations[0].Reason != ReasonMinPure {
		t.Errorf("reason = %q", v.Violations[0].Reason)
	}
}

func TestFailOnDecrease(t *testing.T) {
	sum := stats.Summary{
		Added:   stats.Counts{Total: 2, Pure: 2},
		Removed: stats.Counts{Total: 5, Pure: 5},
	}

	v := Evaluate(sum, Config{FailOnDecrease: true})
	if v.Passed || len(v.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", v.Violations)
	}
	if v.Violations[0].Reason != ReasonPureDecrease {
		t.Errorf("reason = %q", v.Violations[0].Reason)
	}
	if v.Violations[0].Observed != -3 {
		t.Errorf("observed = %v, want -3", v.Violations[0].Observed)
	}

	// Not configured: the same decrease passes.
	if v := Evaluate(sum, Config{}); !v.Passed {
		t.Errorf("decrease without fail_on_decrease must pass, got %v", v.Violations)
	}
}

func TestAllViolationsReported(t *testing.T) {
	sum := stats.Summary{
		Added:   stats.Counts{Total: 10, Pure: 2, Comment: 8},
		Removed: stats.Counts{Total: 6, Pure: 6},
	}
	cfg := Config{
		MaxNoiseRatio:  floatPtr(0.3),
		MinPureLines:   intPtr(5),
		FailOnDecrease: true,
	}
	v := Evaluate(sum, cfg)
	if len(v.Violations) != 3 {
		t.Fatalf("expected all 3 violations, got %d: %v", len(v.Violations), v.Violations)
	}
}

func TestViolationStrings(t *testing.T) {
	tests := []struct {
		v    Violation
		want string
	}{
		{Violation{ReasonNoiseRatio, 0.62, 0.5}, "noise ratio 0.62 exceeds maximum 0.50"},
		{Violation{ReasonMinPure, 3, 10}, "net pure lines 3 below minimum 10"},
		{Violation{ReasonPureDecrease, -3, 0}, "net pure lines decreased by 3"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
