// Package gate applies configured thresholds to a summary and produces a
// pass/fail verdict. Violations are not errors: they ride a successful
// pipeline run, and only the CLI boundary turns them into an exit code.
package gate

import (
	"fmt"

	"github.com/sprite-ai/purecode/internal/stats"
)

// Violation reasons, stable identifiers for machine-readable output.
const (
	ReasonNoiseRatio   = "noise_ratio_exceeded"
	ReasonMinPure      = "insufficient_pure_lines"
	ReasonPureDecrease = "pure_code_decreased"
)

// Config holds the gates. Nil fields mean "not configured"; an empty Config
// always passes. Built once from merged config-file and CLI values.
type Config struct {
	MaxNoiseRatio  *float64 // 0.0–1.0
	MinPureLines   *int64
	FailOnDecrease bool
}

// Violation is one failed gate with the observed value and its limit.
type Violation struct {
	Reason   string
	Observed float64
	Limit    float64
}

func (v Violation) String() string {
	switch v.Reason {
	case ReasonNoiseRatio:
		return fmt.Sprintf("noise ratio %.2f exceeds maximum %.2f", v.Observed, v.Limit)
	case ReasonMinPure:
		return fmt.Sprintf("net pure lines %.0f below minimum %.0f", v.Observed, v.Limit)
	case ReasonPureDecrease:
		return fmt.Sprintf("net pure lines decreased by %.0f", -v.Observed)
	default:
		return v.Reason
	}
}

// Verdict is the outcome of evaluating every configured gate.
type Verdict struct {
	Passed     bool
	Violations []Violation
}

// Evaluate checks each configured gate independently and reports every
// violation, not just the first. It never fails; absence of configuration is
// a valid, permissive state.
func Evaluate(sum stats.Summary, cfg Config) Verdict {
	var violations []Violation

	if cfg.MaxNoiseRatio != nil {
		if ratio := sum.NoiseRatio(); ratio > *cfg.MaxNoiseRatio {
			violations = append(violations, Violation{
				Reason:   ReasonNoiseRatio,
				Observed: ratio,
				Limit:    *cfg.MaxNoiseRatio,
			})
		}
	}

	if cfg.MinPureLines != nil {
		if net := sum.NetPure(); net < *cfg.MinPureLines {
			violations = append(violations, Violation{
				Reason:   ReasonMinPure,
				Observed: float64(net),
				Limit:    float64(*cfg.MinPureLines),
			})
		}
	}

	if cfg.FailOnDecrease {
		if net := sum.NetPure(); net < 0 {
			violations = append(violations, Violation{
				Reason:   ReasonPureDecrease,
				Observed: float64(net),
				Limit:    0,
			})
		}
	}

	return Verdict{Passed: len(violations) == 0, Violations: violations}
}
