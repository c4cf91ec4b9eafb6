package model

import "testing"

// TestParseImpact verifies the mapping from axe impact strings to levels.
func TestParseImpact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Impact
	}{
		{name: "minor", in: "minor", want: ImpactMinor},
		{name: "moderate", in: "moderate", want: ImpactModerate},
		{name: "serious", in: "serious", want: ImpactSerious},
		{name: "critical", in: "critical", want: ImpactCritical},
		{name: "uppercase is accepted", in: "SERIOUS", want: ImpactSerious},
		{name: "surrounding whitespace is trimmed", in: " critical ", want: ImpactCritical},
		{name: "empty string is unknown", in: "", want: ImpactUnknown},
		{name: "unrecognized string is unknown", in: "catastrophic", want: ImpactUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseImpact(tt.in); got != tt.want {
				t.Errorf("ParseImpact(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestImpactOrdering verifies that impact levels sort from unknown up to
// critical, which is what the fail gate relies on.
func TestImpactOrdering(t *testing.T) {
	t.Parallel()

	ordered := []Impact{ImpactUnknown, ImpactMinor, ImpactModerate, ImpactSerious, ImpactCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("expected %v < %v", ordered[i-1], ordered[i])
		}
	}
}

// TestImpactAtLeast verifies threshold comparisons used by the --fail-on gate.
func TestImpactAtLeast(t *testing.T) {
	t.Parallel()

	t.Run("critical meets serious threshold", func(t *testing.T) {
		t.Parallel()
		if !ImpactCritical.AtLeast(ImpactSerious) {
			t.Error("expected critical to meet serious threshold")
		}
	})

	t.Run("moderate does not meet serious threshold", func(t *testing.T) {
		t.Parallel()
		if ImpactModerate.AtLeast(ImpactSerious) {
			t.Error("expected moderate to fail serious threshold")
		}
	})

	t.Run("unknown does not meet minor threshold", func(t *testing.T) {
		t.Parallel()
		if ImpactUnknown.AtLeast(ImpactMinor) {
			t.Error("expected unknown to fail minor threshold")
		}
	})

	t.Run("level meets its own threshold", func(t *testing.T) {
		t.Parallel()
		if !ImpactSerious.AtLeast(ImpactSerious) {
			t.Error("expected serious to meet serious threshold")
		}
	})
}

// TestImpactString verifies the round trip to axe-core spelling.
func TestImpactString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		impact Impact
		want   string
	}{
		{ImpactUnknown, "unknown"},
		{ImpactMinor, "minor"},
		{ImpactModerate, "moderate"},
		{ImpactSerious, "serious"},
		{ImpactCritical, "critical"},
	}

	for _, tt := range tests {
		if got := tt.impact.String(); got != tt.want {
			t.Errorf("Impact(%d).String() = %q, want %q", tt.impact, got, tt.want)
		}
	}
}
