package model

import "strings"

// Impact represents the severity classification axe-core assigns to a
// violation. This allows ranking findings and gating CI runs on a
// minimum severity.
//
// Design decision: We use iota-based constants rather than comparing the
// raw strings because the ordering (critical > serious > moderate >
// minor) is what the fail gate and the summary report care about.
type Impact int

const (
	// ImpactUnknown is used when the engine reported no impact or an
	// impact string this tool does not recognize.
	ImpactUnknown Impact = iota

	// ImpactMinor indicates cosmetic issues with limited effect on
	// assistive technology users.
	ImpactMinor

	// ImpactModerate indicates issues that degrade the experience but
	// leave content reachable.
	ImpactModerate

	// ImpactSerious indicates issues that block some users from
	// consuming content or completing tasks.
	ImpactSerious

	// ImpactCritical indicates issues that make content unusable with
	// assistive technology.
	ImpactCritical
)

// ParseImpact converts an axe-core impact string to an Impact level.
// Unrecognized or empty strings map to ImpactUnknown.
func ParseImpact(s string) Impact {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minor":
		return ImpactMinor
	case "moderate":
		return ImpactModerate
	case "serious":
		return ImpactSerious
	case "critical":
		return ImpactCritical
	default:
		return ImpactUnknown
	}
}

// String returns the axe-core spelling of the impact level.
func (i Impact) String() string {
	switch i {
	case ImpactMinor:
		return "minor"
	case ImpactModerate:
		return "moderate"
	case ImpactSerious:
		return "serious"
	case ImpactCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether the impact meets or exceeds the threshold.
// ImpactUnknown never satisfies a threshold above itself, so records the
// engine left unclassified do not trip a severity gate.
func (i Impact) AtLeast(threshold Impact) bool {
	return i >= threshold
}
