package selector

// Controls is the derived enabled/disabled state for the four possible
// stepper buttons. Disabled flags are recomputed after every commit.
type Controls struct {
	// MinusDisabled is true when the base quantity cannot go lower,
	// or when the minus control was permanently latched disabled.
	MinusDisabled bool `json:"minus_disabled"`
	// PlusDisabled is true when the base quantity cannot go higher,
	// or when the plus control was permanently latched disabled.
	PlusDisabled bool `json:"plus_disabled"`
	// CaseMinusDisabled is true when the case count is at its floor of 1.
	// Always false outside case-pack mode.
	CaseMinusDisabled bool `json:"case_minus_disabled"`
	// CasePlusDisabled is true when the case count reached MaxCases.
	// Always false outside case-pack mode.
	CasePlusDisabled bool `json:"case_plus_disabled"`
}

// projectControls derives the button state from the current value, bounds,
// and latches. Only the base pair is subject to permanent latching; the
// case pair mirrors the case-count bounds directly.
func projectControls(value, caseCount int, c Constraints, eff int, bounded bool, pack CasePack, minusLatched, plusLatched bool) Controls {
	ctrl := Controls{
		MinusDisabled: minusLatched || value <= c.Min,
		PlusDisabled:  plusLatched || (bounded && value >= eff),
	}
	if pack.Enabled() {
		ctrl.CaseMinusDisabled = caseCount <= 1
		ctrl.CasePlusDisabled = pack.MaxCases > 0 && caseCount >= pack.MaxCases
	}
	return ctrl
}
