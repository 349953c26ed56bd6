package ilp

// ThroughputMode selects how constraint family 4 (throughput) is encoded.
// Spec §9's first Open Question notes the source variants disagree on
// equality vs. inequality; this core defaults to equality (the
// consolidated variant) but exposes the choice for reproducing legacy
// behavior.
type ThroughputMode int

const (
	ThroughputEquality ThroughputMode = iota
	ThroughputAtMost
)

// Options selects between the spec §9 Open Question alternatives.
type Options struct {
	Throughput ThroughputMode

	// CritDenominatorPlusOne selects crit(n)+1 (true, the spec's default,
	// chosen for numerical safety) vs. crit(n) (false, legacy variant) as
	// the denominator in the preference-weighted objective.
	CritDenominatorPlusOne bool
}

// DefaultOptions reproduces spec §9's chosen resolution of both Open
// Questions: equality throughput, crit(n)+1 denominator.
func DefaultOptions() Options {
	return Options{
		Throughput:             ThroughputEquality,
		CritDenominatorPlusOne: true,
	}
}
