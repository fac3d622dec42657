package stop

// CheckRecord captures a single stop decision during a replay.
type CheckRecord struct {
	Step  int // 0-based position in the check sequence
	Epoch int
	Stop  bool
}

// DecisionTrace collects stop decisions while a handler replays a metrics
// trace.
type DecisionTrace struct {
	Checks []CheckRecord
}

// Record appends a decision record.
func (dt *DecisionTrace) Record(rec CheckRecord) {
	dt.Checks = append(dt.Checks, rec)
}

// TraceSummary aggregates statistics from a DecisionTrace.
type TraceSummary struct {
	TotalChecks    int
	StopCount      int
	FirstStopStep  int // -1 if no check voted to stop
	FirstStopEpoch int // 0 if no check voted to stop
}

// Summarize computes aggregate statistics from a DecisionTrace.
// Safe for nil or empty traces (returns zero counts, FirstStopStep -1).
func Summarize(dt *DecisionTrace) *TraceSummary {
	summary := &TraceSummary{FirstStopStep: -1}
	if dt == nil {
		return summary
	}

	summary.TotalChecks = len(dt.Checks)
	for _, c := range dt.Checks {
		if c.Stop {
			if summary.StopCount == 0 {
				summary.FirstStopStep = c.Step
				summary.FirstStopEpoch = c.Epoch
			}
			summary.StopCount++
		}
	}
	return summary
}
