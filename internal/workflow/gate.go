package workflow

// Decision is the enumerated outcome of the convergence gate.
type Decision string

const (
	// DecisionContinue routes both platforms through another
	// critique/write cycle.
	DecisionContinue Decision = "continue"

	// DecisionTerminate ends the run with the current state as the result.
	DecisionTerminate Decision = "terminate"
)

// EvaluateGate applies the joint convergence condition after a writer
// fan-in. The condition is an AND over both platforms' draft counts: a
// platform that reached the target early still gets an extra critique/write
// cycle while the other platform lags, so both platforms always finish in
// the same round. Termination is guaranteed because drafts only grow and the
// target is a finite positive bound.
func EvaluateGate(s *State) Decision {
	if len(s.Tweet.Drafts) >= s.DraftTarget && len(s.LinkedInPost.Drafts) >= s.DraftTarget {
		return DecisionTerminate
	}
	return DecisionContinue
}
