package core

// DecisionResult is the outcome of a Decide function.
//
// Construct it only with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome string       // "idempotent", "success", or "error"
	Events  DomainEvents // empty unless Outcome is "success"
	Skipped []SkippedTitle
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision means nothing changes. Batch commands where every title was skipped
// end up here, with the reasons in skipped.
func IdempotentDecision(skipped ...SkippedTitle) DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
		Skipped: skipped,
	}
}

// SuccessDecision carries the events to commit and the titles that were skipped along the way.
func SuccessDecision(events DomainEvents, skipped ...SkippedTitle) DecisionResult {
	if len(events) == 0 {
		return IdempotentDecision(skipped...)
	}

	return DecisionResult{
		Outcome: successOutcome,
		Events:  events,
		Skipped: skipped,
	}
}

// ErrorDecision refuses the whole command. Nothing is committed.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventsToAppend returns true if there are events to commit.
func (r DecisionResult) HasEventsToAppend() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if the decision leaves the state unchanged without refusing the command.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
