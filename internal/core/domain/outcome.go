package domain

// Outcome is the per-book reconciliation result. It is the unit the
// batch runner aggregates; item-level failures are converted to an
// Outcome and never propagate past the item boundary.
type Outcome string

const (
	// OutcomeCreated means a new destination page was created and its
	// content transferred.
	OutcomeCreated Outcome = "created"

	// OutcomeUpdated means an existing destination page received new
	// content.
	OutcomeUpdated Outcome = "updated"

	// OutcomeSkipped means no new content existed under incremental
	// mode; nothing was written.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeMetadataFailed means creating the destination page
	// failed; the content phase was not attempted.
	OutcomeMetadataFailed Outcome = "metadata_failed"

	// OutcomeContentFailed means the content transfer reported
	// failure. Freshly observed cursors are still persisted.
	OutcomeContentFailed Outcome = "content_failed"
)

// Failed reports whether the outcome counts as a failure.
func (o Outcome) Failed() bool {
	return o == OutcomeMetadataFailed || o == OutcomeContentFailed
}

// Succeeded reports whether content was transferred successfully.
func (o Outcome) Succeeded() bool {
	return o == OutcomeCreated || o == OutcomeUpdated
}
