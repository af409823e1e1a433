package constants

// ResultStatus is the canonical status carried by extraction results and
// job envelopes.
type ResultStatus string

// Stable values (the server returns these exact strings).
const (
	StatusProcessing   ResultStatus = "processing"    // extraction still running
	StatusReviewNeeded ResultStatus = "review_needed" // usable, but fields need human review
	StatusCompleted    ResultStatus = "completed"     // usable, high confidence
	StatusFailed       ResultStatus = "failed"        // terminal failure
)

// IsUsable reports whether a result with this status can be presented to the
// user. Every status except StatusFailed is usable; unknown values from newer
// servers are treated as usable rather than discarded.
func (s ResultStatus) IsUsable() bool {
	return s != StatusFailed
}
