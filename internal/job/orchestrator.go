// Package job coordinates the extraction job lifecycle: file submission,
// the single outstanding extraction request, synthetic progress, and the
// transition to results, error display or retry.
package job

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/xindus-labs/shipdocs/constants"
	"github.com/xindus-labs/shipdocs/internal/client"
	"github.com/xindus-labs/shipdocs/internal/common"
	"github.com/xindus-labs/shipdocs/internal/model"
	"github.com/xindus-labs/shipdocs/internal/progress"
)

// State is the orchestrator's top-level position in the job lifecycle.
type State int

const (
	StateUpload State = iota
	StateProcessing
	StateResults
)

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateProcessing:
		return "processing"
	case StateResults:
		return "results"
	}
	return "unknown"
}

const genericFailureMessage = "Extraction failed. Please try again or contact support."

// ExtractionClient is the boundary the orchestrator drives. *client.Client
// satisfies it; tests substitute fakes.
type ExtractionClient interface {
	Extract(ctx context.Context, files []client.File, opts model.ExtractionOptions) (*model.JobStatus, error)
}

// Snapshot is a read-only copy of the orchestrator's current state.
// ErrMsg is only set in the blocking error sub-state of StateProcessing;
// Notice carries non-blocking warnings once StateResults is reached.
type Snapshot struct {
	State                State
	Progress             float64
	Phase                string
	ErrMsg               string
	Notice               []string
	Result               *model.ExtractionResult
	JobID                string
	MultiAddressDownload string
	SimplifiedDownload   string
}

// CanRetry reports whether the retry affordance applies.
func (s Snapshot) CanRetry() bool {
	return s.ErrMsg != ""
}

// Config tunes an Orchestrator.
type Config struct {
	// ResultDelay is the short fixed pause between a confirmed success and
	// the transition to StateResults, letting the progress bar visibly
	// reach 100. Zero keeps the 400ms default; negative disables it.
	ResultDelay time.Duration
	// EstimatorOptions are passed through to the progress estimator.
	EstimatorOptions []progress.Option
}

// Orchestrator owns all job-scoped state. One mutex guards it; the
// estimator callback and the completion goroutine are the only writers
// besides the public operations.
type Orchestrator struct {
	client      ExtractionClient
	logger      *slog.Logger
	resultDelay time.Duration
	onChange    func(Snapshot)
	est         *progress.Estimator

	mu       sync.Mutex
	state    State
	progress float64
	phase    string
	errMsg   string
	notice   []string
	result   *model.ExtractionResult
	jobID    string
	multiURL string
	simpURL  string

	files []client.File
	opts  model.ExtractionOptions

	// token identifies the active submission; a late response from an
	// abandoned call is dropped when its token no longer matches.
	token    uint64
	inFlight bool
}

// New builds an Orchestrator in StateUpload. onChange fires after every
// state mutation with a fresh Snapshot; it may be nil. onChange runs with
// the orchestrator's lock held and must not call back into it.
func New(ec ExtractionClient, cfg Config, onChange func(Snapshot), logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	delay := cfg.ResultDelay
	if delay == 0 {
		delay = 400 * time.Millisecond
	}
	if delay < 0 {
		delay = 0
	}
	o := &Orchestrator{
		client:      ec,
		logger:      logger,
		resultDelay: delay,
		onChange:    onChange,
		state:       StateUpload,
	}
	o.est = progress.New(o.onProgress, logger, cfg.EstimatorOptions...)
	return o
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	notice := make([]string, len(o.notice))
	copy(notice, o.notice)
	return Snapshot{
		State:                o.state,
		Progress:             o.progress,
		Phase:                o.phase,
		ErrMsg:               o.errMsg,
		Notice:               notice,
		Result:               o.result,
		JobID:                o.jobID,
		MultiAddressDownload: o.multiURL,
		SimplifiedDownload:   o.simpURL,
	}
}

func (o *Orchestrator) notifyLocked() {
	if o.onChange == nil {
		return
	}
	snap := o.snapshotLocked()
	o.onChange(snap)
}

// Submit starts a new extraction job. Files and options are stored for
// retry; exactly one extraction call is issued. A second Submit while a
// request is outstanding is rejected — the UI disables the control during
// StateProcessing, so hitting this is a programming error upstream.
func (o *Orchestrator) Submit(ctx context.Context, files []client.File, opts model.ExtractionOptions) error {
	if len(files) == 0 {
		return common.NewAppError("SUBMIT_ERROR", "at least one file is required", common.ErrInvalidInput)
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return common.NewAppError("SUBMIT_ERROR", "an extraction request is already outstanding", common.ErrInvalidInput)
	}

	o.result = nil
	o.errMsg = ""
	o.notice = nil
	o.jobID = ""
	o.multiURL = ""
	o.simpURL = ""
	o.progress = 0
	o.phase = ""
	o.files = files
	o.opts = opts
	o.state = StateProcessing
	o.inFlight = true
	o.token++
	token := o.token
	o.notifyLocked()
	o.mu.Unlock()

	o.logger.Info("job.submit", "files", len(files), "output_currency", opts.OutputCurrency, "token", token)
	o.est.Start()

	go func() {
		status, err := o.client.Extract(ctx, files, opts)
		o.complete(token, status, err)
	}()
	return nil
}

// Retry replays the previous submission with the identical files and
// options. Without stored files it clears transient state and returns to
// StateUpload.
func (o *Orchestrator) Retry(ctx context.Context) error {
	o.mu.Lock()
	files := o.files
	opts := o.opts
	o.mu.Unlock()

	if len(files) == 0 {
		o.Reset()
		return nil
	}
	o.logger.Info("job.retry", "files", len(files))
	return o.Submit(ctx, files, opts)
}

// Reset cancels any running estimator, clears all job-scoped state and
// returns to StateUpload. A response from a request that was in flight at
// reset time is dropped by the token guard.
func (o *Orchestrator) Reset() {
	o.est.Stop()

	o.mu.Lock()
	o.token++
	o.inFlight = false
	o.state = StateUpload
	o.progress = 0
	o.phase = ""
	o.errMsg = ""
	o.notice = nil
	o.result = nil
	o.jobID = ""
	o.multiURL = ""
	o.simpURL = ""
	o.files = nil
	o.opts = model.ExtractionOptions{}
	o.notifyLocked()
	o.mu.Unlock()

	o.logger.Info("job.reset")
}

// onProgress is the estimator's callback; it only moves the displayed
// percentage while this run's request is still outstanding.
func (o *Orchestrator) onProgress(u progress.Update) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateProcessing || !o.inFlight {
		return
	}
	if u.Percent > o.progress {
		o.progress = u.Percent
	}
	o.phase = u.Label
	o.notifyLocked()
}

// complete applies the terminal response (or transport failure) of the
// submission identified by token.
func (o *Orchestrator) complete(token uint64, status *model.JobStatus, err error) {
	o.mu.Lock()
	if token != o.token {
		o.mu.Unlock()
		o.logger.Warn("job.stale_response_dropped", "token", token)
		return
	}
	o.inFlight = false
	o.mu.Unlock()

	o.est.Stop()

	if err != nil {
		o.failWith(token, errorText(err))
		return
	}

	result := status.Result
	failed := status.Status == constants.StatusFailed
	if result != nil {
		failed = result.Status == constants.StatusFailed
	}
	if failed {
		o.failWith(token, failureMessage(result))
		return
	}

	o.succeed(token, status)
}

// failWith enters the blocking error sub-state with retry enabled.
func (o *Orchestrator) failWith(token uint64, msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if token != o.token {
		return
	}
	o.state = StateProcessing
	o.errMsg = msg
	o.notice = nil
	o.result = nil
	o.notifyLocked()
	o.logger.Error("job.failed", "error", msg)
}

// succeed pushes the bar to 100, holds it briefly so the user sees it
// arrive, then transitions to StateResults with any warnings surfaced as a
// non-blocking notice.
func (o *Orchestrator) succeed(token uint64, status *model.JobStatus) {
	o.mu.Lock()
	if token != o.token {
		o.mu.Unlock()
		return
	}
	o.progress = 100
	o.phase = "Complete"
	o.notifyLocked()
	o.mu.Unlock()

	if o.resultDelay > 0 {
		time.Sleep(o.resultDelay)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if token != o.token {
		return
	}
	o.state = StateResults
	o.result = status.Result
	o.jobID = status.JobID
	o.multiURL = status.MultiAddressDownload
	o.simpURL = status.SimplifiedDownload
	if status.Result != nil {
		o.notice = append([]string(nil), status.Result.Warnings...)
	}
	o.notifyLocked()

	warnings := 0
	confidence := 0.0
	if status.Result != nil {
		warnings = len(status.Result.Warnings)
		confidence = status.Result.OverallConfidence
	}
	o.logger.Info("job.completed",
		"job_id", status.JobID,
		"status", string(status.Status),
		"confidence", confidence,
		"warnings", warnings,
	)
}

// failureMessage concatenates a failed result's errors then warnings,
// pipe-joined, falling back to a generic message when both are empty. The
// server's text is presented verbatim.
func failureMessage(result *model.ExtractionResult) string {
	if result == nil {
		return genericFailureMessage
	}
	parts := make([]string, 0, len(result.Errors)+len(result.Warnings))
	parts = append(parts, result.Errors...)
	parts = append(parts, result.Warnings...)
	if len(parts) == 0 {
		return genericFailureMessage
	}
	return strings.Join(parts, " | ")
}

func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return genericFailureMessage
	}
	return err.Error()
}
