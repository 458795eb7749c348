package workflow

import (
	"fmt"
	"strings"
)

// Platform identifies one of the targeted social networks.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
)

// Platforms returns all platforms in a fixed order.
func Platforms() []Platform {
	return []Platform{PlatformTwitter, PlatformLinkedIn}
}

// Workspace accumulates one platform's drafts and the current critique
// feedback. Drafts are append-only and never reordered within a run.
// Feedback is a single current value: each critique overwrites it, and it
// always describes the draft that was latest at critique time. A previous
// round's feedback deliberately survives the next append, because the writer
// consumes it before the new draft exists.
type Workspace struct {
	Drafts   []string `json:"drafts"`
	Feedback string   `json:"feedback,omitempty"`
}

// LatestDraft returns the most recently appended draft.
func (w *Workspace) LatestDraft() (string, bool) {
	if len(w.Drafts) == 0 {
		return "", false
	}
	return w.Drafts[len(w.Drafts)-1], true
}

// HasFeedback reports whether a critique has run for this workspace.
func (w *Workspace) HasFeedback() bool {
	return w.Feedback != ""
}

// Request is the configuration for one workflow run, supplied by the caller.
type Request struct {
	// UserText is the raw input text. Required.
	UserText string `json:"text"`

	// TargetAudience is free text describing who the posts are for.
	TargetAudience string `json:"target_audience"`

	// Drafts is the per-platform draft target. Must be at least 1.
	Drafts int `json:"drafts"`
}

// Validate checks the request against the invocation contract.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.UserText) == "" {
		return fmt.Errorf("text is required")
	}
	if r.Drafts < 1 {
		return fmt.Errorf("drafts must be at least 1, got %d", r.Drafts)
	}
	return nil
}

// State is the full mutable state of one workflow run. It is owned
// exclusively by one Engine.Run call, mutated in place by stages, and handed
// back fully populated on termination. Nothing outlives the run.
type State struct {
	// RunID uniquely identifies this execution in logs.
	RunID string `json:"run_id"`

	// UserText is the raw input text, immutable for the run.
	UserText string `json:"user_text"`

	// TargetAudience is immutable free text.
	TargetAudience string `json:"target_audience"`

	// EditText is produced once by the edit stage, then immutable.
	EditText string `json:"edit_text"`

	// Tweet and LinkedInPost are the per-platform workspaces. Twitter
	// stages only ever mutate Tweet, LinkedIn stages only LinkedInPost.
	Tweet        *Workspace `json:"tweet"`
	LinkedInPost *Workspace `json:"linkedin_post"`

	// DraftTarget is the per-platform draft count bound, immutable.
	DraftTarget int `json:"n_drafts"`
}

// NewState constructs the initial state for a run: empty workspaces, zero
// drafts, no edited text.
func NewState(req Request) *State {
	return &State{
		UserText:       req.UserText,
		TargetAudience: req.TargetAudience,
		Tweet:          &Workspace{},
		LinkedInPost:   &Workspace{},
		DraftTarget:    req.Drafts,
	}
}

// Workspace returns the workspace owned by the given platform.
func (s *State) Workspace(p Platform) *Workspace {
	switch p {
	case PlatformTwitter:
		return s.Tweet
	case PlatformLinkedIn:
		return s.LinkedInPost
	default:
		return nil
	}
}
