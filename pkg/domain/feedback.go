package domain

import "time"

// FeedbackAction is what the user did with a story.
type FeedbackAction string

// feedback actions
const (
	FeedbackLike    FeedbackAction = "LIKE"
	FeedbackDislike FeedbackAction = "DISLIKE"
	FeedbackSave    FeedbackAction = "SAVE"
	FeedbackOpened  FeedbackAction = "OPENED"
	FeedbackIgnored FeedbackAction = "IGNORED"
)

// Valid reports whether the action is one of the known feedback actions.
func (a FeedbackAction) Valid() bool {
	switch a {
	case FeedbackLike, FeedbackDislike, FeedbackSave, FeedbackOpened, FeedbackIgnored:
		return true
	}
	return false
}

// DefaultConfidence maps an action to its natural confidence level: deliberate
// actions are explicit, behavioral ones implicit.
func (a FeedbackAction) DefaultConfidence() FeedbackConfidence {
	switch a {
	case FeedbackLike, FeedbackDislike, FeedbackSave:
		return ConfidenceExplicit
	}
	return ConfidenceImplicit
}

// FeedbackConfidence distinguishes deliberate user actions from inferred ones.
type FeedbackConfidence string

// feedback confidence levels
const (
	ConfidenceExplicit FeedbackConfidence = "explicit"
	ConfidenceImplicit FeedbackConfidence = "implicit"
)

// Valid reports whether the confidence is a known level.
func (c FeedbackConfidence) Valid() bool {
	return c == ConfidenceExplicit || c == ConfidenceImplicit
}

// FeedbackEvent is a single append-only feedback record. Events are never
// mutated or deleted; they are the sole input to score recomputation.
type FeedbackEvent struct {
	ID         int64
	StoryID    string
	Action     FeedbackAction
	Confidence FeedbackConfidence
	Source     string // where the feedback came from (telegram, web, ...)
	CreatedAt  time.Time
	Metadata   string // optional JSON blob
}
