package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateID(t *testing.T) {
	id := CandidateID("hn", "https://example.com/story")

	// stable across calls, prefixed with the source
	assert.Equal(t, id, CandidateID("hn", "https://example.com/story"))
	assert.Regexp(t, `^hn-[0-9a-f]{16}$`, id)

	// different source or url yields a different id
	assert.NotEqual(t, id, CandidateID("reddit", "https://example.com/story"))
	assert.NotEqual(t, id, CandidateID("hn", "https://example.com/other"))
}

func TestFeedbackAction_Valid(t *testing.T) {
	for _, a := range []FeedbackAction{FeedbackLike, FeedbackDislike, FeedbackSave, FeedbackOpened, FeedbackIgnored} {
		assert.True(t, a.Valid(), string(a))
	}
	assert.False(t, FeedbackAction("UPVOTE").Valid())
	assert.False(t, FeedbackAction("").Valid())
}

func TestFeedbackAction_DefaultConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceExplicit, FeedbackLike.DefaultConfidence())
	assert.Equal(t, ConfidenceExplicit, FeedbackDislike.DefaultConfidence())
	assert.Equal(t, ConfidenceExplicit, FeedbackSave.DefaultConfidence())
	assert.Equal(t, ConfidenceImplicit, FeedbackOpened.DefaultConfidence())
	assert.Equal(t, ConfidenceImplicit, FeedbackIgnored.DefaultConfidence())
}

func TestFeedbackConfidence_Valid(t *testing.T) {
	assert.True(t, ConfidenceExplicit.Valid())
	assert.True(t, ConfidenceImplicit.Valid())
	assert.False(t, FeedbackConfidence("certain").Valid())
}
