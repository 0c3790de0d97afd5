package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// StoryCandidate is a not-yet-persisted story surfaced by ingestion or crawling,
// pending a relevance decision. Consumed once by the gating step.
type StoryCandidate struct {
	ID       string
	Title    string
	URL      string
	SourceID string
	Score    float64 // raw score reported by the source, if any
	Rank     int     // position within the source listing, if any
	Signals  *ContentSignals
}

// ContentSignals holds extracted page content used for relevance checks.
type ContentSignals struct {
	Title     string
	Text      string
	Excerpt   string // sanitized HTML excerpt
	WordCount int
}

// Story is a persisted story that passed the relevance gate.
// Created once on first match; relevance fields are owned by the scoring
// engine, notification fields by delivery.
type Story struct {
	ID               string
	Title            string
	URL              string
	SourceID         string
	Score            float64 // raw external score at discovery time
	Rank             int
	Date             time.Time
	Reason           string // one-sentence relevance oracle reason
	RelevanceScore   int    // fixed-point, two implied decimals
	NotificationSent bool
	FirstSeenAt      time.Time
	LastNotifiedAt   *time.Time
	SuppressedUntil  *time.Time
}

// Topic is an aggregate interest bucket accumulating propagated feedback.
type Topic struct {
	ID    int64
	Name  string // unique
	Score float64
}

// StoryTopic links a story to a topic, unique on (story, topic).
type StoryTopic struct {
	StoryID string
	TopicID int64
	Source  string
	Weight  float64
}

// CandidateID derives a stable story id from a source and URL. The same
// URL within the same source always yields the same id, across runs and
// processes.
func CandidateID(sourceID, url string) string {
	sum := sha256.Sum256([]byte(url))
	return sourceID + "-" + hex.EncodeToString(sum[:8])
}
