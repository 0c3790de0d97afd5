package domain

// Snapshot is a lightweight view of a fetched page, enough for the decision
// oracle to pick the next move. Discarded after a decision is made.
type Snapshot struct {
	URL      string
	Title    string
	Headings []string
	Snippets []string
	Links    []PageLink
}

// PageLink is an outbound link with a synthetic, run-scoped id the oracle
// refers to when asking to follow it.
type PageLink struct {
	ID   string
	Text string
	Href string
}

// BrowsingAction is one of the three moves the crawl controller accepts.
type BrowsingAction string

// browsing actions
const (
	ActionClick   BrowsingAction = "click"
	ActionExtract BrowsingAction = "extract"
	ActionStop    BrowsingAction = "stop"
)

// BrowsingDecision is a sanitized oracle decision. Target is only meaningful
// for click and refers to a PageLink id from the snapshot it was made against.
type BrowsingDecision struct {
	Action BrowsingAction
	Target string
	Reason string
}
