package crawl

import (
	"encoding/json"
	"strings"

	"github.com/go-pkgz/lgr"

	"storyscout/pkg/domain"
)

// rawDecision is the loosely-typed shape the oracle is asked to produce.
// Target is deliberately untyped: model output is untrusted input and shows
// up as strings, numbers or null depending on the model's mood.
type rawDecision struct {
	Action string `json:"action"`
	Target any    `json:"target"`
	Reason string `json:"reason"`
}

// SanitizeDecision maps arbitrary oracle output to exactly one of the three
// browsing actions. Anything that fails to parse, names an unknown action, or
// asks to click without a usable target collapses to stop. The oracle is the
// only component that could cause unbounded navigation, so nothing it says is
// trusted before validation.
func SanitizeDecision(raw string) domain.BrowsingDecision {
	stop := func(reason string) domain.BrowsingDecision {
		return domain.BrowsingDecision{Action: domain.ActionStop, Reason: reason}
	}

	// the model may wrap the JSON object in prose or code fences
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start >= end {
		lgr.Printf("[WARN] no json object in oracle decision, forcing stop: %q", truncate(raw, 200))
		return stop("unparseable oracle output")
	}

	var dec rawDecision
	if err := json.Unmarshal([]byte(raw[start:end+1]), &dec); err != nil {
		lgr.Printf("[WARN] malformed oracle decision, forcing stop: %v, raw: %q", err, truncate(raw, 200))
		return stop("malformed oracle output")
	}

	action := domain.BrowsingAction(strings.ToLower(strings.TrimSpace(dec.Action)))
	switch action {
	case domain.ActionStop:
		return domain.BrowsingDecision{Action: domain.ActionStop, Reason: dec.Reason}
	case domain.ActionExtract:
		return domain.BrowsingDecision{Action: domain.ActionExtract, Reason: dec.Reason}
	case domain.ActionClick:
		target, ok := dec.Target.(string)
		if !ok || strings.TrimSpace(target) == "" {
			lgr.Printf("[WARN] click decision without usable target, forcing stop: %v", dec.Target)
			return stop("click without target")
		}
		return domain.BrowsingDecision{Action: domain.ActionClick, Target: strings.TrimSpace(target), Reason: dec.Reason}
	default:
		lgr.Printf("[WARN] unknown oracle action %q, forcing stop", dec.Action)
		return stop("unknown action")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
