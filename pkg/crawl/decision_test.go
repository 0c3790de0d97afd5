package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storyscout/pkg/domain"
)

func TestSanitizeDecision(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		action   domain.BrowsingAction
		target   string
	}{
		{
			name:   "clean click",
			raw:    `{"action": "click", "target": "link-2", "reason": "promising article list"}`,
			action: domain.ActionClick,
			target: "link-2",
		},
		{
			name:   "click wrapped in prose and code fences",
			raw:    "Sure, here is my decision:\n```json\n{\"action\": \"click\", \"target\": \"link-0\", \"reason\": \"headline\"}\n```",
			action: domain.ActionClick,
			target: "link-0",
		},
		{
			name:   "extract",
			raw:    `{"action": "extract", "reason": "this page is a story"}`,
			action: domain.ActionExtract,
		},
		{
			name:   "explicit stop",
			raw:    `{"action": "stop", "reason": "nothing interesting"}`,
			action: domain.ActionStop,
		},
		{
			name:   "uppercase action is normalized",
			raw:    `{"action": "EXTRACT"}`,
			action: domain.ActionExtract,
		},
		{
			name:   "no json at all",
			raw:    "I think we should probably click the first link",
			action: domain.ActionStop,
		},
		{
			name:   "broken json",
			raw:    `{"action": "click", "target": `,
			action: domain.ActionStop,
		},
		{
			name:   "unknown action",
			raw:    `{"action": "navigate", "target": "link-1"}`,
			action: domain.ActionStop,
		},
		{
			name:   "click with numeric target",
			raw:    `{"action": "click", "target": 3}`,
			action: domain.ActionStop,
		},
		{
			name:   "click with null target",
			raw:    `{"action": "click", "target": null}`,
			action: domain.ActionStop,
		},
		{
			name:   "click with blank target",
			raw:    `{"action": "click", "target": "   "}`,
			action: domain.ActionStop,
		},
		{
			name:   "empty input",
			raw:    "",
			action: domain.ActionStop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := SanitizeDecision(tt.raw)
			assert.Equal(t, tt.action, dec.Action)
			if tt.target != "" {
				assert.Equal(t, tt.target, dec.Target)
			}
		})
	}
}
