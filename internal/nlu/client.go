// Package nlu is the boundary to the optional external natural-language
// understanding service. The resolver escalates low-confidence queries
// here; every failure mode must degrade silently to the rule-based result.
package nlu

import (
	"context"

	"github.com/finsight-dev/finsight/internal/model"
)

// Result is the classification contract the external service fills in.
type Result struct {
	Intent             string            `json:"intent"`
	Confidence         float64           `json:"confidence"`
	Entities           map[string]string `json:"entities"`
	NeedsClarification bool              `json:"needs_clarification"`
	SuggestedQuery     string            `json:"suggested_query"`
}

// Classifier classifies a query against an intent taxonomy. Implementations
// must honor ctx cancellation and bound their own I/O.
type Classifier interface {
	Classify(ctx context.Context, query string, taxonomy []model.IntentCategory) (*Result, error)
}
