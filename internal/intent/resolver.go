package intent

import (
	"context"
	"strings"

	"github.com/finsight-dev/finsight/internal/logger"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/nlu"
)

// Confidence thresholds for the resolution pipeline.
const (
	// confidentScore accepts a rule match outright.
	confidentScore = 0.7
	// weakScore marks a rule match as needing clarification and makes it
	// eligible for external NLU escalation.
	weakScore = 0.5
	// nluAcceptScore is the minimum external NLU confidence we trust.
	nluAcceptScore = 0.6
	// ambiguousTokenLimit is the token count at or below which a query is
	// considered under-specified.
	ambiguousTokenLimit = 2
)

// Resolver classifies free-text queries into conversational intents. It is
// pure computation over the static pattern tables except for the optional
// external NLU escalation, which is bounded and best-effort.
type Resolver struct {
	nlu nlu.Classifier // nil when no external NLU is configured
}

// NewResolver creates a Resolver. classifier may be nil to disable the
// external NLU escalation.
func NewResolver(classifier nlu.Classifier) *Resolver {
	return &Resolver{nlu: classifier}
}

// Resolve maps a query to an Intent. It never returns an error: every
// failure mode degrades to a rule-based or unknown result.
func (r *Resolver) Resolve(ctx context.Context, query string) model.Intent {
	normalized := normalize(query)
	tokens := strings.Fields(normalized)

	// Ambiguity gate. This precedes scoring: an under-specified query gets
	// a clarification prompt even when a pattern would match it.
	if len(tokens) <= ambiguousTokenLimit || isTriggerWord(normalized) {
		return gated(normalized, tokens)
	}

	best, matched, score := scoreAll(normalized, tokens)

	if score >= confidentScore {
		return model.Intent{
			Category:       best,
			Confidence:     score,
			MatchedKeyword: matched,
			Source:         model.SourceRules,
		}
	}

	if score < weakScore && r.nlu != nil {
		if res := r.escalate(ctx, query); res != nil {
			return *res
		}
	}

	if score > 0 {
		return model.Intent{
			Category:           best,
			Confidence:         score,
			NeedsClarification: score < weakScore,
			MatchedKeyword:     matched,
			Source:             model.SourceRules,
		}
	}

	return model.Intent{
		Category:           model.IntentUnknown,
		NeedsClarification: true,
		Source:             model.SourceRules,
	}
}

// gated builds the short-circuit result for an under-specified query,
// attaching the clarification payload when the registry has one.
func gated(normalized string, tokens []string) model.Intent {
	out := model.Intent{
		Category:           model.IntentUnknown,
		NeedsClarification: true,
		Source:             model.SourceRules,
	}

	if c, ok := Clarify(normalized); ok {
		out.MatchedKeyword = normalized
		out.Clarification = &c
		return out
	}
	for _, tok := range tokens {
		if c, ok := Clarify(tok); ok {
			out.MatchedKeyword = tok
			out.Clarification = &c
			return out
		}
	}
	return out
}

// escalate asks the external NLU service to classify the query. Any failure
// is logged and swallowed; the caller falls back to the rule result.
func (r *Resolver) escalate(ctx context.Context, query string) *model.Intent {
	log := logger.FromContext(ctx)

	res, err := r.nlu.Classify(ctx, query, Taxonomy())
	if err != nil {
		log.Warn().Err(err).Msg("external nlu unavailable, falling back to rules")
		return nil
	}
	if res.Confidence <= nluAcceptScore {
		log.Debug().Float64("confidence", res.Confidence).Msg("external nlu below acceptance threshold")
		return nil
	}
	category, ok := knownCategory(res.Intent)
	if !ok {
		log.Warn().Str("intent", res.Intent).Msg("external nlu returned unknown intent")
		return nil
	}

	return &model.Intent{
		Category:           category,
		Confidence:         res.Confidence,
		NeedsClarification: res.NeedsClarification,
		Source:             model.SourceExternalNLU,
	}
}

// scoreAll scores every intent against the query and returns the best one.
// Each intent's score is the maximum weight across its triggered patterns;
// ties keep the first-declared intent.
func scoreAll(normalized string, tokens []string) (best model.IntentCategory, matched string, score float64) {
	best = model.IntentUnknown
	for _, set := range taxonomy {
		s, m := scoreSet(set, normalized, tokens)
		if s > score {
			best, matched, score = set.intent, m, s
		}
	}
	return best, matched, score
}

func scoreSet(set patternSet, normalized string, tokens []string) (score float64, matched string) {
	for _, kw := range set.keywords {
		if strings.Contains(normalized, kw) {
			return weightKeyword, kw
		}
	}
	for _, phrase := range set.semantic {
		if strings.Contains(normalized, phrase) && weightSemantic > score {
			score, matched = weightSemantic, phrase
		}
	}
	// Token-level partial overlap against keywords. Tokens shorter than
	// three characters ("i", "my", "to") overlap everything and are skipped.
	if score < weightPartial {
		for _, kw := range set.keywords {
			for _, tok := range tokens {
				if len(tok) < 3 {
					continue
				}
				if strings.Contains(kw, tok) || strings.Contains(tok, kw) {
					return weightPartial, kw
				}
			}
		}
	}
	return score, matched
}

func isTriggerWord(normalized string) bool {
	_, ok := Clarify(normalized)
	return ok
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
