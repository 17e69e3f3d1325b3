package core

import (
	"context"
	"strings"

	"saarthi/saarthi/services/intent"
	"saarthi/saarthi/services/prompt"
	"saarthi/saarthi/utils/logging"
	"saarthi/saarthi/utils/types"

	"go.uber.org/zap"
)

// Query is a stateless navigation question.
type Query struct {
	Text      string
	Location  *types.Location
	Context   *types.NavigationContext
	RuleBased bool
}

// Answer answers a Query without touching any session. It tries the one-shot
// navigation prompt first unless RuleBased is set, then the classifier.
func (o *Orchestrator) Answer(ctx context.Context, q Query) (intent.Result, error) {
	defer logging.LogDuration(ctx, "orchestrator_answer")()

	text := strings.TrimSpace(q.Text)
	if text == "" {
		return intent.Result{}, ErrEmptyUtterance
	}
	if !q.RuleBased {
		raw, err := o.generate(ctx, prompt.Navigation(text, q.Context))
		if err == nil {
			if reply := o.extractor.Clean(raw); reply != "" {
				return intent.Result{Category: CategoryGenerated, Reply: reply}, nil
			}
		}
		logging.AppLogger.Info("navigation query answered by rules", zap.Error(err))
	}
	return o.classifier.Classify(ctx, text, q.Location, q.Context), nil
}
