// Package anomaly flags transactions whose amounts sit far above the
// average for the set they belong to.
package anomaly

import (
	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Options controls flagging and severity thresholds.
type Options struct {
	// ThresholdMultiplier flags amounts above multiplier * baseline.
	ThresholdMultiplier decimal.Decimal
	// MediumRatio and HighRatio tier the deviation ratio into severities.
	MediumRatio decimal.Decimal
	HighRatio   decimal.Decimal
}

// DefaultOptions returns the standard thresholds: flag at 2x baseline,
// medium above 2x, high above 3x.
func DefaultOptions() Options {
	return Options{
		ThresholdMultiplier: decimal.NewFromInt(2),
		MediumRatio:         decimal.NewFromInt(2),
		HighRatio:           decimal.NewFromInt(3),
	}
}

// Detect returns the anomalies in a transaction set. The baseline is the
// mean amount over valid transactions; sets with fewer than two valid
// transactions have no meaningful baseline and yield nothing.
func Detect(txns []model.Transaction, opts Options) []model.Anomaly {
	var valid []model.Transaction
	total := decimal.Zero
	for _, t := range txns {
		if !t.Valid() {
			continue
		}
		valid = append(valid, t)
		total = total.Add(t.Amount)
	}

	if len(valid) < 2 || total.IsZero() {
		return nil
	}
	baseline := total.Div(decimal.NewFromInt(int64(len(valid))))

	var anomalies []model.Anomaly
	for _, t := range valid {
		if t.Amount.LessThanOrEqual(baseline.Mul(opts.ThresholdMultiplier)) {
			continue
		}
		ratio := t.Amount.Div(baseline)
		anomalies = append(anomalies, model.Anomaly{
			TransactionID:  t.ID,
			Description:    t.Description,
			ObservedAmount: t.Amount,
			BaselineAmount: baseline,
			DeviationRatio: ratio,
			Severity:       severity(ratio, opts),
		})
	}
	return anomalies
}

func severity(ratio decimal.Decimal, opts Options) model.Severity {
	switch {
	case ratio.GreaterThan(opts.HighRatio):
		return model.SeverityHigh
	case ratio.GreaterThan(opts.MediumRatio):
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
