package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/finsight-dev/finsight/internal/engine"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/settle"
)

// printResponse renders a structured engine response for the terminal.
func printResponse(resp engine.Response) {
	if resp.Intent.NeedsClarification && resp.Intent.Clarification != nil {
		c := resp.Intent.Clarification
		fmt.Println(c.Question)
		for i, opt := range c.Options {
			fmt.Printf("  %d. %s (%q)\n", i+1, opt.Label, opt.RefinedQuery)
		}
		return
	}

	fmt.Printf("intent: %s (%.2f, %s)  analysis: %s\n",
		resp.Intent.Category, resp.Intent.Confidence, resp.Intent.Source, resp.Category)
	if resp.Skipped > 0 {
		fmt.Printf("note: %d malformed records were excluded\n", resp.Skipped)
	}

	switch {
	case resp.Summary != nil:
		fmt.Printf("income: %s  expense: %s  net: %s  (%d transactions)\n",
			resp.Summary.Income.StringFixed(2), resp.Summary.Expense.StringFixed(2),
			resp.Summary.Net.StringFixed(2), resp.Summary.Transactions)
	case resp.Breakdown != nil:
		w := newTabWriter()
		for _, ct := range resp.Breakdown {
			fmt.Fprintf(w, "%s\t%s\t(%d)\n", ct.Category, ct.Total.StringFixed(2), ct.Count)
		}
		w.Flush()
	case resp.Monthly != nil:
		w := newTabWriter()
		for _, mt := range resp.Monthly {
			fmt.Fprintf(w, "%s\tin %s\tout %s\n", mt.Month, mt.Income.StringFixed(2), mt.Expense.StringFixed(2))
		}
		w.Flush()
	case resp.Comparison != nil:
		c := resp.Comparison
		fmt.Printf("%s vs %s: income delta %s, expense delta %s\n",
			c.Current.Month, c.Previous.Month,
			c.IncomeDelta.StringFixed(2), c.ExpenseDelta.StringFixed(2))
	case resp.Transactions != nil:
		w := newTabWriter()
		for _, t := range resp.Transactions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				t.Date.Format("2006-01-02"), t.Description, t.Direction, t.Amount.StringFixed(2))
		}
		w.Flush()
	case resp.Anomalies != nil:
		printAnomalies(resp.Anomalies)
	case resp.Category == model.AnalyticTrendAnalysis, resp.Category == model.AnalyticPrediction:
		printForecast(resp.Forecast)
	case resp.Category == model.AnalyticGreeting:
		fmt.Println("Hello! Ask me about your spending, income, settlements, or trends.")
	default:
		fmt.Println("I could not find anything to compute for that; try rephrasing.")
	}

	if resp.Plan != nil {
		printPlan(*resp.Plan)
	}
}

func printPlan(plan settle.Plan) {
	if len(plan.Settlements) == 0 {
		fmt.Println("everyone is settled up")
		return
	}
	w := newTabWriter()
	for _, s := range plan.Settlements {
		fmt.Fprintf(w, "%s\t->\t%s\t%s\n", s.From, s.To, s.Amount.StringFixed(2))
	}
	w.Flush()
	fmt.Printf("total to move: %s\n", plan.Total.StringFixed(2))
}

func printAnomalies(anomalies []model.Anomaly) {
	if len(anomalies) == 0 {
		fmt.Println("no anomalies found")
		return
	}
	w := newTabWriter()
	for _, a := range anomalies {
		fmt.Fprintf(w, "%s\t%s\t%sx baseline\t%s\n",
			a.Description, a.ObservedAmount.StringFixed(2),
			a.DeviationRatio.StringFixed(1), a.Severity)
	}
	w.Flush()
}

func printForecast(f *model.ForecastSeries) {
	if f == nil {
		fmt.Println("not enough history to forecast (need at least 3 days)")
		return
	}
	fmt.Printf("next %d days: income trending %s, expense trending %s\n",
		f.HorizonDays, f.IncomeTrend, f.ExpenseTrend)
	last := len(f.ProjectedDates) - 1
	fmt.Printf("projected by %s: income %s/day, expense %s/day\n",
		f.ProjectedDates[last].Format("2006-01-02"),
		f.ProjectedIncome[last].StringFixed(2),
		f.ProjectedExpense[last].StringFixed(2))
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
