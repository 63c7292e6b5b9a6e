// Package report derives spending summaries from the transaction store.
// Everything here is a pure view: the same aggregate feeds both the
// proportional and the magnitude rendering, so their totals always agree.
package report

import (
	"time"

	"bossfinance/internal/core"
)

// TopCategoryLimit is how many categories are shown individually before
// the long tail folds into the Other bucket.
const TopCategoryLimit = 5

// OtherCategory is the synthetic bucket for folded categories.
const OtherCategory = "Other"

// SpendingReader is the slice of the transaction store the aggregator
// needs.
type SpendingReader interface {
	CategorySpending(start, end time.Time) []core.CategoryAmount
}

type Aggregator struct {
	reader SpendingReader
}

func NewAggregator(reader SpendingReader) *Aggregator {
	return &Aggregator{reader: reader}
}

// MonthOverview sums expenses for one calendar month, per category and
// in total.
func (a *Aggregator) MonthOverview(year int, month time.Month) core.MonthOverview {
	start, end := core.MonthRange(year, month)
	byCategory := a.reader.CategorySpending(start, end)

	overview := core.MonthOverview{
		Year:       year,
		Month:      int(month),
		ByCategory: byCategory,
	}
	for _, ca := range byCategory {
		overview.Total = overview.Total.Add(ca.Amount)
	}
	return overview
}

// TopCategories returns the month's category spending with long-tail
// bucketing: the top limit categories stay individual and the rest fold
// into Other, which appears only when its folded sum is positive.
func (a *Aggregator) TopCategories(year int, month time.Month, limit int) []core.CategoryAmount {
	if limit <= 0 {
		limit = TopCategoryLimit
	}
	start, end := core.MonthRange(year, month)
	return BucketLongTail(a.reader.CategorySpending(start, end), limit)
}

// BucketLongTail folds everything past the first limit entries of an
// amount-descending list into a trailing Other bucket.
func BucketLongTail(sorted []core.CategoryAmount, limit int) []core.CategoryAmount {
	if len(sorted) <= limit {
		return append([]core.CategoryAmount(nil), sorted...)
	}

	out := append([]core.CategoryAmount(nil), sorted[:limit]...)
	var other core.Money
	for _, ca := range sorted[limit:] {
		other = other.Add(ca.Amount)
	}
	if other.Cents > 0 {
		out = append(out, core.CategoryAmount{Name: OtherCategory, Amount: other})
	}
	return out
}
