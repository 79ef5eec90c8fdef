package report

import (
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

const (
	DateLayout = "2006-01-02"

	// MaxRangeDays caps a revenue query at one (leap) year of days.
	MaxRangeDays = 366
)

type DailySalesParams struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type DailySalesQuery struct {
	date time.Time
}

func NewDailySalesQuery(p DailySalesParams) (DailySalesQuery, error) {
	if err := validate.Struct(failure.ModuleReport, p); err != nil {
		return DailySalesQuery{}, err
	}
	d, _ := time.Parse(DateLayout, p.Date)
	return DailySalesQuery{date: d}, nil
}

// Date is midnight UTC of the requested day.
func (q DailySalesQuery) Date() time.Time { return q.date }

type RevenueRangeParams struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

// RevenueRangeQuery covers every day from From to To, both inclusive.
type RevenueRangeQuery struct {
	from time.Time
	to   time.Time
}

func NewRevenueRangeQuery(p RevenueRangeParams) (RevenueRangeQuery, error) {
	if err := validate.Struct(failure.ModuleReport, p); err != nil {
		return RevenueRangeQuery{}, err
	}
	from, _ := time.Parse(DateLayout, p.From)
	to, _ := time.Parse(DateLayout, p.To)
	if to.Before(from) {
		return RevenueRangeQuery{}, failure.Validation(failure.ModuleReport, "to: must not be before from")
	}
	if days(from, to) > MaxRangeDays {
		return RevenueRangeQuery{}, failure.Validation(failure.ModuleReport, "to: range exceeds 366 days")
	}
	return RevenueRangeQuery{from: from, to: to}, nil
}

func (q RevenueRangeQuery) From() time.Time { return q.from }
func (q RevenueRangeQuery) To() time.Time   { return q.to }
func (q RevenueRangeQuery) Days() int       { return days(q.from, q.to) }

func days(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}
