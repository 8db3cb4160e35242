package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Period is an inclusive date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.From) && !d.After(p.To)
}

// QuarterOf returns the calendar quarter containing d.
func QuarterOf(d time.Time) Period {
	startMonth := time.Month(((int(d.Month())-1)/3)*3 + 1)
	from := time.Date(d.Year(), startMonth, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 3, -1)
	return Period{From: from, To: to}
}

// MonthOf returns the calendar month containing d.
func MonthOf(d time.Time) Period {
	from := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, -1)}
}

// YearOf returns the calendar year containing d.
func YearOf(d time.Time) Period {
	return Period{
		From: time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}
