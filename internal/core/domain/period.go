package domain

import (
	"errors"
	"fmt"
	"time"
)

// PeriodStatus is the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodNotStarted PeriodStatus = "NOT_STARTED"
	PeriodOpen       PeriodStatus = "OPEN"
	PeriodSoftClosed PeriodStatus = "SOFT_CLOSED" // Adjustments only; may be reopened
	PeriodHardClosed PeriodStatus = "HARD_CLOSED" // Immutable, terminal
)

var (
	ErrPeriodNotOpenable = errors.New("period cannot be opened from its current status")
	ErrPeriodNotClosable = errors.New("period cannot be closed from its current status")
)

// AccountingPeriod is a time slice of a fiscal year gating postability.
type AccountingPeriod struct {
	Number    int          `json:"number"` // 1-based sequence within the fiscal year
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	ClosedBy  string       `json:"closedBy"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty"`
}

// CanPost reports whether entries may be posted into this period.
func (p AccountingPeriod) CanPost() bool {
	return p.Status == PeriodOpen || p.Status == PeriodSoftClosed
}

// Contains reports whether the given date falls within the period (inclusive,
// at day granularity).
func (p AccountingPeriod) Contains(date time.Time) bool {
	return dateWithin(date, p.StartDate, p.EndDate)
}

// Open transitions the period to Open. Allowed from NotStarted and from
// SoftClosed (reopening for correction before a hard close). HardClosed is
// terminal.
func (p AccountingPeriod) Open() (AccountingPeriod, error) {
	if p.Status != PeriodNotStarted && p.Status != PeriodSoftClosed {
		return AccountingPeriod{}, fmt.Errorf("%w: period %d is %s", ErrPeriodNotOpenable, p.Number, p.Status)
	}
	updated := p
	updated.Status = PeriodOpen
	updated.ClosedBy = ""
	updated.ClosedAt = nil
	return updated, nil
}

// Close records who closed the period and when, producing either a SoftClosed
// or HardClosed period. An Open period may close either way; a SoftClosed
// period may only be hardened.
func (p AccountingPeriod) Close(by string, at time.Time, hard bool) (AccountingPeriod, error) {
	switch p.Status {
	case PeriodOpen:
		// soft or hard
	case PeriodSoftClosed:
		if !hard {
			return AccountingPeriod{}, fmt.Errorf("%w: period %d is already soft closed", ErrPeriodNotClosable, p.Number)
		}
	default:
		return AccountingPeriod{}, fmt.Errorf("%w: period %d is %s", ErrPeriodNotClosable, p.Number, p.Status)
	}
	updated := p
	if hard {
		updated.Status = PeriodHardClosed
	} else {
		updated.Status = PeriodSoftClosed
	}
	updated.ClosedBy = by
	closedAt := at
	updated.ClosedAt = &closedAt
	return updated, nil
}
