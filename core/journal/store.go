// Package journal keeps a local append-only log of accepted schedule
// submissions. It is an operational audit trail, not the system of record:
// the persistence collaborator owns the schedules themselves.
package journal

import (
	"context"
	"time"
)

// Entry captures one accepted submission.
type Entry struct {
	Timestamp       time.Time `json:"timestamp"`
	ScheduleID      int64     `json:"schedule_id"`
	CompanyID       int64     `json:"company_id"`
	UF              string    `json:"uf"`
	ScheduleDate    string    `json:"schedule_date"`
	TotalVehicles   int       `json:"total_vehicles"`
	TotalCapacityKg int       `json:"total_capacity_kg"`
}

// Query defines filters for retrieving entries.
type Query struct {
	Start     time.Time
	End       time.Time
	CompanyID int64
}

func (q Query) matches(e Entry) bool {
	if !q.Start.IsZero() && e.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && e.Timestamp.After(q.End) {
		return false
	}
	if q.CompanyID != 0 && e.CompanyID != q.CompanyID {
		return false
	}
	return true
}

// Store persists journal entries and supports querying.
type Store interface {
	Append(ctx context.Context, e Entry) error
	Query(ctx context.Context, q Query) ([]Entry, error)
	Close() error
}
