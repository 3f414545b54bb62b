// Package board exposes the dashboard read side over HTTP: aggregated
// metrics computed from the collaborator's query results, and the local
// submission journal.
package board

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/transpeq/fleetboard/connectors/clients/scheduleapi"
	"github.com/transpeq/fleetboard/core/aggregate"
	"github.com/transpeq/fleetboard/core/journal"
	coremetrics "github.com/transpeq/fleetboard/core/metrics"
	"github.com/transpeq/fleetboard/core/model"
)

// ScheduleSource fetches persisted schedules for aggregation.
type ScheduleSource interface {
	ListSchedules(ctx context.Context, f scheduleapi.ListFilter) ([]model.ScheduleRecord, error)
}

// GoalSource supplies the per-company vehicle goals.
type GoalSource interface {
	Goals() map[int64]int
}

// NewMetricsHandler returns an HTTP handler serving aggregated dashboard
// metrics via GET /api/board/metrics. Requests must include an
// Authorization header with "Bearer <token>" when token is non-empty.
func NewMetricsHandler(src ScheduleSource, goals GoalSource, sink coremetrics.Sink, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		f := scheduleapi.ListFilter{
			UF:          r.URL.Query().Get("uf"),
			ProfileName: r.URL.Query().Get("profile_name"),
		}
		if s := r.URL.Query().Get("company_id"); s != "" {
			if id, err := strconv.ParseInt(s, 10, 64); err == nil {
				f.CompanyID = id
			}
		}
		if t, ok := parseDate(r.URL.Query().Get("start_date")); ok {
			f.StartDate = t
		}
		if t, ok := parseDate(r.URL.Query().Get("end_date")); ok {
			f.EndDate = t
		}

		started := time.Now()
		records, err := src.ListSchedules(r.Context(), f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		var goalMap map[int64]int
		if goals != nil {
			goalMap = goals.Goals()
		}
		metrics := aggregate.Compute(records, goalMap)
		if rec, ok := sink.(coremetrics.BoardQueryRecorder); ok {
			_ = rec.RecordBoardQuery(coremetrics.BoardQueryEvent{
				Records:  len(records),
				Duration: time.Since(started),
				Time:     time.Now(),
			})
		}
		writeJSON(w, metrics)
	})
}

// NewJournalHandler returns an HTTP handler exposing the submission
// journal via GET /api/board/journal.
func NewJournalHandler(store journal.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !authorized(r, token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q := journal.Query{}
		if s := r.URL.Query().Get("start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.Start = t
			}
		}
		if s := r.URL.Query().Get("end"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				q.End = t
			}
		}
		if s := r.URL.Query().Get("company_id"); s != "" {
			if id, err := strconv.ParseInt(s, 10, 64); err == nil {
				q.CompanyID = id
			}
		}
		entries, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, entries)
	})
}

func authorized(r *http.Request, token string) bool {
	if token == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+token
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
