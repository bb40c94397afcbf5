package production

import (
	"sort"
	"strings"
	"time"

	"github.com/fleetops/fleet-sync/internal/domain/payload"
)

// Outcome is the aggregation result plus the row-level bookkeeping counts.
// Ignored rows are expected (retired crews, malformed dates), never errors.
type Outcome struct {
	Records  []Record
	Received int
	Ignored  int
}

// Aggregate validates the extracted rows against the team index and folds
// collisions on (team_id, date) by summing the production value. All rows are
// consumed before any bucket is finalized; summation order does not matter.
func Aggregate(rows []payload.RawRow, teamIDByName map[string]int64, normalize func(string) string) Outcome {
	outcome := Outcome{Received: len(rows)}

	buckets := make(map[Key]*Record, len(rows))
	for _, row := range rows {
		code, ok := row.TeamCode()
		if !ok {
			outcome.Ignored++
			continue
		}

		teamID, ok := teamIDByName[normalize(code)]
		if !ok {
			outcome.Ignored++
			continue
		}

		rawDate, ok := row.Date()
		if !ok {
			outcome.Ignored++
			continue
		}
		date, ok := normalizeDate(rawDate)
		if !ok {
			outcome.Ignored++
			continue
		}

		key := Key{TeamID: teamID, Date: date}
		if bucket, exists := buckets[key]; exists {
			bucket.Value += row.ProductionValue()
			continue
		}
		buckets[key] = &Record{TeamID: teamID, Date: date, Value: row.ProductionValue()}
	}

	outcome.Records = make([]Record, 0, len(buckets))
	for _, bucket := range buckets {
		outcome.Records = append(outcome.Records, *bucket)
	}
	sort.Slice(outcome.Records, func(i, j int) bool {
		if outcome.Records[i].TeamID != outcome.Records[j].TeamID {
			return outcome.Records[i].TeamID < outcome.Records[j].TeamID
		}
		return outcome.Records[i].Date < outcome.Records[j].Date
	})

	return outcome
}

// normalizeDate reduces an ISO-8601-like string to its calendar-date prefix.
// Time portions after 'T' or a space are dropped; the prefix must be a real
// calendar date.
func normalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexAny(raw, "T "); idx >= 0 {
		raw = raw[:idx]
	}

	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", false
	}

	return raw, true
}
