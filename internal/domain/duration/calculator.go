package duration

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange reports a malformed or inverted time span. Spans that
// are merely too short resolve to zero days without error.
var ErrInvalidRange = errors.New("invalid time range")

// maxSpanDays bounds the per-day walk in Compute. Safety guard against
// malformed inputs, not a business rule.
const maxSpanDays = 366

// Request is the value object a duration is computed from.
type Request struct {
	StartDate time.Time
	StartNode Node
	EndDate   time.Time
	EndNode   Node
}

// Compute resolves a request against a policy into a fractional day
// count, rounded to the nearest half day exactly once, at the end.
//
// Same-date requests are a direct span lookup. Multi-day requests sum the
// first day (start node to end of day), one full day per whole day
// strictly between, and the last day (start of day to end node).
func Compute(req Request, p Policy) (float64, error) {
	startClock, ok := p.clock(req.StartNode)
	if !ok {
		return 0, ErrInvalidRange
	}
	endClock, ok := p.clock(req.EndNode)
	if !ok {
		return 0, ErrInvalidRange
	}

	startDay := truncateToDay(req.StartDate)
	endDay := truncateToDay(req.EndDate)

	if endDay.Before(startDay) {
		return 0, ErrInvalidRange
	}

	if startDay.Equal(endDay) {
		if endClock < startClock {
			return 0, ErrInvalidRange
		}
		return roundHalf(p.spanWeight(startClock, endClock)), nil
	}

	dayEndClock := p.nodes[p.dayEnd]
	dayStartClock := p.nodes[p.dayStart]

	var total float64
	cur := startDay
	for i := 0; ; i++ {
		if i > maxSpanDays {
			return 0, ErrInvalidRange
		}
		switch {
		case cur.Equal(startDay):
			total += p.spanWeight(startClock, dayEndClock)
		case cur.Equal(endDay):
			total += p.spanWeight(dayStartClock, endClock)
		default:
			total += 1.0
		}
		if cur.Equal(endDay) {
			break
		}
		cur = cur.AddDate(0, 0, 1)
	}

	return roundHalf(total), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func roundHalf(days float64) float64 {
	return math.Round(days*2) / 2
}
