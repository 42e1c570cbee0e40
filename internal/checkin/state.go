package checkin

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Attendee is one check-in. Records are never edited or removed.
type Attendee struct {
	Name string `json:"name"`
	Team string `json:"team"`
	TS   int64  `json:"ts"` // milliseconds since epoch
}

// CheckedInAt returns the check-in time.
func (a Attendee) CheckedInAt() time.Time {
	return time.UnixMilli(a.TS)
}

// TeamCounts holds one bucket per registered team.
type TeamCounts struct {
	Water int `json:"water"`
	Zero  int `json:"zero"`
	Power int `json:"power"`
}

// Get returns the count for key and whether key names a bucket.
func (c TeamCounts) Get(key string) (int, bool) {
	switch key {
	case TeamWater:
		return c.Water, true
	case TeamZero:
		return c.Zero, true
	case TeamPower:
		return c.Power, true
	}
	return 0, false
}

func (c *TeamCounts) inc(key string) {
	switch key {
	case TeamWater:
		c.Water++
	case TeamZero:
		c.Zero++
	case TeamPower:
		c.Power++
	}
}

// Sum returns the total across all buckets.
func (c TeamCounts) Sum() int {
	return c.Water + c.Zero + c.Power
}

// State is the durable attendance record.
type State struct {
	Total          int        `json:"total"`
	Teams          TeamCounts `json:"teams"`
	Attendees      []Attendee `json:"attendees"`
	GoalCelebrated bool       `json:"goalCelebrated"`
}

// DefaultState returns the zero-attendance state.
func DefaultState() State {
	return State{Attendees: []Attendee{}}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	out := s
	out.Attendees = slices.Clone(s.Attendees)
	if out.Attendees == nil {
		out.Attendees = []Attendee{}
	}
	return out
}

// WithAttendee returns the state after one check-in. An unrecognized team
// counts toward Total but toward no bucket.
func (s State) WithAttendee(name, team string, at time.Time) State {
	out := s.Clone()
	out.Total++
	out.Teams.inc(team)
	out.Attendees = append(out.Attendees, Attendee{
		Name: name,
		Team: team,
		TS:   at.UnixMilli(),
	})
	return out
}

// Celebrated returns the state with the goal latch set.
func (s State) Celebrated() State {
	out := s.Clone()
	out.GoalCelebrated = true
	return out
}

// Encode serializes the full state.
func (s State) Encode() ([]byte, error) {
	if s.Attendees == nil {
		s.Attendees = []Attendee{}
	}
	return json.Marshal(s)
}

// DecodeState parses a persisted record, coercing malformed fields to their
// defaults. It fails only when data is not a JSON object at all.
func DecodeState(data []byte) (State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultState(), err
	}
	if raw == nil {
		return DefaultState(), errNotObject
	}

	st := DefaultState()
	st.Total = coerceCount(raw["total"])

	var teams map[string]json.RawMessage
	if json.Unmarshal(raw["teams"], &teams) == nil {
		st.Teams = TeamCounts{
			Water: coerceCount(teams[TeamWater]),
			Zero:  coerceCount(teams[TeamZero]),
			Power: coerceCount(teams[TeamPower]),
		}
	}

	var list []json.RawMessage
	if json.Unmarshal(raw["attendees"], &list) == nil {
		for _, item := range list {
			if a, ok := decodeAttendee(item); ok {
				st.Attendees = append(st.Attendees, a)
			}
		}
	}

	st.GoalCelebrated = truthy(raw["goalCelebrated"])
	return st, nil
}

func decodeAttendee(item json.RawMessage) (Attendee, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return Attendee{}, false
	}
	return Attendee{
		Name: coerceString(fields["name"]),
		Team: coerceString(fields["team"]),
		TS:   int64(coerceNumber(fields["ts"])),
	}, true
}

// coerceNumber follows loose numeric conversion: numbers pass through,
// numeric strings parse, true is 1, anything else is 0.
func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0
		}
		return f
	case bool:
		if x {
			return 1
		}
	}
	return 0
}

// maxCount bounds counts to integers float64 represents exactly.
const maxCount = 1 << 53

func coerceCount(raw json.RawMessage) int {
	f := math.Trunc(coerceNumber(raw))
	if f < 0 || f > maxCount {
		return 0
	}
	return int(f)
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case nil:
		return false
	}
	return true
}
