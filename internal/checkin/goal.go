package checkin

import (
	"fmt"
	"strings"
)

// Leaders returns the highest team count and every team holding it, in
// registry order.
func Leaders(counts TeamCounts) (int, []Team) {
	best := max(counts.Water, counts.Zero, counts.Power)

	var leaders []Team
	for _, t := range Teams {
		if n, _ := counts.Get(t.Key); n == best {
			leaders = append(leaders, t)
		}
	}
	return best, leaders
}

// CelebrationText names the leading team, or every tied team.
func CelebrationText(counts TeamCounts) string {
	best, leaders := Leaders(counts)
	if len(leaders) == 1 {
		return fmt.Sprintf("🎉 Goal reached! %s leads with %d %s!",
			leaders[0].Label, best, plural(best, "attendee", "attendees"))
	}

	labels := make([]string, len(leaders))
	for i, t := range leaders {
		labels[i] = t.Label
	}
	return fmt.Sprintf("🎉 Goal reached! It's a tie between %s (%d each)!",
		strings.Join(labels, " and "), best)
}

// GoalReached reports whether st has reached goal without being celebrated.
func GoalReached(st State, goal int) bool {
	return st.Total >= goal && !st.GoalCelebrated
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
