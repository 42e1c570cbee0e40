// Package checkin holds the attendance state, its persistence contract and
// the check-in workflow. It knows nothing about HTTP or SQL.
package checkin

// Team is a fixed team identifier with its display label.
type Team struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

const (
	TeamWater = "water"
	TeamZero  = "zero"
	TeamPower = "power"
)

// Teams is the team registry in display order. Adding a team is a code
// change, not a data migration.
var Teams = []Team{
	{Key: TeamWater, Label: "Team Water Wise"},
	{Key: TeamZero, Label: "Team Net Zero"},
	{Key: TeamPower, Label: "Team Renewables"},
}

// LookupTeam reports the registry entry for key.
func LookupTeam(key string) (Team, bool) {
	for _, t := range Teams {
		if t.Key == key {
			return t, true
		}
	}
	return Team{}, false
}

// TeamLabel returns the display label for key, or fallback when key is not
// a registered team.
func TeamLabel(key, fallback string) string {
	if t, ok := LookupTeam(key); ok {
		return t.Label
	}
	return fallback
}
