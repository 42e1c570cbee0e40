package checkin

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	DefaultGreetingTTL    = 4 * time.Second
	DefaultCelebrationTTL = 6 * time.Second

	rosterHeader      = "Attendee List"
	rosterPlaceholder = "No attendees checked in yet."
	unknownTeamGlyph  = "—"
	greetingFallback  = "the event"
)

// View is everything the presentation layer shows.
type View struct {
	Counters    Counters   `json:"counters"`
	Roster      Roster     `json:"roster"`
	Greeting    NoticeView `json:"greeting"`
	Celebration NoticeView `json:"celebration"`
	Form        Form       `json:"form"`
}

// Form carries the values the check-in inputs should show.
type Form struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

type Counters struct {
	Total    int         `json:"total"`
	Goal     int         `json:"goal"`
	Teams    []TeamCount `json:"teams"`
	Progress Progress    `json:"progress"`
}

type TeamCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Progress describes the progress bar and its accessibility attributes.
type Progress struct {
	Percent   float64 `json:"percent"`
	Width     string  `json:"width"`
	Role      string  `json:"role"`
	AriaLabel string  `json:"ariaLabel"`
	ValueNow  int     `json:"ariaValueNow"`
	Title     string  `json:"title"`
}

type Roster struct {
	Header      string      `json:"header"`
	Placeholder string      `json:"placeholder,omitempty"`
	Rows        []RosterRow `json:"rows"`
}

type RosterRow struct {
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	TeamLabel string    `json:"teamLabel"`
	At        time.Time `json:"at"`
	Ago       string    `json:"ago"`
}

// Renderer projects state onto a View. Counters and roster are rebuilt from
// scratch on every call; greeting and celebration are transient notices.
type Renderer struct {
	greeting    *notice
	celebration *notice
	now         func() time.Time
}

func NewRenderer(greetingTTL, celebrationTTL time.Duration, now func() time.Time) *Renderer {
	if greetingTTL <= 0 {
		greetingTTL = DefaultGreetingTTL
	}
	if celebrationTTL <= 0 {
		celebrationTTL = DefaultCelebrationTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		greeting:    newNotice(greetingTTL),
		celebration: newNotice(celebrationTTL),
		now:         now,
	}
}

// Render builds the full view for st.
func (r *Renderer) Render(st State, goal int, form Form) View {
	return View{
		Counters:    r.RenderCounters(st, goal),
		Roster:      r.RenderRoster(st),
		Greeting:    r.greeting.view(),
		Celebration: r.celebration.view(),
		Form:        form,
	}
}

func (r *Renderer) RenderCounters(st State, goal int) Counters {
	teams := make([]TeamCount, 0, len(Teams))
	for _, t := range Teams {
		n, _ := st.Teams.Get(t.Key)
		teams = append(teams, TeamCount{Key: t.Key, Label: t.Label, Count: n})
	}

	pct := 100.0
	if goal > 0 {
		pct = math.Min(float64(st.Total)/float64(goal)*100, 100)
	}
	rounded := int(math.Round(pct))

	return Counters{
		Total: st.Total,
		Goal:  goal,
		Teams: teams,
		Progress: Progress{
			Percent:   pct,
			Width:     strconv.FormatFloat(pct, 'f', -1, 64) + "%",
			Role:      "progressbar",
			AriaLabel: "Attendance progress",
			ValueNow:  rounded,
			Title:     fmt.Sprintf("%d%% of goal reached", rounded),
		},
	}
}

func (r *Renderer) RenderRoster(st State) Roster {
	roster := Roster{Header: rosterHeader, Rows: []RosterRow{}}
	if len(st.Attendees) == 0 {
		roster.Placeholder = rosterPlaceholder
		return roster
	}

	now := r.now()
	for _, a := range st.Attendees {
		at := a.CheckedInAt()
		roster.Rows = append(roster.Rows, RosterRow{
			Name:      a.Name,
			Team:      a.Team,
			TeamLabel: TeamLabel(a.Team, unknownTeamGlyph),
			At:        at,
			Ago:       humanize.RelTime(at, now, "ago", "from now"),
		})
	}
	return roster
}

// ShowGreeting welcomes name and replaces any pending greeting.
func (r *Renderer) ShowGreeting(name, team string) {
	label := TeamLabel(team, greetingFallback)
	r.greeting.show(fmt.Sprintf("Welcome, %s! Thanks for checking in with %s.", name, label))
}

// ShowCelebration shows the goal banner and replaces any pending one.
func (r *Renderer) ShowCelebration(text string) {
	r.celebration.show(text)
}

// DismissCelebration hides the banner and reports whether it was showing.
func (r *Renderer) DismissCelebration() bool {
	return r.celebration.dismiss()
}

// OnNoticeHidden registers fn to run whenever a notice hides itself.
func (r *Renderer) OnNoticeHidden(fn func()) {
	r.greeting.setOnHide(fn)
	r.celebration.setOnHide(fn)
}
