package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MarinusJvRe/TrophyVault/cli/internal/api"
)

// Out is where every printer writes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// JSON prints v as indented JSON.
func JSON(v interface{}) {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
}

// TrophyTable prints trophies newest first, featured ones starred.
func TrophyTable(trophies []api.Trophy) {
	if len(trophies) == 0 {
		fmt.Fprintln(Out, "No trophies yet.")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "\tSPECIES\tNAME\tSCORE\tMETHOD\tLOCATION\tDATE\tID")
	for _, tr := range trophies {
		star := ""
		if tr.Featured {
			star = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			star, tr.Species, tr.Name, orDash(tr.Score), tr.Method, tr.Location, tr.Date, tr.ID)
	}
	w.Flush()
}

func WeaponTable(weapons []api.Weapon) {
	if len(weapons) == 0 {
		fmt.Fprintln(Out, "No weapons yet.")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "NAME\tTYPE\tCALIBER\tOPTIC\tADDED\tID")
	for _, wp := range weapons {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			wp.Name, wp.Type, orDash(wp.Caliber), orDash(wp.Optic), RelativeTime(wp.CreatedAt), wp.ID)
	}
	w.Flush()
}

func StatsView(s api.Stats) {
	w := newTable()
	fmt.Fprintf(w, "Hunts:\t%d\n", s.TotalHunts)
	fmt.Fprintf(w, "Scored trophies:\t%d\n", s.TotalTrophies)
	fmt.Fprintf(w, "Species:\t%d\n", s.SpeciesCollected)
	fmt.Fprintf(w, "Latest species:\t%s\n", orDash(s.RecentSpecies))
	fmt.Fprintf(w, "Room rating:\t%s\n", RoomRating(s.RoomRating, s.RoomRatingSource, s.RoomRatingCount))
	w.Flush()
}

// RoomRating renders a dashboard rating, e.g. "4.25 (12 votes)" or
// "2.10 (auto)".
func RoomRating(value *float64, source *string, count int64) string {
	if value == nil {
		return "-"
	}
	if source != nil && *source == "community" {
		return fmt.Sprintf("%.2f (%s)", *value, plural(count, "vote"))
	}
	return fmt.Sprintf("%.2f (auto)", *value)
}

func RatingView(r api.RatingSummary) {
	if r.TotalRatings == 0 {
		fmt.Fprintln(Out, "No community ratings yet.")
		return
	}
	fmt.Fprintf(Out, "%.2f / 5 from %s\n", r.AvgScore, plural(r.TotalRatings, "vote"))
}

func RoomTable(rooms []api.PublicRoom) {
	if len(rooms) == 0 {
		fmt.Fprintln(Out, "No public rooms yet.")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "HUNTER\tTHEME\tTROPHIES\tRATING\tUSER ID")
	for _, r := range rooms {
		rating := "-"
		if r.TotalRatings > 0 {
			rating = fmt.Sprintf("%.2f (%d)", r.AvgScore, r.TotalRatings)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", fullName(r.FirstName, r.LastName), r.Theme, r.TrophyCount, rating, r.UserID)
	}
	w.Flush()
}

// PreferencesView prints saved preferences; nil means the user never saved any.
func PreferencesView(p *api.Preferences) {
	if p == nil {
		fmt.Fprintln(Out, "No preferences saved yet. Defaults apply.")
		return
	}

	w := newTable()
	fmt.Fprintf(w, "Theme:\t%s\n", p.Theme)
	fmt.Fprintf(w, "Visibility:\t%s\n", p.RoomVisibility)
	fmt.Fprintf(w, "Units:\t%s\n", p.Units)
	fmt.Fprintf(w, "Scoring:\t%s\n", p.ScoringSystem)
	fmt.Fprintf(w, "Pursuit:\t%s\n", orDash(p.Pursuit))
	locations := "-"
	if len(p.HuntingLocations) > 0 {
		locations = strings.Join(p.HuntingLocations, ", ")
	}
	fmt.Fprintf(w, "Locations:\t%s\n", locations)
	fmt.Fprintf(w, "Avatar:\t%s\n", orDash(p.ProfileImageURL))
	w.Flush()
}

// UserInfo prints the account and, when preferences exist, the room status.
func UserInfo(u api.User, prefs *api.Preferences) {
	w := newTable()
	fmt.Fprintf(w, "Name:\t%s\n", fullName(&u.FirstName, &u.LastName))
	if u.Email != "" {
		fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	}
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	fmt.Fprintf(w, "Member since:\t%s\n", u.CreatedAt.Format("2006-01-02"))
	room := "not set up (run: trophyvault prefs set)"
	if prefs != nil {
		room = prefs.RoomVisibility + ", " + prefs.Theme + " theme"
	}
	fmt.Fprintf(w, "Room:\t%s\n", room)
	w.Flush()
}

// VersionInfo prints the CLI version and, when reachable, the server's.
func VersionInfo(cliVersion string, server *api.VersionInfo) {
	fmt.Fprintf(Out, "trophyvault %s (api %s)\n", cliVersion, api.APIVersion)
	if server == nil {
		fmt.Fprintln(Out, "server: unreachable")
		return
	}
	fmt.Fprintf(Out, "server %s (api %s), sign-in: %s\n", server.Version, server.APIVersion, server.Login)
	if !server.Compatible() {
		fmt.Fprintf(Out, "warning: server speaks api %s, some commands may fail\n", server.APIVersion)
	}
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func orDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}

func fullName(first, last *string) string {
	var parts []string
	for _, p := range []*string{first, last} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return "Anonymous"
	}
	return strings.Join(parts, " ")
}

func plural(n int64, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
