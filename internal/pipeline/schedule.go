// Package pipeline contains the per-entity cleaning steps layered on top of
// the recordset transforms: derived fields, provenance stamping, and the
// team-subset filter.
package pipeline

import (
	"regexp"
	"strings"

	"grizstats/internal/recordset"
)

// Location classifications derived from opponent or site-flag text.
const (
	LocationHome    = "home"
	LocationAway    = "away"
	LocationNeutral = "neutral"
)

// LocationFromOpponent classifies a game from its opponent text. A leading
// "@" marks an away game and a leading "vs" marks a neutral site; anything
// else is a home game.
func LocationFromOpponent(v any) string {
	s := strings.TrimSpace(recordset.AsString(v))

	switch {
	case strings.HasPrefix(s, "@"):
		return LocationAway
	case strings.HasPrefix(s, "vs"):
		return LocationNeutral
	default:
		return LocationHome
	}
}

// CleanOpponent strips the leading "@" or "vs" token and surrounding
// whitespace from opponent text. Null stays null.
func CleanOpponent(v any) any {
	if v == nil {
		return nil
	}

	s := strings.TrimSpace(recordset.AsString(v))

	switch {
	case strings.HasPrefix(s, "@"):
		s = strings.TrimPrefix(s, "@")
	case strings.HasPrefix(s, "vs"):
		s = strings.TrimPrefix(s, "vs")
	}

	return strings.TrimSpace(s)
}

// LocationFromSiteFlag classifies a game from the export's site-flag column:
// "@" is away, "N" is neutral, blank or anything else is home.
func LocationFromSiteFlag(v any) string {
	s := strings.ToUpper(strings.TrimSpace(recordset.AsString(v)))

	switch s {
	case "@":
		return LocationAway
	case "N":
		return LocationNeutral
	default:
		return LocationHome
	}
}

// ParseResult splits a result string such as "W 78-72" or "L 82-79 (OT)"
// into the two scores, own score first. Both scores are nil when the text
// does not match that shape.
func ParseResult(v any) (pointsFor, pointsAgainst any) {
	s := recordset.AsString(v)

	parts := strings.Fields(s)
	if len(parts) < 2 || !strings.Contains(parts[1], "-") {
		return nil, nil
	}

	scores := strings.Split(parts[1], "-")
	if len(scores) != 2 {
		return nil, nil
	}

	pf := recordset.ToNumber(scores[0])
	pa := recordset.ToNumber(scores[1])

	if pf == nil || pa == nil {
		return nil, nil
	}

	return pf, pa
}

// overtimePattern matches the overtime marker with any multiplier, so
// "(OT)", "(2OT)" and "(3OT)" all count.
var overtimePattern = regexp.MustCompile(`\(\d*OT`)

// OvertimeFromResult reports whether result text carries an overtime marker.
func OvertimeFromResult(v any) bool {
	return overtimePattern.MatchString(recordset.AsString(v))
}

// OvertimeFromText reports whether an overtime-text column is present and
// non-blank for the row.
func OvertimeFromText(v any) bool {
	return strings.TrimSpace(recordset.AsString(v)) != ""
}

// scheduleScrapeColumns are the Sports-Reference schedule columns worth
// keeping, in output order, before renaming.
var scheduleScrapeColumns = []string{"g", "date", "opponent", "w/l", "result"}

// ProcessScrapedSchedule cleans a schedule table scraped from the
// Sports-Reference schedule page and derives location, scores and the
// overtime flag from the opponent and result text.
func ProcessScrapedSchedule(rs *recordset.RecordSet, season int, sourceURL string, stamp Stamp) *recordset.RecordSet {
	out := rs.Canonicalize().
		DropHeaderEchoes("date").
		Keep(scheduleScrapeColumns...).
		Rename(map[string]string{
			"g":   "game_number",
			"w/l": "win_loss",
		}).
		CoerceDate("date")

	location := out.Apply("location_type", func(row recordset.Row) any {
		return LocationFromOpponent(row["opponent"])
	})

	cleaned := location.Apply("opponent", func(row recordset.Row) any {
		return CleanOpponent(row["opponent"])
	})

	scored := cleaned.Apply("points_for", func(row recordset.Row) any {
		pf, _ := ParseResult(row["result"])

		return pf
	}).Apply("points_against", func(row recordset.Row) any {
		_, pa := ParseResult(row["result"])

		return pa
	}).Apply("overtime_flag", func(row recordset.Row) any {
		return OvertimeFromResult(row["result"])
	})

	return scored.InsertConst(0, "season", int64(season)).
		AppendConst("source_url", sourceURL).
		AppendConst("scraped_at", stamp.UTC)
}

// scheduleExportRenames maps the raw Sports-Reference CSV export labels to
// canonical names. The export carries two unnamed columns: the site flag and
// the win/loss letter.
var scheduleExportRenames = map[string]string{
	"g":          "game_number",
	"w/l":        "win_loss",
	"tm":         "team_points",
	"opp":        "opponent_points",
	"conf":       "opponent_conference",
	"ot":         "overtime_text",
	"unnamed:_4": "site_flag",
	"unnamed:_8": "result_wl",
}

// scheduleExportNumeric lists the export columns coerced to numbers.
var scheduleExportNumeric = []string{"game_number", "srs", "team_points", "opponent_points", "w", "l"}

// ProcessScheduleExport cleans a manually exported schedule CSV and derives
// location from the site flag and the overtime flag from the overtime text.
func ProcessScheduleExport(rs *recordset.RecordSet, season int, sourceFile string, stamp Stamp) *recordset.RecordSet {
	out := rs.Canonicalize().
		Rename(scheduleExportRenames).
		CoerceDate("date").
		CoerceNumeric(scheduleExportNumeric...)

	out = out.Apply("location_type", func(row recordset.Row) any {
		return LocationFromSiteFlag(row["site_flag"])
	})

	out = out.Apply("overtime_flag", func(row recordset.Row) any {
		return OvertimeFromText(row["overtime_text"])
	})

	return out.InsertConst(0, "season", int64(season)).
		AppendConst("source_file", sourceFile).
		AppendConst("processed_at_utc", stamp.UTC).
		AppendConst("processed_at_local", stamp.Local)
}
