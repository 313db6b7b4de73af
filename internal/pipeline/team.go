package pipeline

import (
	"strings"

	"grizstats/internal/recordset"
)

// teamColumns are the labels checked, in order, for a team name when
// filtering team-level statistics. KenPom payloads use "teamname".
var teamColumns = []string{"teamname", "team_name", "team"}

// ProcessTeamStats cleans a team-level statistics payload (ratings or four
// factors): canonical labels plus provenance for the source API endpoint.
func ProcessTeamStats(rs *recordset.RecordSet, sourceName, endpoint string, stamp Stamp) *recordset.RecordSet {
	return rs.Canonicalize().
		AppendConst("source_name", sourceName).
		AppendConst("endpoint", endpoint).
		AppendConst("processed_at_utc", stamp.UTC).
		AppendConst("processed_at_local", stamp.Local)
}

// FilterTeam selects the rows whose team-name column equals team after
// trimming and lower-casing both sides. The returned set may be empty; the
// caller decides whether an empty subset is worth writing.
func FilterTeam(rs *recordset.RecordSet, team string) *recordset.RecordSet {
	target := strings.ToLower(strings.TrimSpace(team))

	column := ""

	for _, candidate := range teamColumns {
		if rs.HasColumn(candidate) {
			column = candidate

			break
		}
	}

	if column == "" {
		return recordset.New(rs.Columns...)
	}

	return rs.Filter(func(row recordset.Row) bool {
		name := strings.ToLower(strings.TrimSpace(recordset.AsString(row[column])))

		return name == target
	})
}
