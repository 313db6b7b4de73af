package pipeline

import (
	"regexp"
	"strings"

	"grizstats/internal/recordset"
)

var (
	punctPattern      = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// PlayerKey normalizes a display name into a join-safe token: lower-case,
// punctuation stripped, whitespace and hyphens collapsed to single
// underscores. Null name yields a null key.
func PlayerKey(v any) any {
	if v == nil {
		return nil
	}

	name := strings.ToLower(strings.TrimSpace(recordset.AsString(v)))
	name = punctPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = underscorePattern.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	return name
}

// HeightInches parses a feet-inches height string such as "6-5" into total
// inches. Anything other than exactly two hyphen-delimited numeric parts
// yields null.
func HeightInches(v any) any {
	if v == nil {
		return nil
	}

	parts := strings.Split(strings.TrimSpace(recordset.AsString(v)), "-")
	if len(parts) != 2 {
		return nil
	}

	feet := recordset.ToNumber(parts[0])
	inches := recordset.ToNumber(parts[1])

	if feet == nil || inches == nil {
		return nil
	}

	return int64(asFloat(feet)*12 + asFloat(inches))
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// rosterRenames maps the raw Sports-Reference roster export labels to
// canonical names.
var rosterRenames = map[string]string{
	"pos":   "position",
	"wt":    "weight",
	"ht":    "height",
	"class": "class_year",
}

// ProcessRoster cleans a manually exported roster CSV, derives player_key
// and height_in, and stamps provenance.
func ProcessRoster(rs *recordset.RecordSet, season int, sourceFile string, stamp Stamp) *recordset.RecordSet {
	out := rs.Canonicalize().
		Rename(rosterRenames).
		CoerceNumeric("weight")

	out = out.InsertConst(0, "season", int64(season))

	// player_key sits next to player when the name column exists.
	if out.HasColumn("player") {
		out = out.InsertConst(2, "player_key", nil)
	}

	out = out.Apply("player_key", func(row recordset.Row) any {
		return PlayerKey(row["player"])
	})

	out = out.Apply("height_in", func(row recordset.Row) any {
		return HeightInches(row["height"])
	})

	return out.AppendConst("source_file", sourceFile).
		AppendConst("processed_at_utc", stamp.UTC).
		AppendConst("processed_at_local", stamp.Local)
}
