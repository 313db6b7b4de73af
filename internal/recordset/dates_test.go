package recordset

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{"Mon, Nov 6, 2023", "2023-11-06"},
		{"Sat, Mar 9, 2024", "2024-03-09"},
		{"2024-01-15", "2024-01-15"},
		{"Jan 15, 2024", "2024-01-15"},
		{"11/6/2023", "2023-11-06"},
		{"not a date", nil},
		{"", nil},
		{nil, nil},
	}

	for _, tc := range cases {
		if got := ParseDate(tc.in); got != tc.want {
			t.Errorf("ParseDate(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoerceDate(t *testing.T) {
	rs := New("date", "opponent")
	rs.Append(Row{"date": "Mon, Nov 6, 2023", "opponent": "Idaho"})
	rs.Append(Row{"date": "garbage", "opponent": "Weber State"})

	out := rs.CoerceDate("date")

	if got := out.Rows[0]["date"]; got != "2023-11-06" {
		t.Errorf("date = %v, want 2023-11-06", got)
	}

	if got := out.Rows[1]["date"]; got != nil {
		t.Errorf("unparseable date = %v, want nil", got)
	}
}

func TestCoerceDate_MissingColumnIsNoop(t *testing.T) {
	rs := New("opponent")
	rs.Append(Row{"opponent": "Idaho"})

	out := rs.CoerceDate("date")

	if out.Len() != 1 || out.HasColumn("date") {
		t.Errorf("missing date column should be untouched: %v", out.Columns)
	}
}
