package kenpom

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode_RowList(t *testing.T) {
	body := []byte(`[
		{"TeamName": "Montana", "AdjEM": 5.2, "Rank": 120},
		{"TeamName": "Montana State", "AdjEM": 7.9, "Rank": 95}
	]`)

	rs, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := []string{"TeamName", "AdjEM", "Rank"}
	if !reflect.DeepEqual(rs.Columns, want) {
		t.Errorf("columns = %v, want %v (payload order)", rs.Columns, want)
	}

	if rs.Len() != 2 {
		t.Fatalf("rows = %d, want 2", rs.Len())
	}

	if got := rs.Rows[0]["TeamName"]; got != "Montana" {
		t.Errorf("TeamName = %v", got)
	}

	if got := rs.Rows[0]["AdjEM"]; got != 5.2 {
		t.Errorf("AdjEM = %v (%T), want float64 5.2", got, got)
	}

	if got := rs.Rows[0]["Rank"]; got != int64(120) {
		t.Errorf("Rank = %v (%T), want int64 120", got, got)
	}
}

func TestDecode_RowList_UnevenSchema(t *testing.T) {
	body := []byte(`[
		{"TeamName": "Montana", "AdjEM": 5.2},
		{"TeamName": "Idaho", "Seed": 14}
	]`)

	rs, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := []string{"TeamName", "AdjEM", "Seed"}
	if !reflect.DeepEqual(rs.Columns, want) {
		t.Errorf("columns = %v, want %v", rs.Columns, want)
	}

	// Rows stay schema-uniform: absent fields become null.
	if got, ok := rs.Rows[0]["Seed"]; !ok || got != nil {
		t.Errorf("first row Seed = %v (present=%t), want nil", got, ok)
	}

	if got, ok := rs.Rows[1]["AdjEM"]; !ok || got != nil {
		t.Errorf("second row AdjEM = %v (present=%t), want nil", got, ok)
	}
}

func TestDecode_WrappedRows(t *testing.T) {
	body := []byte(`{"season": 2026, "data": [{"TeamName": "Montana", "eFG": 52.1}]}`)

	rs, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if rs.Len() != 1 {
		t.Fatalf("rows = %d, want 1", rs.Len())
	}

	if got := rs.Rows[0]["eFG"]; got != 52.1 {
		t.Errorf("eFG = %v, want 52.1", got)
	}
}

func TestDecode_FlattenFallback(t *testing.T) {
	body := []byte(`{"team": {"name": "Montana", "conf": "BSky"}, "season": 2026}`)

	rs, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	want := []string{"team.name", "team.conf", "season"}
	if !reflect.DeepEqual(rs.Columns, want) {
		t.Errorf("columns = %v, want %v", rs.Columns, want)
	}

	if rs.Len() != 1 {
		t.Fatalf("rows = %d, want 1", rs.Len())
	}

	if got := rs.Rows[0]["team.name"]; got != "Montana" {
		t.Errorf("team.name = %v", got)
	}

	if got := rs.Rows[0]["season"]; got != int64(2026) {
		t.Errorf("season = %v, want 2026", got)
	}
}

func TestDecode_ScalarPayloadIsRejected(t *testing.T) {
	_, err := Decode([]byte(`"just a string"`))
	if !errors.Is(err, ErrUnexpectedShape) {
		t.Errorf("err = %v, want ErrUnexpectedShape", err)
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"broken":`))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	_, err := Decode([]byte("  "))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestDecode_ListOfScalarsIsRejectedByRowList(t *testing.T) {
	// A list of scalars is not a row list; nothing else matches either.
	_, err := Decode([]byte(`[1, 2, 3]`))
	if !errors.Is(err, ErrUnexpectedShape) {
		t.Errorf("err = %v, want ErrUnexpectedShape", err)
	}
}
