package sheet

import "testing"

func TestPosition_A1(t *testing.T) {
	cases := map[Position]string{
		{Row: 1, Col: 1}:   "A1",
		{Row: 5, Col: 2}:   "B5",
		{Row: 10, Col: 27}: "AA10",
		{Row: 3, Col: 52}:  "AZ3",
	}
	for pos, want := range cases {
		if got := pos.A1(); got != want {
			t.Fatalf("%+v: expected %s, got %s", pos, want, got)
		}
	}
}

func TestParseA1(t *testing.T) {
	pos, err := ParseA1("b5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pos != (Position{Row: 5, Col: 2}) {
		t.Fatalf("expected B5, got %+v", pos)
	}

	for _, bad := range []string{"", "5B", "B", "5", "B5C"} {
		if _, err := ParseA1(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestPosition_Offset(t *testing.T) {
	got := Position{Row: 2, Col: 3}.Offset(1, -2)
	if got != (Position{Row: 3, Col: 1}) {
		t.Fatalf("unexpected offset result: %+v", got)
	}
}
