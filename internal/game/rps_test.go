package game

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		a, b Move
		want Outcome
	}{
		{Rock, Scissors, AWins},
		{Rock, Paper, BWins},
		{Paper, Rock, AWins},
		{Paper, Scissors, BWins},
		{Scissors, Paper, AWins},
		{Scissors, Rock, BWins},
		{Rock, Rock, Draw},
		{Paper, Paper, Draw},
		{Scissors, Scissors, Draw},
	}

	for _, tc := range cases {
		if got := Resolve(tc.a, tc.b); got != tc.want {
			t.Fatalf("Resolve(%s,%s) = %s; want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolveSymmetry(t *testing.T) {
	for _, x := range Moves {
		if got := Resolve(x, x); got != Draw {
			t.Fatalf("Resolve(%s,%s) = %s; want draw", x, x, got)
		}
		for _, y := range Moves {
			if x == y {
				continue
			}
			if Resolve(x, y) != Invert(Resolve(y, x)) {
				t.Fatalf("Resolve(%s,%s) is not the inverse of Resolve(%s,%s)", x, y, y, x)
			}
			if Resolve(x, y) == Draw {
				t.Fatalf("Resolve(%s,%s) = draw for distinct moves", x, y)
			}
		}
	}
}

func TestBeatsIsCyclic(t *testing.T) {
	for _, m := range Moves {
		if Beats(Beats(Beats(m))) != m {
			t.Fatalf("dominance from %s is not a 3-cycle", m)
		}
		if Beats(m) == m {
			t.Fatalf("%s beats itself", m)
		}
	}
}

func TestParseMove(t *testing.T) {
	for in, want := range map[string]Move{
		"rock":     Rock,
		" Paper ":  Paper,
		"SCISSORS": Scissors,
	} {
		got, err := ParseMove(in)
		if err != nil {
			t.Fatalf("ParseMove(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMove(%q) = %s; want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "lizard", "spock", "r"} {
		if _, err := ParseMove(in); err != ErrInvalidMove {
			t.Fatalf("ParseMove(%q) err = %v; want ErrInvalidMove", in, err)
		}
	}
}

func TestResultFor(t *testing.T) {
	if ResultFor(AWins, true) != ResultWin || ResultFor(AWins, false) != ResultLose {
		t.Fatal("AWins perspective mismatch")
	}
	if ResultFor(BWins, true) != ResultLose || ResultFor(BWins, false) != ResultWin {
		t.Fatal("BWins perspective mismatch")
	}
	if ResultFor(Draw, true) != ResultDraw || ResultFor(Draw, false) != ResultDraw {
		t.Fatal("Draw perspective mismatch")
	}
}
