package game

// beats maps each move to the one it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

// Beats returns the move that m defeats.
func Beats(m Move) Move {
	return beats[m]
}

// Resolve decides a round between move A and move B.
// Both moves must be valid; callers parse input with ParseMove first.
func Resolve(a, b Move) Outcome {
	if a == b {
		return Draw
	}
	if beats[a] == b {
		return AWins
	}
	return BWins
}
