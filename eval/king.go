package eval

import "github.com/arbiterchess/core/piece"

// kingSafetyTable converts a 0..15-clamped weighted king-zone attacker
// count into a tapered penalty, the classic CPW "king safety table"
// shape (quadratic-ish growth, capped so a swarmed king doesn't produce
// an unbounded score).
var kingSafetyTable = [16]Score{
	S(0, 0), S(0, 0), S(-10, 0), S(-20, 0), S(-35, -5), S(-55, -10), S(-80, -15), S(-110, -20),
	S(-145, -30), S(-185, -40), S(-230, -55), S(-280, -70), S(-335, -90), S(-395, -110), S(-460, -130), S(-520, -150),
}

// kingSafety turns the attacker-unit counts from mobilityTerms into a
// white-minus-black penalty: the side whose king is under more pressure
// loses points.
func kingSafety(units [2]int, attackers [2]int) Score {
	var s Score
	for c := piece.White; c <= piece.Black; c++ {
		if attackers[c] == 0 {
			continue
		}
		idx := units[c]
		if idx > 15 {
			idx = 15
		}
		// The penalty applies to the color being attacked, i.e. the
		// opposite of the attacking side c.
		s = addFor(s, c.Opposite(), kingSafetyTable[idx])
	}
	return s
}
