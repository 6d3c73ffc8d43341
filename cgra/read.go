package cgra

import "github.com/sarchlab/tis100/number"

// ReadFrom implements the read side of the port protocol (spec §4.2) for a
// single neighbor. dir is the direction from the reader to neighbor; the
// reader registers interest under dir.Opposite() as seen from neighbor.
// It returns the value and true only when neighbor was already Given.
func ReadFrom(dir Direction, neighbor Node) (number.Number, bool) {
	back := dir.Opposite()

	switch neighbor.Give() {
	case GivingNone:
		return number.Number{}, false

	case GivingAny:
		registerInterest(neighbor, back)
		return number.Number{}, false

	case GivingDirection:
		if neighbor.GiveDirection() == back {
			registerInterest(neighbor, back)
		}
		return number.Number{}, false

	case GivingGiven:
		return neighbor.TakeGiveValue(), true

	default:
		return number.Number{}, false
	}
}

// registerInterest records dir's interest on neighbor, keeping the smaller
// direction under the fixed Up < Left < Right < Down order when interest
// was already recorded by another reader this tick.
func registerInterest(neighbor Node, dir Direction) {
	if prev, ok := neighbor.GivingTo(); ok {
		if dir < prev {
			neighbor.SetGivingTo(dir)
		}
		return
	}
	neighbor.SetGivingTo(dir)
}

// ReadAny walks the four directions in the fixed tie-break order and
// returns the first successful consumption, registering interest on the
// first encountered offer and then stopping (spec §4.2).
func ReadAny(neighbors map[Direction]Node) (number.Number, bool) {
	for _, dir := range Directions() {
		neighbor, ok := neighbors[dir]
		if !ok {
			continue
		}

		back := dir.Opposite()
		switch neighbor.Give() {
		case GivingNone:
			continue
		case GivingAny:
			registerInterest(neighbor, back)
			return number.Number{}, false
		case GivingDirection:
			if neighbor.GiveDirection() == back {
				registerInterest(neighbor, back)
				return number.Number{}, false
			}
		case GivingGiven:
			return neighbor.TakeGiveValue(), true
		}
	}
	return number.Number{}, false
}
