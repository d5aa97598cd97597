package route

// Micro-instruction thresholds. Routing backends frequently emit a turn
// for every graph edge around an intersection; a named turn under 50 m,
// or an unnamed turn under 100 m, is backend noise rather than a genuine
// maneuver and gets folded into the surrounding step.
const (
	microTurnMeters        = 50.0
	microUnnamedTurnMeters = 100.0
)

// SuppressMicroInstructions filters out spurious turn steps, merging each
// dropped step's distance and duration into the preceding kept step so
// the totals along the instruction list are preserved.
func SuppressMicroInstructions(instructions []Instruction) []Instruction {
	kept := make([]Instruction, 0, len(instructions))
	for _, in := range instructions {
		if isMicro(in) && len(kept) > 0 {
			kept[len(kept)-1].DistanceMeters += in.DistanceMeters
			kept[len(kept)-1].DurationSeconds += in.DurationSeconds
			continue
		}
		kept = append(kept, in)
	}
	return kept
}

func isMicro(in Instruction) bool {
	if !in.Type.IsTurn() {
		return false
	}
	if in.DistanceMeters < microTurnMeters {
		return true
	}
	return in.StreetName == "" && in.DistanceMeters < microUnnamedTurnMeters
}
