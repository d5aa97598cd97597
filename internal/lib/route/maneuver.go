package route

// InstructionType is the canonical maneuver vocabulary used uniformly
// regardless of which backend produced the maneuver.
type InstructionType string

const (
	TypeStart           InstructionType = "start"
	TypeArrive          InstructionType = "arrive"
	TypeTurnLeft        InstructionType = "turn-left"
	TypeTurnRight       InstructionType = "turn-right"
	TypeSharpLeft       InstructionType = "sharp-left"
	TypeSharpRight      InstructionType = "sharp-right"
	TypeSlightLeft      InstructionType = "slight-left"
	TypeSlightRight     InstructionType = "slight-right"
	TypeContinue        InstructionType = "continue"
	TypeKeepLeft        InstructionType = "keep-left"
	TypeKeepRight       InstructionType = "keep-right"
	TypeUTurn           InstructionType = "u-turn"
	TypeRoundaboutEnter InstructionType = "roundabout-enter"
	TypeRoundaboutExit  InstructionType = "roundabout-exit"
)

// IsTurn reports whether the type is a directional turn maneuver, the kind
// subject to micro-instruction suppression.
func (t InstructionType) IsTurn() bool {
	switch t {
	case TypeTurnLeft, TypeTurnRight, TypeSharpLeft, TypeSharpRight,
		TypeSlightLeft, TypeSlightRight:
		return true
	}
	return false
}

// valhallaManeuvers maps Valhalla's integer maneuver types to the canonical
// vocabulary. Codes 4-6 are the destination family; 1, 2 and 7 are the
// start/becomes family which carries no turn semantics.
var valhallaManeuvers = map[int]InstructionType{
	1:  TypeContinue,        // start
	2:  TypeContinue,        // start right
	3:  TypeSlightRight,     // slight right
	4:  TypeArrive,          // destination
	5:  TypeArrive,          // destination right
	6:  TypeArrive,          // destination left
	7:  TypeContinue,        // becomes
	8:  TypeSlightLeft,      // slight left
	9:  TypeTurnLeft,        // left
	10: TypeTurnRight,       // right
	11: TypeSharpLeft,       // sharp left
	12: TypeSharpRight,      // sharp right
	13: TypeUTurn,           // u-turn left
	14: TypeUTurn,           // u-turn right
	15: TypeContinue,        // continue
	16: TypeRoundaboutEnter, // roundabout enter
	17: TypeRoundaboutExit,  // roundabout exit
	18: TypeContinue,        // ramp straight
	19: TypeContinue,        // ramp right
	20: TypeContinue,        // ramp left
}

// FromValhallaManeuver translates a Valhalla maneuver type code. Unknown
// codes default to continue.
func FromValhallaManeuver(code int) InstructionType {
	if t, ok := valhallaManeuvers[code]; ok {
		return t
	}
	return TypeContinue
}

// graphHopperSigns maps GraphHopper instruction sign values to the canonical
// vocabulary. Negative signs are left turns, positive are right.
var graphHopperSigns = map[int]InstructionType{
	-7: TypeUTurn,           // u-turn left
	-6: TypeKeepLeft,        // keep left
	-3: TypeSharpLeft,       // sharp left
	-2: TypeTurnLeft,        // left
	-1: TypeSlightLeft,      // slight left
	0:  TypeContinue,        // continue on street
	1:  TypeSlightRight,     // slight right
	2:  TypeTurnRight,       // right
	3:  TypeSharpRight,      // sharp right
	4:  TypeArrive,          // finish
	5:  TypeStart,           // via point reached / start
	6:  TypeRoundaboutEnter, // use roundabout
	7:  TypeKeepRight,       // keep right
}

// FromGraphHopperSign translates a GraphHopper sign value. Unknown signs
// default to continue.
func FromGraphHopperSign(sign int) InstructionType {
	if t, ok := graphHopperSigns[sign]; ok {
		return t
	}
	return TypeContinue
}

// osrmModifiers maps OSRM step maneuver modifiers for the "turn" family.
var osrmModifiers = map[string]InstructionType{
	"left":         TypeTurnLeft,
	"right":        TypeTurnRight,
	"sharp left":   TypeSharpLeft,
	"sharp right":  TypeSharpRight,
	"slight left":  TypeSlightLeft,
	"slight right": TypeSlightRight,
	"straight":     TypeContinue,
	"uturn":        TypeUTurn,
}

// FromOSRMManeuver translates an OSRM step maneuver type plus modifier.
// Unknown combinations default to continue.
func FromOSRMManeuver(maneuverType, modifier string) InstructionType {
	switch maneuverType {
	case "depart":
		return TypeStart
	case "arrive":
		return TypeArrive
	case "roundabout", "rotary":
		return TypeRoundaboutEnter
	case "exit roundabout", "exit rotary":
		return TypeRoundaboutExit
	case "fork":
		switch modifier {
		case "left", "slight left":
			return TypeKeepLeft
		case "right", "slight right":
			return TypeKeepRight
		}
		return TypeContinue
	case "turn", "end of road", "new name", "continue", "merge", "on ramp", "off ramp":
		if t, ok := osrmModifiers[modifier]; ok {
			return t
		}
		return TypeContinue
	}
	return TypeContinue
}
