package route

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Wrong-direction mapping is the highest-risk regression in this subsystem,
// so every known backend code is enumerated explicitly.

func TestFromValhallaManeuver(t *testing.T) {
	tests := []struct {
		code int
		want InstructionType
	}{
		{1, TypeContinue},
		{2, TypeContinue},
		{3, TypeSlightRight},
		{4, TypeArrive},
		{5, TypeArrive},
		{6, TypeArrive},
		{7, TypeContinue},
		{8, TypeSlightLeft},
		{9, TypeTurnLeft},
		{10, TypeTurnRight},
		{11, TypeSharpLeft},
		{12, TypeSharpRight},
		{13, TypeUTurn},
		{14, TypeUTurn},
		{15, TypeContinue},
		{16, TypeRoundaboutEnter},
		{17, TypeRoundaboutExit},
		{18, TypeContinue},
		{19, TypeContinue},
		{20, TypeContinue},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("code_%d", tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, FromValhallaManeuver(tc.code))
		})
	}
}

func TestFromValhallaManeuver_Unknown(t *testing.T) {
	for _, code := range []int{0, 21, 42, -1, 999} {
		assert.Equal(t, TypeContinue, FromValhallaManeuver(code), "code %d", code)
	}
}

func TestFromGraphHopperSign(t *testing.T) {
	tests := []struct {
		sign int
		want InstructionType
	}{
		{-7, TypeUTurn},
		{-6, TypeKeepLeft},
		{-3, TypeSharpLeft},
		{-2, TypeTurnLeft},
		{-1, TypeSlightLeft},
		{0, TypeContinue},
		{1, TypeSlightRight},
		{2, TypeTurnRight},
		{3, TypeSharpRight},
		{4, TypeArrive},
		{5, TypeStart},
		{6, TypeRoundaboutEnter},
		{7, TypeKeepRight},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("sign_%d", tc.sign), func(t *testing.T) {
			assert.Equal(t, tc.want, FromGraphHopperSign(tc.sign))
		})
	}
}

func TestFromGraphHopperSign_Unknown(t *testing.T) {
	for _, sign := range []int{-99, -8, 8, 42} {
		assert.Equal(t, TypeContinue, FromGraphHopperSign(sign), "sign %d", sign)
	}
}

func TestFromOSRMManeuver(t *testing.T) {
	tests := []struct {
		maneuverType string
		modifier     string
		want         InstructionType
	}{
		{"depart", "", TypeStart},
		{"arrive", "", TypeArrive},
		{"roundabout", "right", TypeRoundaboutEnter},
		{"rotary", "", TypeRoundaboutEnter},
		{"exit roundabout", "right", TypeRoundaboutExit},
		{"exit rotary", "", TypeRoundaboutExit},
		{"fork", "left", TypeKeepLeft},
		{"fork", "slight left", TypeKeepLeft},
		{"fork", "right", TypeKeepRight},
		{"fork", "slight right", TypeKeepRight},
		{"fork", "straight", TypeContinue},
		{"turn", "left", TypeTurnLeft},
		{"turn", "right", TypeTurnRight},
		{"turn", "sharp left", TypeSharpLeft},
		{"turn", "sharp right", TypeSharpRight},
		{"turn", "slight left", TypeSlightLeft},
		{"turn", "slight right", TypeSlightRight},
		{"turn", "straight", TypeContinue},
		{"turn", "uturn", TypeUTurn},
		{"end of road", "left", TypeTurnLeft},
		{"end of road", "right", TypeTurnRight},
		{"new name", "straight", TypeContinue},
		{"continue", "uturn", TypeUTurn},
		{"merge", "slight left", TypeSlightLeft},
		{"on ramp", "right", TypeTurnRight},
		{"off ramp", "slight right", TypeSlightRight},
	}

	for _, tc := range tests {
		t.Run(tc.maneuverType+"_"+tc.modifier, func(t *testing.T) {
			assert.Equal(t, tc.want, FromOSRMManeuver(tc.maneuverType, tc.modifier))
		})
	}
}

func TestFromOSRMManeuver_Unknown(t *testing.T) {
	assert.Equal(t, TypeContinue, FromOSRMManeuver("notification", ""))
	assert.Equal(t, TypeContinue, FromOSRMManeuver("turn", "sideways"))
	assert.Equal(t, TypeContinue, FromOSRMManeuver("", ""))
}

func TestInstructionType_IsTurn(t *testing.T) {
	turns := []InstructionType{
		TypeTurnLeft, TypeTurnRight, TypeSharpLeft, TypeSharpRight,
		TypeSlightLeft, TypeSlightRight,
	}
	for _, typ := range turns {
		assert.True(t, typ.IsTurn(), "%s", typ)
	}

	nonTurns := []InstructionType{
		TypeStart, TypeArrive, TypeContinue, TypeKeepLeft, TypeKeepRight,
		TypeUTurn, TypeRoundaboutEnter, TypeRoundaboutExit,
	}
	for _, typ := range nonTurns {
		assert.False(t, typ.IsTurn(), "%s", typ)
	}
}
