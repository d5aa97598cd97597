package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanReply = `{"waypoints":[{"lat":39.95,"lon":-75.16},{"lat":39.96,"lon":-75.17}],"difficulty":"Easy","description":"River loop","route_name":"Schuylkill Spin"}`

func TestParseModelResponse_Direct(t *testing.T) {
	resp, err := parseModelResponse(cleanReply)
	require.NoError(t, err)
	require.Len(t, resp.Waypoints, 2)
	assert.Equal(t, "Easy", resp.Difficulty)
	assert.Equal(t, "Schuylkill Spin", resp.RouteName)
	assert.Equal(t, 39.95, *resp.Waypoints[0].Lat)
}

func TestParseModelResponse_SurroundingProse(t *testing.T) {
	raw := "Here is your route!\n" + cleanReply + "\nEnjoy the ride."
	resp, err := parseModelResponse(raw)
	require.NoError(t, err)
	assert.Len(t, resp.Waypoints, 2)
}

func TestParseModelResponse_FencedCodeBlock(t *testing.T) {
	raw := "Sure thing:\n```json\n" + cleanReply + "\n```\nLet me know if you want changes."
	resp, err := parseModelResponse(raw)
	require.NoError(t, err)
	assert.Len(t, resp.Waypoints, 2)
	assert.Equal(t, "River loop", resp.Description)
}

func TestParseModelResponse_CommentsAndTrailingCommas(t *testing.T) {
	raw := `{
		"waypoints": [
			{"lat": 1.0, "lon": 1.0}, // start area
			/* a nice detour */
			{"lat": 2.0, "lon": 2.0},
		],
		"difficulty": "Moderate",
	}`
	resp, err := parseModelResponse(raw)
	require.NoError(t, err)
	require.Len(t, resp.Waypoints, 2)
	assert.Equal(t, "Moderate", resp.Difficulty)
}

func TestParseModelResponse_NoJSON(t *testing.T) {
	_, err := parseModelResponse("I cannot plan a route for you.")
	assert.ErrorIs(t, err, ErrParse)

	_, err = parseModelResponse("")
	assert.ErrorIs(t, err, ErrParse)

	// Unbalanced braces never recover
	_, err = parseModelResponse(`{"waypoints": [{"lat": 1`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestExtractBalancedObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractBalancedObject(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":{"b":2}}`, extractBalancedObject(`{"a":{"b":2}} trailing`))
	assert.Equal(t, `{"s":"has } brace"}`, extractBalancedObject(`{"s":"has } brace"}`))
	assert.Equal(t, "", extractBalancedObject("no braces here"))
	assert.Equal(t, "", extractBalancedObject(`{"open": 1`))
}

func TestRepairStages(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripTrailingCommas(`{"a":1,}`))
	assert.Equal(t, `[1,2]`, stripTrailingCommas(`[1,2,]`))
	assert.Equal(t, `{"a":1}`, stripBlockComments(`{"a":1/* gone */}`))
	assert.NotContains(t, stripLineComments("{\n\"a\": 1 // note\n}"), "note")
}
