package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStreetName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"turn onto", "Turn left onto Market Street", "Market Street"},
		{"onto with trailing clause", "Turn right onto Broad Street for 2 miles", "Broad Street"},
		{"continue on", "Continue on Kelly Drive", "Kelly Drive"},
		{"keep on", "Keep right on Schuylkill River Trail", "Schuylkill River Trail"},
		{"stay on", "Stay straight on Spring Garden Street", "Spring Garden Street"},
		{"follow", "Follow Benjamin Franklin Parkway, then turn", "Benjamin Franklin Parkway"},
		{"via", "Head north via Spruce Street.", "Spruce Street"},
		{"along", "Ride along Boathouse Row", "Boathouse Row"},
		{"towards", "Head towards Fairmount Park", "Fairmount Park"},
		{"onto ending with comma", "Merge onto Walnut Street, then continue", "Walnut Street"},
		{"no street", "Turn left", ""},
		{"empty text", "", ""},
		{"bare arrival", "You have arrived", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractStreetName(tc.text))
		})
	}
}
