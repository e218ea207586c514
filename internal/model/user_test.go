package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_UnmarshalJSON(t *testing.T) {
	westlands := Coordinate{Lat: -1.2676, Lng: 36.8108}

	tests := []struct {
		name string
		raw  string
	}{
		{name: "lat lng object", raw: `{"lat": -1.2676, "lng": 36.8108}`},
		{name: "geojson point", raw: `{"type": "Point", "coordinates": [36.8108, -1.2676]}`},
		{name: "wkt", raw: `"POINT (36.8108 -1.2676)"`},
		{name: "ewkt", raw: `"SRID=4326;POINT (36.8108 -1.2676)"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Coordinate
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.InDelta(t, westlands.Lat, c.Lat, 1e-9)
			assert.InDelta(t, westlands.Lng, c.Lng, 1e-9)
		})
	}

	for _, bad := range []string{`{}`, `{"type": "Point", "coordinates": [1]}`, `"LINESTRING (0 0, 1 1)"`, `"POINT (a b)"`, `[1, 2]`} {
		var c Coordinate
		assert.Error(t, json.Unmarshal([]byte(bad), &c), bad)
	}
}

func TestUser_DecodeLocation(t *testing.T) {
	var user User
	raw := `{"id": 3, "username": "otieno", "user_type": "BUSINESS", "address": "Moi Avenue",
		"location": {"type": "Point", "coordinates": [36.8219, -1.2921]}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &user))

	assert.Equal(t, 3, user.ID)
	assert.Equal(t, "otieno", user.Username)
	assert.Equal(t, UserBusiness, user.UserType)
	assert.Equal(t, "Moi Avenue", user.Address)
	require.NotNil(t, user.Location)
	assert.Equal(t, "-1.2921, 36.8219", user.Location.String())
}

func TestUser_UnreadableLocationIsDropped(t *testing.T) {
	for _, loc := range []string{`null`, `"somewhere"`, `{"type": "Polygon", "coordinates": []}`} {
		var user User
		require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "username": "wanjiku", "location": `+loc+`}`), &user), loc)
		assert.Equal(t, "wanjiku", user.Username)
		assert.Nil(t, user.Location, loc)
	}
}

func TestUser_RoundTripKeepsLocation(t *testing.T) {
	in := User{ID: 1, Username: "wanjiku", Location: &Coordinate{Lat: -1.2921, Lng: 36.8219}}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out User
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
