package cta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/cta-train-tracker/schema"
	"github.com/theoremus-urban-solutions/cta-train-tracker/utils"
)

func TestLocations_Get(t *testing.T) {
	up := newUpstream(t, "locations.json")
	locations := NewLocations(testKey, WithBaseURL(up.url("/ttpositions.aspx")))

	groups, err := locations.Get(context.Background(), LocationsQuery{Routes: []string{"red", "blue"}})
	require.NoError(t, err)
	assert.Equal(t, "outputType=JSON&key=test-key&rt=red,blue", up.lastQuery())
	assert.Equal(t, fixtureQueryTime, locations.QueryTime())

	require.Len(t, groups, 2)
	require.Contains(t, groups, "red")
	require.Contains(t, groups, "blue")

	red := groups["red"]
	require.Equal(t, 2, red.Len())
	rn, _ := red.Value(0, "rn")
	assert.Equal(t, "804", rn)

	blue := groups["blue"]
	require.Equal(t, 1, blue.Len())
	dest, _ := blue.Value(0, "destNm")
	assert.Equal(t, "O'Hare", dest)
}

func TestLocations_NoRoutes(t *testing.T) {
	tests := []struct {
		name   string
		routes []string
	}{
		{name: "nil", routes: nil},
		{name: "blank element", routes: []string{"red", ""}},
		{name: "whitespace only", routes: []string{"  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newUpstream(t, "locations.json")
			locations := NewLocations(testKey, WithBaseURL(up.url("/ttpositions.aspx")))

			groups, err := locations.Get(context.Background(), LocationsQuery{Routes: tt.routes})
			require.Error(t, err)
			assert.Nil(t, groups)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Equal(t, 0, up.hits())
		})
	}
}

func TestLocations_SchemaFailure(t *testing.T) {
	up := newUpstream(t, "arrivals.json")
	locations := NewLocations(testKey, WithBaseURL(up.url("/ttpositions.aspx")))

	groups, err := locations.Get(context.Background(), LocationsQuery{Routes: []string{"red"}})
	require.Error(t, err)
	require.NotNil(t, groups)
	assert.Empty(t, groups)
	assert.Equal(t, utils.NoQueryTime, locations.QueryTime())

	var ve *schema.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLocations_TrimsRoutes(t *testing.T) {
	up := newUpstream(t, "locations.json")
	locations := NewLocations(testKey, WithBaseURL(up.url("/ttpositions.aspx")))

	routes := []string{" red", "blue "}
	_, err := locations.Get(context.Background(), LocationsQuery{Routes: routes})
	require.NoError(t, err)
	assert.Equal(t, "outputType=JSON&key=test-key&rt=red,blue", up.lastQuery())
	assert.Equal(t, []string{" red", "blue "}, routes)
}
