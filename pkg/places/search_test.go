package places

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error, operation string) *ValidationError {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, operation, vErr.Operation)
	return vErr
}

var sydney = LatLng{Lat: -33.8670522, Lng: 151.1957362}

func TestNearby(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	resp, err := client.Search().Nearby(context.Background(), sydney, ParamsFrom("radius", 500))
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status())
	assert.Len(t, resp.Record.Results, 2)
	assert.Equal(t, "Rhythmboat Cruises", resp.Record.Results[0].Name)

	call := transport.lastCall(t)
	assert.Equal(t, http.MethodGet, call.Method)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/nearbysearch/json", call.URL)
	assert.Equal(t, "-33.8670522,151.1957362", call.Query.Get("location"))
	assert.Equal(t, "500", call.Query.Get("radius"))
	assert.Equal(t, "false", call.Query.Get("sensor"))
	assert.Equal(t, testAPIKey, call.Query.Get("key"))
}

func TestNearby_InvalidRankBy(t *testing.T) {
	for _, rankBy := range []string{"", "popularity", "dist", "  ", "relevance"} {
		t.Run(rankBy, func(t *testing.T) {
			client, transport := newTestClient(t, "search-response.json")

			_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", rankBy, "radius", 100, "name", "x"))
			vErr := requireValidationError(t, err, "nearby")
			assert.Equal(t, "rankby", vErr.Field)
			assert.Empty(t, transport.calls, "no request may be sent on validation failure")
		})
	}
}

func TestNearby_ExplicitNilRankByDefaultsToProminence(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", nil, "radius", 100))
	require.NoError(t, err)
	_, hasRankBy := transport.lastCall(t).Query["rankby"]
	assert.False(t, hasRankBy)
}

func TestNearby_EmptyKeywordCountsAsPresent(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", "distance", "keyword", ""))
	require.NoError(t, err)
	assert.Len(t, transport.calls, 1)
}

func TestNearby_RankByIsCaseAndWhitespaceInsensitive(t *testing.T) {
	for _, rankBy := range []string{" Distance ", "DISTANCE", "distance"} {
		t.Run(rankBy, func(t *testing.T) {
			client, transport := newTestClient(t, "search-response.json")

			_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", rankBy, "keyword", "cruise"))
			require.NoError(t, err)
			assert.Len(t, transport.calls, 1)
		})
	}
}

func TestNearby_DistanceRequiresKeywordNameOrType(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", "distance", "radius", 100))
	requireValidationError(t, err, "nearby")
	assert.Empty(t, transport.calls)

	for _, key := range []string{"keyword", "name", "type"} {
		t.Run(key, func(t *testing.T) {
			_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", "distance", key, "food"))
			assert.NoError(t, err)
		})
	}
}

func TestNearby_DistanceDropsRadius(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")
	params := ParamsFrom("rankby", "distance", "type", "restaurant", "radius", 1000)

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, params)
	require.NoError(t, err)

	call := transport.lastCall(t)
	_, hasRadius := call.Query["radius"]
	assert.False(t, hasRadius, "radius must not be sent when ranking by distance")
	assert.Equal(t, "restaurant", call.Query.Get("type"))
	assert.True(t, params.Has("radius"), "caller params must not be mutated")
}

func TestNearby_ProminenceRequiresRadius(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, nil)
	vErr := requireValidationError(t, err, "nearby")
	assert.Equal(t, "radius", vErr.Field)

	_, err = client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("rankby", "Prominence", "keyword", "x"))
	requireValidationError(t, err, "nearby")
	assert.Empty(t, transport.calls)
}

func TestNearby_KeepsExplicitSensor(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("radius", 10, "sensor", "true"))
	require.NoError(t, err)
	assert.Equal(t, "true", transport.lastCall(t).Query.Get("sensor"))
}

func TestNearby_NonSuccessStatus(t *testing.T) {
	transport := &fakeTransport{status: http.StatusCreated, body: []byte("content")}
	client, err := NewClient(testAPIKey, WithTransport(transport))
	require.NoError(t, err)

	resp, err := client.Search().Nearby(context.Background(), LatLng{Lat: 1, Lng: 1}, ParamsFrom("radius", 10))
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty())
}

func TestText(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	resp, err := client.Search().Text(context.Background(), "restaurants in Sydney", ParamsFrom("language", "en-AU"))
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status())
	assert.Equal(t, "CpQCAgEAAFxg8o", resp.Record.NextPageToken)

	call := transport.lastCall(t)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/textsearch/json", call.URL)
	assert.Equal(t, "restaurants in Sydney", call.Query.Get("query"))
	assert.Equal(t, "en-AU", call.Query.Get("language"))
}

func TestRadar(t *testing.T) {
	client, transport := newTestClient(t, "search-response.json")

	_, err := client.Search().Radar(context.Background(), LatLng{Lat: 1, Lng: 1}, 5000, nil)
	requireValidationError(t, err, "radar")
	assert.Empty(t, transport.calls)

	resp, err := client.Search().Radar(context.Background(), sydney, 5000, ParamsFrom("type", "restaurant"))
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status())

	call := transport.lastCall(t)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/radarsearch/json", call.URL)
	assert.Equal(t, "-33.8670522,151.1957362", call.Query.Get("location"))
	assert.Equal(t, "5000", call.Query.Get("radius"))
	assert.Equal(t, "restaurant", call.Query.Get("type"))
}

func TestAutoComplete(t *testing.T) {
	client, transport := newTestClient(t, "search-autocomplete-response.json")

	resp, err := client.Search().AutoComplete(context.Background(), "Paris", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status())
	require.Len(t, resp.Record.Predictions, 1)
	assert.Equal(t, "Paris, France", resp.Record.Predictions[0].Description)
	assert.Equal(t, "France", resp.Lookup("predictions.0.terms.1.value").String())

	call := transport.lastCall(t)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place/autocomplete/json", call.URL)
	assert.Equal(t, "Paris", call.Query.Get("input"))
	assert.Equal(t, "en", call.Query.Get("language"))

	_, err = client.Search().AutoComplete(context.Background(), "Paris", "fr", ParamsFrom("types", []string{"(cities)", "geocode"}))
	require.NoError(t, err)
	call = transport.lastCall(t)
	assert.Equal(t, "fr", call.Query.Get("language"))
	assert.Equal(t, "(cities)|geocode", call.Query.Get("types"))
}

// staticRequester checks that the operation groups depend only on Requester.
type staticRequester struct {
	command string
	query   *Params
}

func (s *staticRequester) Execute(_ context.Context, command, _ string, query *Params, _ []byte) (*Response, error) {
	s.command = command
	s.query = query
	return &Response{Kind: KindNonSuccess, StatusCode: http.StatusNotFound}, nil
}

func (s *staticRequester) FetchRaw(_ context.Context, command string, query *Params) ([]byte, error) {
	s.command = command
	s.query = query
	return nil, nil
}

func TestSearch_ComposesOverRequester(t *testing.T) {
	req := &staticRequester{}
	search := NewSearch(req)

	resp, err := search.Text(context.Background(), "pizza", nil)
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty())
	assert.Equal(t, "textsearch", req.command)
	assert.Equal(t, []string{"query"}, req.query.Keys())
}
