package places

import (
	"context"
	"net/http"
	"strings"
)

const (
	RankByProminence = "prominence"
	RankByDistance   = "distance"
)

// Search groups the place search endpoints.
type Search struct {
	req Requester
}

// NewSearch creates the search operations on top of req.
func NewSearch(req Requester) *Search {
	return &Search{req: req}
}

// Nearby returns places within an area around location.
//
// An absent rankby defaults to prominence, which requires a radius. Any other
// value, including "", must be distance or prominence. Ranking by distance
// requires one of keyword, name or type, and drops any radius.
func (s *Search) Nearby(ctx context.Context, location LatLng, params *Params) (*Response, error) {
	p := params.Clone()

	rankBy := strings.ToLower(strings.TrimSpace(p.GetString("rankby", RankByProminence)))
	if err := checkVar("nearby", "rankby", rankBy, "oneof=distance prominence", "unrecognized rank '"+rankBy+"'"); err != nil {
		return nil, err
	}

	switch rankBy {
	case RankByDistance:
		if err := requireAny("nearby", p, "keyword", "name", "type"); err != nil {
			return nil, err
		}
		p.Delete("radius")
	case RankByProminence:
		if !p.Has("radius") {
			return nil, &ValidationError{Operation: "nearby", Field: "radius", Message: "required when ranking by prominence"}
		}
	}

	p.Set("location", location)
	p.SetDefault("sensor", "false")

	return s.req.Execute(ctx, "nearbysearch", http.MethodGet, p, nil)
}

// Text returns places matching a free text query such as "pizza in New York".
func (s *Search) Text(ctx context.Context, query string, params *Params) (*Response, error) {
	p := params.Clone()
	p.Set("query", query)

	return s.req.Execute(ctx, "textsearch", http.MethodGet, p, nil)
}

// Radar returns up to 200 places within radius meters of location. One of
// keyword, name or type is required.
func (s *Search) Radar(ctx context.Context, location LatLng, radius int, params *Params) (*Response, error) {
	p := params.Clone()
	if err := requireAny("radar", p, "keyword", "name", "type"); err != nil {
		return nil, err
	}

	p.Set("location", location)
	p.Set("radius", radius)

	return s.req.Execute(ctx, "radarsearch", http.MethodGet, p, nil)
}

// AutoComplete returns place predictions for input. An empty language means DefaultLanguage.
func (s *Search) AutoComplete(ctx context.Context, input, language string, params *Params) (*Response, error) {
	if language == "" {
		language = DefaultLanguage
	}

	p := params.Clone()
	p.Set("input", input)
	p.Set("language", language)

	return s.req.Execute(ctx, "autocomplete", http.MethodGet, p, nil)
}
