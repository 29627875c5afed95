package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxNameLength is the longest place name the add endpoint accepts, in characters.
const MaxNameLength = 255

// Place groups the place details, photo and add/delete endpoints.
type Place struct {
	req Requester
}

// NewPlace creates the place operations on top of req.
func NewPlace(req Requester) *Place {
	return &Place{req: req}
}

// Details returns the details of the place identified by placeID. An empty
// language means DefaultLanguage.
func (p *Place) Details(ctx context.Context, placeID, language string, params *Params) (*Response, error) {
	if language == "" {
		language = DefaultLanguage
	}

	q := params.Clone()
	q.Set("placeid", placeID)
	q.Set("language", language)
	q.SetDefault("sensor", "false")

	return p.req.Execute(ctx, "details", http.MethodGet, q, nil)
}

// Photo downloads the image behind a photo reference. One of maxheight or
// maxwidth is required. The body is returned byte for byte whatever the HTTP
// status, so callers that care must inspect the content.
func (p *Place) Photo(ctx context.Context, reference string, params *Params) ([]byte, error) {
	q := params.Clone()
	if err := requireAny("photo", q, "maxheight", "maxwidth"); err != nil {
		return nil, err
	}
	q.Set("photoreference", reference)

	return p.req.FetchRaw(ctx, "photo", q)
}

// Add registers a new place for this application. params carries the optional
// fields (address, phone_number, website, ...). The request body is always
// JSON, whatever response format the client uses.
func (p *Place) Add(ctx context.Context, location LatLng, name string, types []string, accuracy int, language string, params *Params) (*Response, error) {
	if err := checkVar("add", "name", name, fmt.Sprintf("max=%d", MaxNameLength), fmt.Sprintf("cannot be longer than %d characters", MaxNameLength)); err != nil {
		return nil, err
	}
	if language == "" {
		language = DefaultLanguage
	}
	if types == nil {
		types = []string{}
	}

	data := params.Clone()
	data.Set("location", location)
	data.Set("name", name)
	data.Set("types", types)
	data.Set("accuracy", accuracy)
	data.Set("language", language)

	body, err := data.MarshalJSON()
	if err != nil {
		return nil, &ValidationError{Operation: "add", Message: "cannot encode request body: " + err.Error()}
	}

	return p.req.Execute(ctx, "add", http.MethodPost, NewParams(), body)
}

// Delete removes a place previously added by this application that has not
// yet passed moderation.
func (p *Place) Delete(ctx context.Context, reference string) (*Response, error) {
	body, err := json.Marshal(map[string]string{"reference": reference})
	if err != nil {
		return nil, err
	}

	return p.req.Execute(ctx, "delete", http.MethodPost, NewParams(), body)
}
