// Package places is a client for the Google Places web service.
//
// A Client holds the api key and response format and performs requests
// through an injectable Transport. The Search and Place types validate the
// parameters of each endpoint before any request is sent:
//
//	client, err := places.NewClient(apiKey)
//	if err != nil {
//		return err
//	}
//	resp, err := client.Search().Nearby(ctx, places.LatLng{Lat: -33.8670522, Lng: 151.1957362},
//		places.ParamsFrom("radius", 500, "type", "restaurant"))
//
// A non-200 HTTP status is not an error: the call returns a Response of kind
// KindNonSuccess. Check Response.IsEmpty before reading the payload.
package places
