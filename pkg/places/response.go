package places

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
)

// ResponseKind identifies which payload a Response carries.
type ResponseKind int

const (
	// KindNonSuccess means the service answered with a status other than 200.
	// The body is not decoded and no payload is set.
	KindNonSuccess ResponseKind = iota
	// KindRecord carries a typed Record decoded from JSON.
	KindRecord
	// KindMap carries a generic map decoded from JSON.
	KindMap
	// KindDocument carries an XML document tree.
	KindDocument
)

func (k ResponseKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindMap:
		return "map"
	case KindDocument:
		return "document"
	default:
		return "non_success"
	}
}

// Response is the decoded result of a Places call.
type Response struct {
	Kind       ResponseKind
	StatusCode int
	Record     *Record
	Map        map[string]any
	Document   *Node
	raw        []byte
}

// IsEmpty reports whether the call produced no payload, which happens for any
// non-200 HTTP status.
func (r *Response) IsEmpty() bool {
	return r == nil || r.Kind == KindNonSuccess
}

// Raw returns the undecoded body. It is nil for non-success responses.
func (r *Response) Raw() []byte {
	if r == nil {
		return nil
	}
	return r.raw
}

// Status returns the service level status ("OK", "ZERO_RESULTS", ...) whatever the payload kind.
func (r *Response) Status() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case KindRecord:
		return r.Record.Status
	case KindMap:
		s, _ := r.Map["status"].(string)
		return s
	case KindDocument:
		return r.Document.ChildText("status")
	default:
		return ""
	}
}

// Lookup evaluates a gjson path (for example "result.formatted_address")
// against a JSON body. Non-JSON responses always yield an empty result.
func (r *Response) Lookup(path string) gjson.Result {
	if r == nil || (r.Kind != KindRecord && r.Kind != KindMap) {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.raw, path)
}

// Record is the typed envelope shared by the Places JSON endpoints.
type Record struct {
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	HTMLAttributions []string      `json:"html_attributions,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
	Results          []PlaceResult `json:"results,omitempty"`
	Result           *PlaceResult  `json:"result,omitempty"`
	Predictions      []Prediction  `json:"predictions,omitempty"`

	// Returned by the add endpoint.
	PlaceID   string `json:"place_id,omitempty"`
	ID        string `json:"id,omitempty"`
	Reference string `json:"reference,omitempty"`
	Scope     string `json:"scope,omitempty"`
}

// PlaceResult is a single place as returned by the search and details endpoints.
type PlaceResult struct {
	AddressComponents    []AddressComponent `json:"address_components,omitempty"`
	BusinessStatus       string             `json:"business_status,omitempty"`
	FormattedAddress     string             `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string             `json:"formatted_phone_number,omitempty"`
	Geometry             *Geometry          `json:"geometry,omitempty"`
	Icon                 string             `json:"icon,omitempty"`
	ID                   string             `json:"id,omitempty"`
	InternationalPhone   string             `json:"international_phone_number,omitempty"`
	Name                 string             `json:"name"`
	OpeningHours         *OpeningHours      `json:"opening_hours,omitempty"`
	Photos               []Photo            `json:"photos,omitempty"`
	PlaceID              string             `json:"place_id,omitempty"`
	PlusCode             *PlusCode          `json:"plus_code,omitempty"`
	PriceLevel           int                `json:"price_level,omitempty"`
	Rating               float64            `json:"rating,omitempty"`
	Reference            string             `json:"reference,omitempty"`
	Reviews              []Review           `json:"reviews,omitempty"`
	Scope                string             `json:"scope,omitempty"`
	Types                []string           `json:"types,omitempty"`
	URL                  string             `json:"url,omitempty"`
	UserRatingsTotal     int                `json:"user_ratings_total,omitempty"`
	UTCOffset            int                `json:"utc_offset,omitempty"`
	Vicinity             string             `json:"vicinity,omitempty"`
	Website              string             `json:"website,omitempty"`
}

// AddressComponent is one part of a structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geometry holds the location and viewport of a place.
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
	Viewport *Bounds `json:"viewport,omitempty"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	Northeast *LatLng `json:"northeast,omitempty"`
	Southwest *LatLng `json:"southwest,omitempty"`
}

// OpeningHours describes when a place is open.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	Periods     []Period `json:"periods,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Period is a single opening period.
type Period struct {
	Open  *DayTime `json:"open,omitempty"`
	Close *DayTime `json:"close,omitempty"`
}

// DayTime is a day of week (0 = Sunday) and a 24h "hhmm" time.
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Photo references an image retrievable through Place.Photo.
type Photo struct {
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
}

// PlusCode is an Open Location Code.
type PlusCode struct {
	CompoundCode string `json:"compound_code,omitempty"`
	GlobalCode   string `json:"global_code,omitempty"`
}

// Review is a user review attached to place details.
type Review struct {
	AuthorName string `json:"author_name"`
	AuthorURL  string `json:"author_url,omitempty"`
	Language   string `json:"language,omitempty"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
}

// Prediction is an autocomplete suggestion.
type Prediction struct {
	Description       string             `json:"description"`
	ID                string             `json:"id,omitempty"`
	PlaceID           string             `json:"place_id,omitempty"`
	Reference         string             `json:"reference,omitempty"`
	Types             []string           `json:"types,omitempty"`
	MatchedSubstrings []MatchedSubstring `json:"matched_substrings,omitempty"`
	Terms             []Term             `json:"terms,omitempty"`
}

// MatchedSubstring marks where the input matched a prediction.
type MatchedSubstring struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

// Term is one segment of a prediction description.
type Term struct {
	Offset int    `json:"offset"`
	Value  string `json:"value"`
}

// Node is a generic XML element.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*Node    `xml:",any"`
}

// Name returns the local element name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.XMLName.Local
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find walks down the tree following path and returns the first matching element.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur == nil {
			return nil
		}
		var next *Node
		for _, child := range cur.Children {
			if child.XMLName.Local == name {
				next = child
				break
			}
		}
		cur = next
	}
	return cur
}

// FindAll returns every direct child named name.
func (n *Node) FindAll(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		if child.XMLName.Local == name {
			out = append(out, child)
		}
	}
	return out
}

// ChildText returns the trimmed text of the element found at path, or "".
func (n *Node) ChildText(path ...string) string {
	found := n.Find(path...)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text)
}

func decodeJSON(body []byte, mode DecodeMode) (*Response, error) {
	switch mode {
	case DecodeMap:
		var m map[string]any
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, &ParseError{Format: FormatJSON, Err: err}
		}
		return &Response{Kind: KindMap, Map: m, raw: body}, nil
	case DecodeTyped:
		// A field whose type differs from Record is not a parse failure: the
		// rest of the record is still filled and Lookup reads the raw body.
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, &ParseError{Format: FormatJSON, Err: err}
			}
		}
		return &Response{Kind: KindRecord, Record: &rec, raw: body}, nil
	default:
		return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("unknown decode mode %d", mode)}
	}
}

func decodeXML(body []byte) (*Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var root Node
	if err := dec.Decode(&root); err != nil {
		return nil, &ParseError{Format: FormatXML, Err: err}
	}

	// only whitespace, comments and processing instructions may follow the root
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatXML, Err: err}
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, &ParseError{Format: FormatXML, Err: errors.New("unexpected text after root element")}
			}
		default:
			return nil, &ParseError{Format: FormatXML, Err: fmt.Errorf("unexpected %T after root element", tok)}
		}
	}

	return &Response{Kind: KindDocument, Document: &root, raw: body}, nil
}
