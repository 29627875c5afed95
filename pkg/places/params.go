package places

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an ordered set of request parameters. Insertion order is kept so
// JSON request bodies are emitted in the order fields were added.
//
// A nil *Params behaves as an empty set for reads and Delete. The zero
// Params is ready to use; Set on a nil *Params panics.
type Params struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{m: orderedmap.New[string, any]()}
}

// ParamsFrom builds a parameter set from alternating key/value pairs.
// A trailing key without a value is ignored.
func ParamsFrom(kv ...any) *Params {
	p := NewParams()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Set stores value under key. An existing key keeps its position.
func (p *Params) Set(key string, value any) *Params {
	if p.m == nil {
		p.m = orderedmap.New[string, any]()
	}
	p.m.Set(key, value)
	return p
}

// Get returns the raw value stored under key.
func (p *Params) Get(key string) (any, bool) {
	if p == nil || p.m == nil {
		return nil, false
	}
	return p.m.Get(key)
}

// GetString returns the value under key rendered as a query string value,
// or def when the key is not present.
func (p *Params) GetString(key, def string) string {
	if !p.Has(key) {
		return def
	}
	v, _ := p.Get(key)
	return formatValue(v)
}

// Has reports whether key is set to a non-nil value. An empty string is present.
func (p *Params) Has(key string) bool {
	v, ok := p.Get(key)
	return ok && v != nil
}

// HasAny reports whether at least one of keys is present.
func (p *Params) HasAny(keys ...string) bool {
	for _, k := range keys {
		if p.Has(k) {
			return true
		}
	}
	return false
}

// SetDefault stores value under key only when key is not present.
func (p *Params) SetDefault(key string, value any) *Params {
	if !p.Has(key) {
		p.Set(key, value)
	}
	return p
}

// Delete removes key.
func (p *Params) Delete(key string) {
	if p == nil || p.m == nil {
		return
	}
	p.m.Delete(key)
}

// Len returns the number of stored keys.
func (p *Params) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil || p.m == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Clone returns an independent copy. Cloning a nil *Params yields an empty set.
func (p *Params) Clone() *Params {
	out := NewParams()
	if p == nil || p.m == nil {
		return out
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out.m.Set(pair.Key, pair.Value)
	}
	return out
}

// Values renders the parameters as query values. Nil entries are skipped.
func (p *Params) Values() url.Values {
	values := url.Values{}
	if p == nil || p.m == nil {
		return values
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			continue
		}
		values.Set(pair.Key, formatValue(pair.Value))
	}
	return values
}

// MarshalJSON emits the parameters as a JSON object in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p == nil || p.m == nil {
		return []byte("{}"), nil
	}
	return p.m.MarshalJSON()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case []string:
		return strings.Join(val, "|")
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseLatLng parses the "lat,lng" form produced by LatLng.String.
func ParseLatLng(s string) (LatLng, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return LatLng{}, fmt.Errorf("invalid location %q: expected lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

// String renders the coordinate as "lat,lng", the form the search endpoints expect.
func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
