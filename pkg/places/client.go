package places

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

const (
	// DefaultURLTemplate is the endpoint template of the Places web service.
	DefaultURLTemplate = "https://maps.googleapis.com/maps/api/place/{cmd}/{format}"

	// DefaultLanguage is used when an operation is called without a language.
	DefaultLanguage = "en"
)

// Format is the response serialization requested from the service.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// DecodeMode selects how JSON bodies are decoded.
type DecodeMode int

const (
	// DecodeTyped decodes JSON into a *Record.
	DecodeTyped DecodeMode = iota
	// DecodeMap decodes JSON into a map[string]any.
	DecodeMap
)

// Requester is the request building capability the operation groups are composed over.
type Requester interface {
	Execute(ctx context.Context, command, method string, query *Params, body []byte) (*Response, error)
	FetchRaw(ctx context.Context, command string, query *Params) ([]byte, error)
}

type clientConfig struct {
	APIKey string `json:"api_key" validate:"required"`
	Format Format `json:"format" validate:"required,oneof=json xml"`
}

// Client holds the credentials and format shared by every Places call and
// performs the HTTP exchange through a Transport.
type Client struct {
	apiKey      string
	format      Format
	urlTemplate string
	decodeMode  DecodeMode
	logger      arbor.ILogger
	timeout     time.Duration

	transportOnce sync.Once
	transport     Transport
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithFormat sets the response format. Defaults to FormatJSON.
func WithFormat(format Format) ClientOption {
	return func(c *Client) {
		c.format = format
	}
}

// WithTransport injects the transport used for every call.
func WithTransport(transport Transport) ClientOption {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithURLTemplate overrides the endpoint template. It must contain {cmd} and
// should contain {format}.
func WithURLTemplate(template string) ClientOption {
	return func(c *Client) {
		c.urlTemplate = template
	}
}

// WithDecodeMode selects typed or map decoding of JSON bodies.
func WithDecodeMode(mode DecodeMode) ClientOption {
	return func(c *Client) {
		c.decodeMode = mode
	}
}

// WithHTTPTimeout sets the timeout of the default transport. It has no effect
// when a transport is injected.
func WithHTTPTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a Places client. The api key is required; the format
// defaults to json and must be json or xml.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		apiKey:      apiKey,
		format:      FormatJSON,
		urlTemplate: DefaultURLTemplate,
		decodeMode:  DecodeTyped,
		timeout:     DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validate.Struct(clientConfig{APIKey: c.apiKey, Format: c.format}); err != nil {
		return nil, configErrorFrom(err)
	}
	if c.urlTemplate == "" {
		return nil, &ConfigError{Field: "url_template", Message: "cannot be empty"}
	}

	return c, nil
}

// Format returns the configured response format.
func (c *Client) Format() Format {
	return c.format
}

// ForceMapResponse switches JSON decoding to generic maps, the same as
// passing WithDecodeMode(DecodeMap) to NewClient.
func (c *Client) ForceMapResponse() {
	c.decodeMode = DecodeMap
}

// Search returns the search operations bound to this client.
func (c *Client) Search() *Search {
	return NewSearch(c)
}

// Places returns the place operations bound to this client.
func (c *Client) Places() *Place {
	return NewPlace(c)
}

// BuildURL resolves command into a full endpoint URL.
func (c *Client) BuildURL(command string) string {
	return strings.NewReplacer("{cmd}", command, "{format}", string(c.format)).Replace(c.urlTemplate)
}

// rawURL resolves command into an endpoint URL without the format segment.
func (c *Client) rawURL(command string) string {
	template := strings.Replace(c.urlTemplate, "/{format}", "", 1)
	return strings.Replace(template, "{cmd}", command, 1)
}

// Execute sends query (with the api key merged in, overriding any caller
// supplied key) and body to command, and decodes a 200 response.
//
// Any other status yields a Response of kind KindNonSuccess and a nil error:
// callers cannot tell "not found" from a server error at this layer.
func (c *Client) Execute(ctx context.Context, command, method string, query *Params, body []byte) (*Response, error) {
	q := query.Clone()
	q.Set("key", c.apiKey)
	endpoint := c.BuildURL(command)

	c.debug(command, method, endpoint)

	status, respBody, err := c.getTransport().Perform(ctx, method, endpoint, q.Values(), body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: endpoint, Err: err}
	}

	if status != http.StatusOK {
		if c.logger != nil {
			c.logger.Warn().
				Str("command", command).
				Int("status", status).
				Msg("Places API returned non-success status, discarding body")
		}
		return &Response{Kind: KindNonSuccess, StatusCode: status}, nil
	}

	resp, err := c.Decode(respBody)
	if err != nil {
		return nil, err
	}
	resp.StatusCode = status
	return resp, nil
}

// Decode parses body according to the configured format and decode mode.
func (c *Client) Decode(body []byte) (*Response, error) {
	if c.format == FormatXML {
		return decodeXML(body)
	}
	return decodeJSON(body, c.decodeMode)
}

// FetchRaw issues a GET to command on the format-less endpoint and returns the
// body as is. The status code is not inspected.
func (c *Client) FetchRaw(ctx context.Context, command string, query *Params) ([]byte, error) {
	q := query.Clone()
	q.Set("key", c.apiKey)
	endpoint := c.rawURL(command)

	c.debug(command, http.MethodGet, endpoint)

	status, body, err := c.getTransport().Perform(ctx, http.MethodGet, endpoint, q.Values(), nil)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: endpoint, Err: err}
	}
	if status != http.StatusOK && c.logger != nil {
		c.logger.Warn().
			Str("command", command).
			Int("status", status).
			Msg("Places API returned non-success status for raw fetch")
	}
	return body, nil
}

func (c *Client) getTransport() Transport {
	c.transportOnce.Do(func() {
		if c.transport == nil {
			c.transport = NewHTTPTransport(c.timeout, c.logger)
		}
	})
	return c.transport
}

func (c *Client) debug(command, method, endpoint string) {
	if c.logger == nil {
		return
	}
	c.logger.Debug().
		Str("command", command).
		Str("method", method).
		Str("url", endpoint).
		Str("format", string(c.format)).
		Msg("Calling Places API")
}
