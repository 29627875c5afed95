package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout is the HTTP timeout of the default transport.
const DefaultTimeout = 30 * time.Second

// Transport performs a single HTTP exchange. Implementations report
// connection level failures as errors; any HTTP status is a successful exchange.
type Transport interface {
	Perform(ctx context.Context, method, rawURL string, query url.Values, body []byte) (int, []byte, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, method, rawURL string, query url.Values, body []byte) (int, []byte, error)

func (f TransportFunc) Perform(ctx context.Context, method, rawURL string, query url.Values, body []byte) (int, []byte, error) {
	return f(ctx, method, rawURL, query, body)
}

var tracer = otel.Tracer("gplaces/places/http")

type requestIDKey struct{}

// HTTPTransport is the default Transport, backed by a resty client.
type HTTPTransport struct {
	http   *resty.Client
	logger arbor.ILogger
}

// NewHTTPTransport creates a resty backed transport. logger may be nil.
func NewHTTPTransport(timeout time.Duration, logger arbor.ILogger) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json, application/xml, image/*")

	t := &HTTPTransport{http: client, logger: logger}
	client.OnBeforeRequest(t.onBeforeRequest)
	client.OnAfterResponse(t.onAfterResponse)
	client.OnError(t.onError)
	return t
}

// Perform executes the request and returns the status code and the full body.
func (t *HTTPTransport) Perform(ctx context.Context, method, rawURL string, query url.Values, body []byte) (int, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := t.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	res, err := req.Execute(method, rawURL)
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode(), res.Body(), nil
}

func (t *HTTPTransport) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, span := tracer.Start(req.Context(), req.Method)
	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("places.request_id", requestID))
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)

	if t.logger != nil {
		t.logger.WithCorrelationId(requestID).Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("Places API request")
	}

	req.SetContext(ctx)
	return nil
}

func (t *HTTPTransport) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(
		attribute.String("http.method", res.Request.Method),
		attribute.String("http.url", redactKey(res.Request.URL)),
		attribute.Int("http.status_code", res.StatusCode()),
		attribute.Int("http.response_size", len(res.Body())),
	)
	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, res.Status())
	}

	if t.logger != nil {
		requestID, _ := ctx.Value(requestIDKey{}).(string)
		t.logger.WithCorrelationId(requestID).Debug().
			Str("method", res.Request.Method).
			Int("status", res.StatusCode()).
			Str("duration", res.Time().String()).
			Msg("Places API response")
	}
	return nil
}

func (t *HTTPTransport) onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if t.logger != nil {
		requestID, _ := ctx.Value(requestIDKey{}).(string)
		t.logger.WithCorrelationId(requestID).Error().
			Err(err).
			Str("method", req.Method).
			Str("url", redactKey(req.URL)).
			Msg("Places API request failed")
	}
}

// redactKey hides the api key in a URL before it is logged or traced.
func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "***REDACTED***")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
