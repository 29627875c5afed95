package places

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testAPIKey = "fakegoogleapikey"

// recordedCall captures one transport exchange.
type recordedCall struct {
	Method string
	URL    string
	Query  url.Values
	Body   []byte
}

// fakeTransport replies with a fixed status/body (or error) and records every call.
type fakeTransport struct {
	status int
	body   []byte
	err    error
	calls  []recordedCall
}

func (f *fakeTransport) Perform(ctx context.Context, method, rawURL string, query url.Values, body []byte) (int, []byte, error) {
	f.calls = append(f.calls, recordedCall{Method: method, URL: rawURL, Query: query, Body: body})
	if f.err != nil {
		return 0, nil, f.err
	}
	return f.status, f.body, nil
}

func (f *fakeTransport) lastCall(t *testing.T) recordedCall {
	t.Helper()
	require.NotEmpty(t, f.calls, "expected a transport call")
	return f.calls[len(f.calls)-1]
}

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// newTestClient builds a client whose transport answers 200 with fixture.
func newTestClient(t *testing.T, fixture string, opts ...ClientOption) (*Client, *fakeTransport) {
	t.Helper()
	transport := &fakeTransport{status: 200}
	if fixture != "" {
		transport.body = loadFixture(t, fixture)
	}
	opts = append([]ClientOption{WithTransport(transport)}, opts...)
	client, err := NewClient(testAPIKey, opts...)
	require.NoError(t, err)
	return client, transport
}
