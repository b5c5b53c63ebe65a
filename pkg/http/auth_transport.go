package http

import "net/http"

// headerTransport sets a header on requests that don't carry their own value for it
type headerTransport struct {
	key       string
	value     string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.value == "" || req.Header.Get(t.key) != "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(t.key, t.value)

	return t.transport.RoundTrip(reqCopy)
}

// WithDefaultHeader sets key on every request that has no value for it. An empty value is a no-op.
func WithDefaultHeader(key, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			key:       key,
			value:     value,
			transport: rt,
		}
	})
}

// WithAuthToken authorizes requests with a bearer token
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return WithDefaultHeader("Authorization", "")
	}
	return WithDefaultHeader("Authorization", "Bearer "+token)
}
