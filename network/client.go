// Package network provides the HTTP clients used to reach the feed and the board API.
package network

import (
	"net/http"
	"time"

	"github.com/vonZeppelin/tvshowl/constant"
)

// Client is the shared default client.
var Client = New(time.Minute)

// New returns a client with the given overall timeout and the application User-Agent.
// The timeout is the only deadline; the transport sets none of its own for responses.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgent{base: newTransport()},
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	return t
}

// userAgent fills in the User-Agent header when the caller did not set one.
type userAgent struct {
	base http.RoundTripper
}

func (t *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(r)
}
