package provider

import (
	"io"
	"net/http"
)

// Transport turns 4xx and 5xx responses into an *Error that carries the raw
// response body. SDK clients that decode error bodies themselves would
// otherwise replace a non-JSON body with their own decode error.
type Transport struct {
	Provider string
	Base     http.RoundTripper // default: http.DefaultTransport
}

// HTTPClient returns a client whose failures are reported as *Error for name.
func HTTPClient(name string) *http.Client {
	return &http.Client{Transport: &Transport{Provider: name}}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return nil, &Error{Provider: t.Provider, StatusCode: resp.StatusCode, Body: string(body)}
}
