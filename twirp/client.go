package twirp

import (
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient is the subset of *http.Client a Client needs. Generated client
// constructors accept this so callers can supply a client configured not to
// follow redirects, the way a real Twirp HTTP client must (see
// withoutRedirects in the generated code this runtime models itself on).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client dispatches RPCs against a single Twirp service mounted under
// RootURL. Generated client stubs hold one of these and call Invoke once per
// method, supplying the full wire path (package.Service/Method) and the
// typed request/response pair. Grounded on HyperClient in
// original_source/src/service_run.rs.
type Client struct {
	RootURL string
	HTTP    HTTPClient
}

// NewClient builds a Client against rootURL, trimming any trailing slash so
// that path joining below never produces a doubled "//".
func NewClient(rootURL string, httpClient HTTPClient) *Client {
	return &Client{
		RootURL: strings.TrimRight(rootURL, "/"),
		HTTP:    httpClient,
	}
}

// Invoke performs a single RPC: it builds the request URI from the client's
// RootURL and the given wire path, encodes req, sends it, and decodes the
// response into a Response wrapping a fresh zero value of the output type.
//
// path is the Twirp method path without a leading slash, e.g.
// "twirp/haberdasher.Haberdasher/MakeHat".
func Invoke[In Message, Out Message](c *Client, path string, req *Request[In], newOutput func() Out) (*Response[Out], *Error) {
	uri := c.RootURL + "/" + strings.TrimLeft(path, "/")

	if _, err := url.Parse(uri); err != nil {
		return nil, InvalidURIError(err)
	}

	httpReq, encErr := EncodeRequest(req, uri)
	if encErr != nil {
		return nil, encErr
	}

	httpResp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, TransportError(err)
	}
	defer httpResp.Body.Close()

	return DecodeResponse(httpResp, newOutput())
}
