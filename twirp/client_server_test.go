package twirp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thingful/twirp-go/twirp"
)

func echoServer() *twirp.Server {
	s := twirp.NewServer("/twirp/x.Echo/")
	s.Handle("Say", twirp.HandleMethod(
		func() *plainMessage { return new(plainMessage) },
		func(r *twirp.Request[*plainMessage]) (*twirp.Response[*plainMessage], *twirp.Error) {
			if r.Input.Value == "explode" {
				return nil, twirp.FromRPCError(twirp.NewRPCError(http.StatusBadRequest, "bad_input", "refused"))
			}
			return twirp.NewResponse[*plainMessage](&plainMessage{Value: "echo:" + r.Input.Value}), nil
		},
	))
	return s
}

func TestClientServerRoundTrip(t *testing.T) {
	srv := httptest.NewServer(echoServer())
	defer srv.Close()

	client := twirp.NewClient(srv.URL, http.DefaultClient)

	resp, err := twirp.Invoke[*plainMessage, *plainMessage](
		client, "twirp/x.Echo/Say",
		twirp.NewRequest[*plainMessage](&plainMessage{Value: "hi"}),
		func() *plainMessage { return new(plainMessage) },
	)

	assert.Nil(t, err)
	assert.Equal(t, "echo:hi", resp.Output.Value)
}

func TestClientServerErrorPath(t *testing.T) {
	srv := httptest.NewServer(echoServer())
	defer srv.Close()

	client := twirp.NewClient(srv.URL, http.DefaultClient)

	_, err := twirp.Invoke[*plainMessage, *plainMessage](
		client, "twirp/x.Echo/Say",
		twirp.NewRequest[*plainMessage](&plainMessage{Value: "explode"}),
		func() *plainMessage { return new(plainMessage) },
	)

	assert.NotNil(t, err)
	root := twirp.Root(err)
	assert.Equal(t, twirp.CodeRPC, root.Code)
	assert.Equal(t, "bad_input", root.RPC.Code)
}

func TestClientInvalidURI(t *testing.T) {
	client := twirp.NewClient("http://example.invalid", http.DefaultClient)

	_, err := twirp.Invoke[*plainMessage, *plainMessage](
		client, "twirp/x.Echo/%zz",
		twirp.NewRequest[*plainMessage](&plainMessage{Value: "hi"}),
		func() *plainMessage { return new(plainMessage) },
	)

	assert.NotNil(t, err)
	assert.Equal(t, twirp.CodeInvalidURI, err.Code)
}

func TestClientServerNotFound(t *testing.T) {
	srv := httptest.NewServer(echoServer())
	defer srv.Close()

	client := twirp.NewClient(srv.URL, http.DefaultClient)

	_, err := twirp.Invoke[*plainMessage, *plainMessage](
		client, "twirp/x.Echo/Nope",
		twirp.NewRequest[*plainMessage](&plainMessage{Value: "hi"}),
		func() *plainMessage { return new(plainMessage) },
	)

	assert.NotNil(t, err)
	assert.Equal(t, twirp.CodeRPC, twirp.Root(err).Code)
	assert.Equal(t, "not_found", twirp.Root(err).RPC.Code)
}
