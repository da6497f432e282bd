package twirp_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thingful/twirp-go/twirp"
)

func TestRPCErrorMarshalJSON(t *testing.T) {
	testcases := []struct {
		label    string
		err      *twirp.RPCError
		expected string
	}{
		{
			label:    "no meta",
			err:      twirp.NewRPCError(http.StatusNotFound, "not_found", "Not found"),
			expected: `{"error_type":"not_found","msg":"Not found"}`,
		},
		{
			label:    "with meta",
			err:      twirp.NewRPCErrorMeta(http.StatusBadRequest, "too_small", "Size too small", map[string]int{"min": 1, "max": 10}),
			expected: `{"error_type":"too_small","msg":"Size too small","meta":{"max":10,"min":1}}`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.label, func(t *testing.T) {
			b, err := testcase.err.MarshalJSON()
			assert.Nil(t, err)
			assert.JSONEq(t, testcase.expected, string(b))
		})
	}
}

func TestErrorFromJSON(t *testing.T) {
	testcases := []struct {
		label        string
		body         string
		expectedCode string
		expectedMsg  string
	}{
		{
			label:        "well formed",
			body:         `{"error_type":"not_found","msg":"Not found"}`,
			expectedCode: "not_found",
			expectedMsg:  "Not found",
		},
		{
			label:        "missing error_type",
			body:         `{"msg":"something broke"}`,
			expectedCode: "<no code>",
			expectedMsg:  "something broke",
		},
		{
			label:        "missing msg",
			body:         `{"error_type":"internal_err"}`,
			expectedCode: "internal_err",
			expectedMsg:  "<no message>",
		},
		{
			label:        "not even an object",
			body:         `"oops"`,
			expectedCode: "",
			expectedMsg:  "",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.label, func(t *testing.T) {
			rpcErr, err := twirp.ErrorFromJSON(http.StatusInternalServerError, []byte(testcase.body))
			if testcase.label == "not even an object" {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, testcase.expectedCode, rpcErr.Code)
			assert.Equal(t, testcase.expectedMsg, rpcErr.Msg)
		})
	}
}

func TestToTwirpResponseMapping(t *testing.T) {
	testcases := []struct {
		label          string
		err            *twirp.Error
		expectedStatus int
		expectedCode   string
	}{
		{"invalid method", twirp.ErrInvalidMethod, http.StatusMethodNotAllowed, "bad_method"},
		{"invalid content type", twirp.ErrInvalidContentType, http.StatusUnsupportedMediaType, "bad_content_type"},
		{"not found", twirp.ErrNotFound, http.StatusNotFound, "not_found"},
		{"decode error", twirp.DecodeError(assertErr{}), http.StatusBadRequest, "protobuf_decode_err"},
		{"transport error", twirp.TransportError(assertErr{}), http.StatusInternalServerError, "internal_err"},
		{"rpc error passthrough", twirp.FromRPCError(twirp.NewRPCError(http.StatusTeapot, "teapot", "I'm a teapot")), http.StatusTeapot, "teapot"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.label, func(t *testing.T) {
			resp := testcase.err.ToTwirpResponse()
			assert.Equal(t, testcase.expectedStatus, resp.Status)
			assert.Equal(t, testcase.expectedCode, resp.Code)
		})
	}
}

func TestRootUnwrapsAfterBodyChain(t *testing.T) {
	base := twirp.DecodeError(assertErr{})
	wrapped := base.AfterBody([]byte("body1"), "POST", 0, "HTTP/1.1", nil)
	doubleWrapped := wrapped.AfterBody([]byte("body2"), "POST", 0, "HTTP/1.1", nil)

	root := twirp.Root(doubleWrapped)
	assert.Equal(t, twirp.CodeDecode, root.Code)

	assert.Nil(t, twirp.Root(nil))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
