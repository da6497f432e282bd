package twirp_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thingful/twirp-go/twirp"
)

// plainMessage is a minimal twirp.Message whose wire form is just its own
// bytes, used to exercise the codec without needing a real protobuf type.
type plainMessage struct {
	Value string
}

func (m *plainMessage) Marshal() ([]byte, error) {
	if m.Value == "fail-encode" {
		return nil, errors.New("boom")
	}
	return []byte(m.Value), nil
}

func (m *plainMessage) Unmarshal(data []byte) error {
	if string(data) == "fail-decode" {
		return errors.New("boom")
	}
	m.Value = string(data)
	return nil
}

func TestDecodeRequestRejectsWrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/twirp/x.Y/Z", nil)
	_, err := twirp.DecodeRequest(req, &plainMessage{})
	assert.Equal(t, twirp.ErrInvalidMethod, err)
}

func TestDecodeRequestRejectsWrongContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/twirp/x.Y/Z", nil)
	req.Header.Set("Content-Type", "application/json")
	_, err := twirp.DecodeRequest(req, &plainMessage{})
	assert.Equal(t, twirp.ErrInvalidContentType, err)
}

func TestEncodeDecodeRequestRoundTrip(t *testing.T) {
	input := &plainMessage{Value: "hello"}
	req := twirp.NewRequest[*plainMessage](input)

	httpReq, encErr := twirp.EncodeRequest(req, "http://example.com/twirp/x.Y/Z")
	assert.Nil(t, encErr)
	assert.Equal(t, twirp.ProtobufContentType, httpReq.Header.Get("Content-Type"))

	decoded, decErr := twirp.DecodeRequest(httpReq, &plainMessage{})
	assert.Nil(t, decErr)
	assert.Equal(t, "hello", decoded.Input.Value)
}

func TestWriteResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	resp := twirp.NewResponse[*plainMessage](&plainMessage{Value: "hat"})

	err := twirp.WriteResponse(rr, resp)
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, twirp.ProtobufContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "hat", rr.Body.String())
}

func TestWriteErrorSetsAllowHeaderForInvalidMethod(t *testing.T) {
	rr := httptest.NewRecorder()
	twirp.WriteError(rr, twirp.ErrInvalidMethod)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
	assert.JSONEq(t, `{"error_type":"bad_method","msg":"Method must be POST"}`, rr.Body.String())
}

func TestWriteErrorLeavesTransportErrorsUnwritten(t *testing.T) {
	rr := httptest.NewRecorder()
	twirp.WriteError(rr, twirp.TransportError(errors.New("connection reset")))

	assert.Equal(t, 0, rr.Body.Len())
	assert.Equal(t, "", rr.Header().Get("Content-Type"))
}
