package twirp

import "net/http"

// ProtobufContentType is the only Content-Type this runtime's request codec
// accepts or produces for RPC payloads. Error responses are always JSON (see
// errors.go); the JSON wire variant of application payloads is not
// implemented (see DESIGN.md).
const ProtobufContentType = "application/protobuf"

// Message is the capability the wire runtime needs from an application
// payload type: length-delimited protobuf encode/decode. Generated request
// and response message types satisfy it trivially; see example/haberdasher
// for a hand-written instance.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// RawBytes is the "raw byte sequence" specialization of a Request/Response
// payload mentioned in spec.md: a Message that is just its own wire bytes.
// Server and HandleMethod do not use it; they decode straight into the
// concrete input type of the routed method.
type RawBytes []byte

// Marshal implements Message.
func (b RawBytes) Marshal() ([]byte, error) { return b, nil }

// Unmarshal implements Message.
func (b *RawBytes) Unmarshal(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}

// Request is a typed RPC call on the wire: HTTP metadata plus a payload.
//
// On the server side URI is the path the request was routed on; on the
// client side it is not read: Invoke sends to the URL it computes from the
// Client's RootURL and the method path, and leaves URI unchanged.
type Request[M Message] struct {
	URI    string
	Method string
	Proto  string
	Header http.Header
	Input  M
}

// NewRequest builds a Request wrapping the given payload, with Method always
// POST, Header always carrying Content-Type: application/protobuf, and a
// zero-value URI (callers invoking through Client never need to set it).
func NewRequest[M Message](input M) *Request[M] {
	h := make(http.Header)
	h.Set("Content-Type", ProtobufContentType)
	return &Request[M]{
		Method: http.MethodPost,
		Header: h,
		Input:  input,
	}
}

// WithInput copies r's metadata (URI, Method, Proto, Header) onto a new
// Request carrying a different, possibly differently-typed, payload, e.g. to
// turn a RawBytes request into one carrying a concrete message type.
func WithInput[M Message, N Message](r *Request[M], input N) *Request[N] {
	return &Request[N]{
		URI:    r.URI,
		Method: r.Method,
		Proto:  r.Proto,
		Header: r.Header.Clone(),
		Input:  input,
	}
}

// Response is the symmetric counterpart of Request: HTTP metadata plus a
// payload, with a default status of 200 OK.
type Response[M Message] struct {
	Proto  string
	Header http.Header
	Status int
	Output M
}

// NewResponse builds a Response wrapping the given payload, with Status 200
// and Header carrying Content-Type: application/protobuf.
func NewResponse[M Message](output M) *Response[M] {
	h := make(http.Header)
	h.Set("Content-Type", ProtobufContentType)
	return &Response[M]{
		Status: http.StatusOK,
		Header: h,
		Output: output,
	}
}

// WithOutput copies resp's metadata onto a new Response carrying a
// different, possibly differently-typed, output payload.
func WithOutput[M Message, N Message](resp *Response[M], output N) *Response[N] {
	return &Response[N]{
		Proto:  resp.Proto,
		Header: resp.Header.Clone(),
		Status: resp.Status,
		Output: output,
	}
}
