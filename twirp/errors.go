package twirp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RPCError is the application-visible RPC failure: a small, fixed JSON
// schema carried over the wire as the body of a non-2xx response.
type RPCError struct {
	Status int
	Code   string // error_type on the wire
	Msg    string
	Meta   json.RawMessage // optional; omitted from the wire form if nil
}

// NewRPCError builds an RPCError with no meta.
func NewRPCError(status int, code, msg string) *RPCError {
	return &RPCError{Status: status, Code: code, Msg: msg}
}

// NewRPCErrorMeta builds an RPCError with a meta value that will be
// marshaled to JSON on the wire. If marshaling meta fails, the error is
// built without it.
func NewRPCErrorMeta(status int, code, msg string, meta interface{}) *RPCError {
	e := NewRPCError(status, code, msg)
	if meta != nil {
		if raw, err := json.Marshal(meta); err == nil {
			e.Meta = raw
		}
	}
	return e
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("twirp error %d %s: %s", e.Status, e.Code, e.Msg)
}

type rpcErrorJSON struct {
	ErrorType string          `json:"error_type"`
	Msg       string          `json:"msg"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

// MarshalJSON renders the fixed Twirp error schema: error_type, msg, and an
// optional meta. Status is never part of the wire form; it is carried as
// the surrounding HTTP status code.
func (e *RPCError) MarshalJSON() ([]byte, error) {
	return json.Marshal(rpcErrorJSON{
		ErrorType: e.Code,
		Msg:       e.Msg,
		Meta:      e.Meta,
	})
}

// ErrorFromJSON decodes a Twirp error JSON document received with the given
// HTTP status. Decoding is lenient: a missing error_type becomes "<no
// code>"; a missing msg becomes "<no message>"; when error_type was absent
// the entire original JSON object is preserved as Meta so nothing is lost
// for diagnostics, otherwise Meta is taken from the meta field if present.
func ErrorFromJSON(status int, body []byte) (*RPCError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	e := &RPCError{Status: status, Code: "<no code>", Msg: "<no message>"}

	var hadCode bool
	if v, ok := raw["error_type"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			e.Code = s
			hadCode = true
		}
	}
	if v, ok := raw["msg"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			e.Msg = s
		}
	}

	if !hadCode {
		e.Meta = body
	} else if v, ok := raw["meta"]; ok {
		e.Meta = v
	}

	return e, nil
}

// ErrorCode discriminates the closed set of reasons an RPC call can fail
// (ProstTwirpError in the design this runtime is modeled on).
type ErrorCode string

const (
	// CodeRPC marks a valid Twirp-shaped failure, raised by user code or
	// decoded from a remote response. Error.RPC is populated.
	CodeRPC ErrorCode = "rpc"
	// CodeEncode marks a failure to serialize a message to bytes.
	CodeEncode ErrorCode = "encode"
	// CodeDecode marks a failure to parse a message from bytes.
	CodeDecode ErrorCode = "decode"
	// CodeJSONDecode marks an error response body that was not valid JSON.
	CodeJSONDecode ErrorCode = "json_decode"
	// CodeTransport marks an underlying HTTP transport failure.
	CodeTransport ErrorCode = "transport"
	// CodeHTTP marks a failure building an HTTP request/response value.
	CodeHTTP ErrorCode = "http"
	// CodeInvalidURI marks a computed URL that failed to parse.
	CodeInvalidURI ErrorCode = "invalid_uri"
	// CodeInvalidMethod marks a request whose method was not POST.
	CodeInvalidMethod ErrorCode = "invalid_method"
	// CodeInvalidContentType marks a request whose Content-Type was not
	// application/protobuf.
	CodeInvalidContentType ErrorCode = "invalid_content_type"
	// CodeNotFound marks a path that matched no method of the service.
	CodeNotFound ErrorCode = "not_found"
)

// Error is the runtime's closed error taxonomy. Every failure on the client
// or server path is one of these, discriminated by Code. It corresponds to
// ProstTwirpError in the design this runtime is modeled on, including its
// "AfterBodyError" wrapping: a decode failure that happened after the wire
// body was already read still carries that body (and direction-dependent
// metadata) so a caller can inspect what was actually received.
type Error struct {
	Code ErrorCode

	// RPC is populated when Code == CodeRPC.
	RPC *RPCError

	// The following fields are populated when this error was produced
	// after a wire body had been read (the AfterBodyError case): Body is
	// the raw bytes received, Method is set server-side, Status is set
	// client-side (zero otherwise), Proto and Header describe the
	// request/response the body came from.
	Body      []byte
	Method    string
	Status    int
	Proto     string
	Header    http.Header
	afterBody bool

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == CodeRPC && e.RPC != nil {
		return e.RPC.Error()
	}
	if e.cause != nil {
		return fmt.Sprintf("twirp: %s: %v", e.Code, e.cause)
	}
	return fmt.Sprintf("twirp: %s", e.Code)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// newError builds a bare *Error of the given code wrapping cause.
func newError(code ErrorCode, cause error) *Error {
	return &Error{Code: code, cause: cause}
}

// EncodeError wraps a message-serialization failure.
func EncodeError(cause error) *Error { return newError(CodeEncode, cause) }

// DecodeError wraps a message-parse failure.
func DecodeError(cause error) *Error { return newError(CodeDecode, cause) }

// JSONDecodeError wraps a failure to parse an error response body as JSON.
func JSONDecodeError(cause error) *Error { return newError(CodeJSONDecode, cause) }

// TransportError wraps an underlying HTTP transport failure.
func TransportError(cause error) *Error { return newError(CodeTransport, cause) }

// HTTPError wraps a failure building an HTTP request/response value.
func HTTPError(cause error) *Error { return newError(CodeHTTP, cause) }

// InvalidURIError wraps a URL-parse failure.
func InvalidURIError(cause error) *Error { return newError(CodeInvalidURI, cause) }

// ErrInvalidMethod is returned when a request's method was not POST.
var ErrInvalidMethod = &Error{Code: CodeInvalidMethod}

// ErrInvalidContentType is returned when a request's Content-Type was not
// application/protobuf.
var ErrInvalidContentType = &Error{Code: CodeInvalidContentType}

// ErrNotFound is returned when a path matched no method of a service.
var ErrNotFound = &Error{Code: CodeNotFound}

// FromRPCError wraps a valid Twirp-shaped failure, either raised directly by
// user code or decoded from a remote response.
func FromRPCError(rpc *RPCError) *Error {
	return &Error{Code: CodeRPC, RPC: rpc, cause: rpc}
}

// AfterBody returns a copy of e with wire-body diagnostic context attached:
// the raw bytes that were read before e occurred, plus whichever of
// method/status/proto/header apply to the direction this error occurred in.
func (e *Error) AfterBody(body []byte, method string, status int, proto string, header http.Header) *Error {
	wrapped := *e
	wrapped.afterBody = true
	wrapped.cause = e
	wrapped.Body = body
	wrapped.Method = method
	wrapped.Status = status
	wrapped.Proto = proto
	wrapped.Header = header
	return &wrapped
}

// Root returns the innermost non-AfterBody *Error beneath err, or nil if err
// is not itself a *Error (other error types wrapping a *Error are not
// searched). This is the canonical way a caller
// classifies "what really went wrong", per spec.md's root_err.
func Root(err error) *Error {
	e, ok := err.(*Error)
	if !ok {
		return nil
	}
	for e.afterBody {
		inner, ok := e.cause.(*Error)
		if !ok {
			return e
		}
		e = inner
	}
	return e
}

// ToTwirpResponse translates an Error raised on the server path into the
// fixed-schema Twirp JSON error it should be reported as, following the
// status-code mapping table in spec.md §6. An explicit CodeRPC error is
// reported as given; everything else becomes one of the internally-defined
// errors below.
func (e *Error) ToTwirpResponse() *RPCError {
	root := Root(e)
	if root == nil {
		return NewRPCError(http.StatusInternalServerError, "internal_err", "Internal error")
	}

	switch root.Code {
	case CodeRPC:
		return root.RPC
	case CodeInvalidMethod:
		return NewRPCError(http.StatusMethodNotAllowed, "bad_method", "Method must be POST")
	case CodeInvalidContentType:
		return NewRPCError(http.StatusUnsupportedMediaType, "bad_content_type", "Content type must be application/protobuf")
	case CodeDecode:
		return NewRPCError(http.StatusBadRequest, "protobuf_decode_err", "Invalid protobuf body")
	case CodeNotFound:
		return NewRPCError(http.StatusNotFound, "not_found", "The requested method was not found")
	default:
		return NewRPCError(http.StatusInternalServerError, "internal_err", "Internal error")
	}
}
