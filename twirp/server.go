package twirp

import (
	"net/http"
	"strings"
)

// Server is a generic Twirp server dispatcher: it routes an incoming request
// by the path segment after Prefix to the method handler registered for it,
// answering unknown paths with the fixed not_found Twirp error. Translating a
// method's *Error into a Twirp JSON error response is done by the handler
// itself (HandleMethod calls WriteError). Generated server stubs build one
// of these in their constructor and register one handler per RPC method.
// Grounded on HyperServer/HyperService in
// original_source/src/service_run.rs.
type Server struct {
	// Prefix is the path every method of this service is mounted under,
	// e.g. "/twirp/haberdasher.Haberdasher/".
	Prefix  string
	methods map[string]http.HandlerFunc
}

// NewServer builds a Server with no methods registered yet.
func NewServer(prefix string) *Server {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Server{
		Prefix:  prefix,
		methods: make(map[string]http.HandlerFunc),
	}
}

// Handle registers the handler for one RPC method, named by its proto method
// name (the last path segment, e.g. "MakeHat").
func (s *Server) Handle(method string, h http.HandlerFunc) {
	s.methods[method] = h
}

// ServeHTTP implements http.Handler. A path outside Prefix or naming no
// registered method yields the fixed not_found Twirp error; everything past
// that is delegated to the registered handler, which is expected to call
// WriteResponse or WriteError itself.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, s.Prefix) {
		WriteError(w, ErrNotFound)
		return
	}

	method := strings.TrimPrefix(r.URL.Path, s.Prefix)
	h, ok := s.methods[method]
	if !ok {
		WriteError(w, ErrNotFound)
		return
	}

	h(w, r)
}

// WriteError translates err into the fixed-schema Twirp JSON error response
// and writes it to w, following the status-code mapping table in spec.md §6.
// An InvalidMethod error additionally carries an Allow: POST header, per the
// HTTP spec's requirement for 405 responses.
//
// A CodeTransport error is not translated: WriteError writes nothing for it
// (no header, no body), since reading or writing the HTTP body itself
// already failed and the connection is in no state to carry a synthesized
// JSON response. This
// mirrors original_source/src/service_run.rs, where a HyperError from
// from_hyper_request propagates straight out instead of going through
// into_hyper_response's Twirp JSON translation.
func WriteError(w http.ResponseWriter, err *Error) {
	if root := Root(err); root != nil && root.Code == CodeTransport {
		return
	}

	rpcErr := err.ToTwirpResponse()

	body, marshalErr := rpcErr.MarshalJSON()
	if marshalErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error_type":"internal_err","msg":"Internal error"}`))
		return
	}

	if Root(err) != nil && Root(err).Code == CodeInvalidMethod {
		w.Header().Set("Allow", http.MethodPost)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rpcErr.Status)
	w.Write(body)
}

// HandleMethod is the shape a generated per-method server handler takes:
// decode the typed request, run the service implementation, and write
// either the typed response or the resulting error. Generated code wires
// this through Server.Handle via a thin closure capturing the concrete
// input/output types; it is exposed here so hand-written services (see
// example/haberdasher) can build handlers the same way generated ones do.
func HandleMethod[In Message, Out Message](newInput func() In, call func(r *Request[In]) (*Response[Out], *Error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := DecodeRequest(r, newInput())
		if err != nil {
			WriteError(w, err)
			return
		}

		resp, err := call(req)
		if err != nil {
			WriteError(w, err)
			return
		}

		if err := WriteResponse(w, resp); err != nil {
			WriteError(w, err)
		}
	}
}
