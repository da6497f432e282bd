package twirp

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// EncodeRequest serializes req into an *http.Request targeting uri. The
// request body is the protobuf encoding of req.Input; Content-Length is set
// from the encoded length. Used by Invoke (C3).
func EncodeRequest[M Message](req *Request[M], uri string) (*http.Request, *Error) {
	body, err := req.Input.Marshal()
	if err != nil {
		return nil, EncodeError(err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return nil, HTTPError(err)
	}
	httpReq.Header = req.Header.Clone()
	httpReq.Header.Set("Content-Type", ProtobufContentType)
	httpReq.ContentLength = int64(len(body))

	return httpReq, nil
}

// DecodeRequest parses an incoming *http.Request into a Request[M],
// enforcing the Twirp protobuf preconditions: method must be POST and
// Content-Type must be application/protobuf. A decode failure that occurs
// after the body has been read is wrapped with AfterBody so the raw bytes
// remain inspectable. Used by the server dispatcher (C4) via generated
// per-method handlers.
func DecodeRequest[M Message](r *http.Request, out M) (*Request[M], *Error) {
	if r.Method != http.MethodPost {
		return nil, ErrInvalidMethod
	}
	if ct := r.Header.Get("Content-Type"); ct != ProtobufContentType {
		return nil, ErrInvalidContentType
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, TransportError(err)
	}

	if err := out.Unmarshal(body); err != nil {
		return nil, DecodeError(err).AfterBody(body, r.Method, 0, r.Proto, r.Header.Clone())
	}

	return &Request[M]{
		URI:    r.URL.Path,
		Method: r.Method,
		Proto:  r.Proto,
		Header: r.Header.Clone(),
		Input:  out,
	}, nil
}

// DecodeResponse parses an *http.Response into a Response[M] on a 2xx
// status; on any other status it decodes the body as a Twirp error JSON
// document and returns it as a CodeRPC Error. Decode/JSON failures are
// wrapped with AfterBody carrying the raw body, response status, and
// headers. Used by Invoke (C3).
func DecodeResponse[M Message](resp *http.Response, out M) (*Response[M], *Error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := out.Unmarshal(body); err != nil {
			return nil, DecodeError(err).AfterBody(body, "", resp.StatusCode, resp.Proto, resp.Header.Clone())
		}
		return &Response[M]{
			Proto:  resp.Proto,
			Header: resp.Header.Clone(),
			Status: resp.StatusCode,
			Output: out,
		}, nil
	}

	rpcErr, jsonErr := ErrorFromJSON(resp.StatusCode, body)
	if jsonErr != nil {
		return nil, JSONDecodeError(jsonErr).AfterBody(body, "", resp.StatusCode, resp.Proto, resp.Header.Clone())
	}
	return nil, FromRPCError(rpcErr).AfterBody(body, "", resp.StatusCode, resp.Proto, resp.Header.Clone())
}

// WriteResponse encodes resp as a protobuf HTTP response written to w.
// Used by generated per-method server handlers (C4/C5).
func WriteResponse[M Message](w http.ResponseWriter, resp *Response[M]) *Error {
	body, err := resp.Output.Marshal()
	if err != nil {
		return EncodeError(err)
	}

	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", ProtobufContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, writeErr := w.Write(body)
	if writeErr != nil {
		return TransportError(writeErr)
	}
	return nil
}

