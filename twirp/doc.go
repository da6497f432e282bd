// Package twirp implements the wire-level runtime for Twirp RPC: the
// protobuf-over-HTTP/1.1 protocol originated at Twitch that routes calls as
// HTTP POST against URL paths of the form /twirp/<package>.<Service>/<Method>.
//
// This package supplies the pieces a generated service stub builds on: typed
// request/response envelopes (Request, Response), the codec bridge between
// those envelopes and net/http values, the closed RPC error taxonomy (Error),
// a client dispatcher (Client) and a server dispatcher (Server). It does not
// itself know about any particular service; that's the job of code generated
// by the sibling servicegen package (see cmd/protoc-gen-twirp-go).
//
// The protobuf variant of the wire format is the only one implemented. A JSON
// variant is a deliberately unimplemented option; see DESIGN.md.
package twirp
