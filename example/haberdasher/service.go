package haberdasher

import (
	"net/http"

	"github.com/thingful/twirp-go/twirp"
)

// minMaxSize is the meta payload attached to too_small/too_large errors,
// naming the valid range a caller should retry within.
type minMaxSize struct {
	Min int32 `json:"min"`
	Max int32 `json:"max"`
}

// service is the reference Haberdasher implementation: the canonical
// too-small/too-large/happy-path example this runtime and its generator are
// exercised against.
type service struct{}

// NewService builds the reference Haberdasher implementation.
func NewService() Haberdasher {
	return &service{}
}

func (s *service) MakeHat(r *twirp.Request[*Size]) (*twirp.Response[*Hat], *twirp.Error) {
	inches := r.Input.Inches

	if inches < 1 {
		return nil, twirp.FromRPCError(twirp.NewRPCErrorMeta(
			http.StatusBadRequest, "too_small", "Size too small", minMaxSize{Min: 1, Max: 10},
		))
	}
	if inches > 10 {
		return nil, twirp.FromRPCError(twirp.NewRPCErrorMeta(
			http.StatusBadRequest, "too_large", "Size too large", minMaxSize{Min: 1, Max: 10},
		))
	}

	return twirp.NewResponse(&Hat{
		Size:  inches,
		Color: "blue",
		Name:  "fedora",
	}), nil
}
