package servicegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thingful/twirp-go/servicegen"
)

func haberdasherService() servicegen.Service {
	return servicegen.Service{
		Name:      "Haberdasher",
		ProtoName: "Haberdasher",
		Package:   "haberdasher",
		Comment:   "Haberdasher makes hats.",
		Methods: []servicegen.Method{
			{
				Name:       "MakeHat",
				ProtoName:  "MakeHat",
				InputType:  "Size",
				OutputType: "Hat",
			},
		},
	}
}

func TestGenerateFileNonEmbedded(t *testing.T) {
	gen := servicegen.New(servicegen.Options{
		RuntimeImportPath: "github.com/thingful/twirp-go/twirp",
	})

	out := string(gen.GenerateFile("haberdasher", haberdasherService()))

	assert.Contains(t, out, `package haberdasher`)
	assert.Contains(t, out, `"github.com/thingful/twirp-go/twirp"`)
	assert.Contains(t, out, `MakeHat(r *twirp.Request[*Size]) (*twirp.Response[*Hat], *twirp.Error)`)
	assert.Contains(t, out, `"twirp/haberdasher.Haberdasher/MakeHat"`)
	assert.Contains(t, out, `func NewHaberdasherClient(rootURL string, httpClient twirp.HTTPClient) Haberdasher {`)
	assert.Contains(t, out, `func NewHaberdasherServer(svc Haberdasher) http.Handler {`)
}

func TestGenerateFileEmbedded(t *testing.T) {
	gen := servicegen.New(servicegen.Options{EmbedClient: true})

	out := string(gen.GenerateFile("haberdasher", haberdasherService()))

	assert.NotContains(t, out, `"github.com/thingful/twirp-go/twirp"`)
	assert.Contains(t, out, `MakeHat(r *Request[*Size]) (*Response[*Hat], *Error)`)
}

func TestRuntimeFileSubstitutesPackage(t *testing.T) {
	gen := servicegen.New(servicegen.Options{EmbedClient: true})

	out := string(gen.RuntimeFile("haberdasher"))

	assert.True(t, strings.HasPrefix(out, "package haberdasher"))
	assert.NotContains(t, out, "__TWIRP_RUNTIME__")
	assert.Contains(t, out, "func NewServer(prefix string) *Server {")
}
