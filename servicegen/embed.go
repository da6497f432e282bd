package servicegen

import (
	_ "embed"
	"strings"
)

//go:embed runtimesrc/runtime.src
var runtimeSrc string

const runtimePkgMarker = "__TWIRP_RUNTIME__"

// RuntimeFile renders a standalone copy of the twirp runtime, to be written
// alongside GenerateFile's output into the same target package when
// EmbedClient is set. It is the Go analog of finalize()'s include_str! of
// service_run.rs in original_source/src/service_gen.rs: rather than an
// external import, the generated package gets its own copy of the runtime
// under pkgName.
//
// RuntimeFile should be called at most once per target package; calling it
// once per generated service would redeclare the runtime's types.
func (g *Generator) RuntimeFile(pkgName string) []byte {
	src := strings.Replace(runtimeSrc, runtimePkgMarker, pkgName, 1)
	return []byte(src)
}
