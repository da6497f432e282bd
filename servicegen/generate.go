package servicegen

import (
	"bytes"
	"fmt"
	"strings"
)

// Options configures a Generator. It corresponds to TwirpServiceGenerator's
// fields in original_source/src/service_gen.rs.
type Options struct {
	// RuntimeImportPath is the Go import path of the twirp runtime package,
	// used to qualify runtime identifiers in non-embedded mode. Ignored
	// when EmbedClient is set.
	RuntimeImportPath string

	// EmbedClient mirrors embed_client from the original generator: when
	// set, the generated package carries its own copy of the runtime
	// (emitted by RuntimeFile) instead of importing RuntimeImportPath, so
	// the generated service has no dependency on this module at build
	// time. See DESIGN.md for why this is a same-package source snapshot
	// rather than a literal textual include, which Go has no equivalent
	// of.
	EmbedClient bool
}

// Generator emits the Go source of a Twirp service stub from a Service
// descriptor.
type Generator struct {
	opts Options
}

// New builds a Generator with the given options.
func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// runtimeQual is the prefix this generator's output uses to reference the
// twirp runtime package: "twirp." when imported, "" when embedded.
func (g *Generator) runtimeQual() string {
	if g.opts.EmbedClient {
		return ""
	}
	return "twirp."
}

// buffer is a thin line-oriented writer, the Go analog of the Rust
// generator's string-push style and of the P() helper seen in real
// protoc-gen-twirp-style generators.
type buffer struct {
	bytes.Buffer
}

func (b *buffer) P(args ...interface{}) {
	for _, a := range args {
		fmt.Fprint(b, a)
	}
	b.WriteByte('\n')
}

// GenerateFile renders the complete Go source of one file implementing svc:
// package clause, imports, the service interface, constructors, and the
// client type. No server type is emitted: New<Service>Server returns the
// runtime's Server directly. pkgName is the Go package name the file will
// belong to (the same package the generated .pb.go message types live in).
func (g *Generator) GenerateFile(pkgName string, svc Service) []byte {
	var b buffer

	g.generateHeader(&b, pkgName, svc)
	g.generateImports(&b)
	g.generateInterface(&b, svc)
	g.generateConstructors(&b, svc)
	g.generateClient(&b, svc)
	g.generateServer(&b, svc)

	return b.Bytes()
}

func (g *Generator) generateHeader(b *buffer, pkgName string, svc Service) {
	b.P("// Code generated by protoc-gen-twirp-go. DO NOT EDIT.")
	b.P("// source: ", svc.Package, ".proto")
	b.P("package ", pkgName)
	b.P()
}

func (g *Generator) generateImports(b *buffer) {
	b.P(`import "net/http"`)
	if !g.opts.EmbedClient {
		b.P(`import "`, g.opts.RuntimeImportPath, `"`)
	}
	b.P()
}

func (g *Generator) generateInterface(b *buffer, svc Service) {
	if svc.Comment != "" {
		writeComment(b, "", svc.Comment)
	}
	b.P("type ", svc.Name, " interface {")
	for _, m := range svc.Methods {
		if m.Comment != "" {
			writeComment(b, "\t", m.Comment)
		}
		b.P("\t", g.methodSig(m), "")
	}
	b.P("}")
	b.P()
}

// methodSig renders a single interface method signature, e.g.
//
//	MakeHat(r *twirp.Request[*Size]) (*twirp.Response[*Hat], *twirp.Error)
func (g *Generator) methodSig(m Method) string {
	q := g.runtimeQual()
	return fmt.Sprintf("%s(r *%sRequest[%s]) (*%sResponse[%s], *%sError)",
		m.Name, q, starOrNot(m.InputType), q, starOrNot(m.OutputType), q)
}

// generateConstructors emits NewXClient and NewXServer, the constructor
// namespace that takes the place of Rust's `impl dyn Service { .. }` block
// (generate_main_impl in service_gen.rs).
func (g *Generator) generateConstructors(b *buffer, svc Service) {
	q := g.runtimeQual()
	b.P("// New", svc.Name, "Client builds a ", svc.Name, " backed by an RPC call")
	b.P("// to rootURL over httpClient.")
	b.P("func New", svc.Name, "Client(rootURL string, httpClient ", q, "HTTPClient) ", svc.Name, " {")
	b.P("\treturn &", unexported(svc.Name), "Client{client: ", q, "NewClient(rootURL, httpClient)}")
	b.P("}")
	b.P()
	b.P("// New", svc.Name, "Server builds an http.Handler dispatching to svc.")
	b.P("func New", svc.Name, "Server(svc ", svc.Name, ") http.Handler {")
	b.P("\ts := ", q, "NewServer(", quote(svc.pathPrefix()), ")")
	for _, m := range svc.Methods {
		b.P("\ts.Handle(", quote(m.ProtoName), ", ", q, "HandleMethod(func() ", starOrNot(m.InputType), " { return ", newZero(m.InputType), " }, svc.", m.Name, "))")
	}
	b.P("\treturn s")
	b.P("}")
	b.P()
}

func (g *Generator) generateClient(b *buffer, svc Service) {
	q := g.runtimeQual()
	structName := unexported(svc.Name) + "Client"
	b.P("type ", structName, " struct {")
	b.P("\tclient *", q, "Client")
	b.P("}")
	b.P()
	for _, m := range svc.Methods {
		b.P("func (c *", structName, ") ", g.methodSig(m), " {")
		b.P("\treturn ", q, "Invoke(c.client, ", quote(strings.TrimPrefix(svc.pathPrefix(), "/")+m.ProtoName), ", r, func() ", starOrNot(m.OutputType), " { return ", newZero(m.OutputType), " })")
		b.P("}")
		b.P()
	}
}

func (g *Generator) generateServer(b *buffer, svc Service) {
	// The server side needs no named type of its own: New<Service>Server
	// above returns the runtime's *twirp.Server directly, which already
	// implements http.Handler and already does path-based dispatch. This
	// mirrors HyperServer in the original design while avoiding the
	// indirection of a second generated struct, since Go's http.Handler
	// does not need the service value threaded through a method the way
	// hyper::service::Service does.
	_ = svc
}

func writeComment(b *buffer, indent, comment string) {
	for _, line := range strings.Split(strings.TrimRight(comment, "\n"), "\n") {
		b.P(indent, "// ", line)
	}
}

func unexported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func quote(s string) string {
	return `"` + s + `"`
}

// starOrNot renders the constructor closure return type for a message type
// name. Generated message types from protoc-gen-go are always referenced
// through their pointer type, e.g. "*Size".
func starOrNot(typeName string) string {
	if strings.HasPrefix(typeName, "*") {
		return typeName
	}
	return "*" + typeName
}

// newZero renders a `new(T)` expression for the non-pointer form of
// typeName, to use as the Message factory passed into HandleMethod/Invoke.
func newZero(typeName string) string {
	return "new(" + strings.TrimPrefix(typeName, "*") + ")"
}
