// Package servicegen is the generator core behind cmd/protoc-gen-twirp-go: it
// turns a service descriptor into the Go source of a Twirp interface, client
// and server, built on the twirp runtime package. It is the Go counterpart of
// TwirpServiceGenerator in original_source/src/service_gen.rs.
package servicegen

// Method describes one RPC of a Service.
type Method struct {
	// Name is the Go method name, e.g. "MakeHat".
	Name string
	// ProtoName is the method name as it appears on the wire path, usually
	// identical to Name.
	ProtoName string
	// Comment is an optional doc comment body (without leading "//").
	Comment string
	// InputType and OutputType are the Go type names (in the generated
	// file's own package) of the request and response messages.
	InputType  string
	OutputType string
}

// Service describes one RPC service to generate a Twirp stub for.
type Service struct {
	// Name is the Go interface/type name, e.g. "Haberdasher".
	Name string
	// ProtoName is the service name as it appears in the wire path; usually
	// identical to Name.
	ProtoName string
	// Package is the proto package the service was declared in, e.g.
	// "haberdasher". Combined with ProtoName it forms the wire path prefix
	// "/twirp/<package>.<ProtoName>/".
	Package string
	// Comment is an optional doc comment body for the interface.
	Comment string
	Methods []Method
}

// pathPrefix is the Twirp mount path for svc, e.g.
// "/twirp/haberdasher.Haberdasher/".
func (svc Service) pathPrefix() string {
	return "/twirp/" + svc.Package + "." + svc.ProtoName + "/"
}
