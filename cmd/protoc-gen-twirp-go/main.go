// Command protoc-gen-twirp-go is a protoc/buf code generator plugin: given a
// CodeGeneratorRequest on stdin, it emits one Twirp service stub per proto
// service definition, built on github.com/thingful/twirp-go/twirp. Wiring
// follows the standard protogen.Options.Run plugin pattern documented by
// google.golang.org/protobuf/compiler/protogen and used by real
// protoc-gen-twirp-style plugins in this codebase's lineage.
package main

import (
	"flag"

	"google.golang.org/protobuf/compiler/protogen"

	"github.com/thingful/twirp-go/servicegen"
)

func main() {
	var embedClient bool
	var runtimeImportPath string

	flags := flag.NewFlagSet("protoc-gen-twirp-go", flag.ExitOnError)
	flags.BoolVar(&embedClient, "embed_client", false, "embed a copy of the twirp runtime into generated packages instead of importing it")
	flags.StringVar(&runtimeImportPath, "runtime_import_path", "github.com/thingful/twirp-go/twirp", "import path of the twirp runtime package")

	opts := protogen.Options{
		ParamFunc: flags.Set,
	}

	opts.Run(func(plugin *protogen.Plugin) error {
		gen := servicegen.New(servicegen.Options{
			EmbedClient:       embedClient,
			RuntimeImportPath: runtimeImportPath,
		})

		embeddedRuntime := make(map[protogen.GoImportPath]bool)

		for _, file := range plugin.Files {
			if !file.Generate || len(file.Services) == 0 {
				continue
			}

			pkgName := string(file.GoPackageName)

			for _, svc := range file.Services {
				descriptor := toServiceDescriptor(svc)

				gf := plugin.NewGeneratedFile(file.GeneratedFilenamePrefix+"."+descriptor.Name+".twirp.go", file.GoImportPath)
				gf.P(string(gen.GenerateFile(pkgName, descriptor)))

				if embedClient && !embeddedRuntime[file.GoImportPath] {
					rf := plugin.NewGeneratedFile(file.GeneratedFilenamePrefix+".twirprt.go", file.GoImportPath)
					rf.P(string(gen.RuntimeFile(pkgName)))
					embeddedRuntime[file.GoImportPath] = true
				}
			}
		}

		return nil
	})
}

// toServiceDescriptor translates a protogen.Service (parsed from the real
// CodeGeneratorRequest) into the plain servicegen.Service descriptor the
// generator works from.
func toServiceDescriptor(svc *protogen.Service) servicegen.Service {
	descriptor := servicegen.Service{
		Name:      svc.GoName,
		ProtoName: string(svc.Desc.Name()),
		Package:   string(svc.Desc.ParentFile().Package()),
		Comment:   string(svc.Comments.Leading),
	}

	for _, m := range svc.Methods {
		descriptor.Methods = append(descriptor.Methods, servicegen.Method{
			Name:       m.GoName,
			ProtoName:  string(m.Desc.Name()),
			Comment:    string(m.Comments.Leading),
			InputType:  m.Input.GoIdent.GoName,
			OutputType: m.Output.GoIdent.GoName,
		})
	}

	return descriptor
}
