package tasks

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thingful/twirp-go/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   version.BinaryName,
	Short: "Twirp RPC runtime and reference service",
	Long: `This tool runs the Haberdasher reference service over Twirp, the
protobuf-over-HTTP/1.1 RPC protocol: a server that routes POST requests of
the form /twirp/<package>.<Service>/<Method> to a plain Go interface
implementation, and a client that calls it the same way.

See github.com/thingful/twirp-go/twirp for the runtime and
github.com/thingful/twirp-go/cmd/protoc-gen-twirp-go for the code generator
that produces service stubs like the one this binary serves.
`,
	Version: version.VersionString(),
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
