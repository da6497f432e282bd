// Command haberdasher-server runs the Haberdasher reference service over
// Twirp. It is a thin wrapper around pkg/tasks; see that package for flags
// and subcommands.
package main

import "github.com/thingful/twirp-go/pkg/tasks"

func main() {
	tasks.Execute()
}
