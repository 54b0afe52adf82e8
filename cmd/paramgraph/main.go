// Command paramgraph compiles param graphs into binary artifacts and answers
// lookups against them. The commands live in internal/cli.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/paramgraph/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	code := cli.ExitCode(err)
	if code != cli.ExitOK && code != cli.ExitCanceled {
		fmt.Fprintf(os.Stderr, "paramgraph: %v\n", err)
	}
	os.Exit(code)
}
