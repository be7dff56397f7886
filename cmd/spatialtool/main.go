// Command spatialtool extracts the primary image and stereo pair of spatial photos.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vearutop/spatial/internal/extract"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *extract.UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}
