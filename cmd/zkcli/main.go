package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"zkcli/internal/zkerr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM, unix.SIGHUP)
	// The first signal cancels ctx and restores default handling, so a second
	// one terminates the process even while cleanup is still running.
	context.AfterFunc(ctx, stop)
	code := run(ctx, defaultEnvironment(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns its exit status. Ephemeral cleanup
// has already happened by the time it returns.
func run(ctx context.Context, env environment, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return zkerr.ExitOK
	}
	fmt.Fprintf(stderr, "zkcli: %s: %v\n", zkerr.Kind(err), err)
	return zkerr.ExitCode(err)
}
