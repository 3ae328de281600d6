package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-raytracer/cmd"
	"github.com/df07/go-raytracer/pkg/log"
)

var logger = log.New("main")

func main() {
	// Interrupting a render stops it at the next scanline
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	root := cmd.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}
