// Command iajur is the IA-JUR legal research client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Version info set via ldflags at build time.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(Version)
	cli.SetBootstrap(bootstrap)

	err := cli.ExecuteContext(ctx)
	if cerr := cli.Shutdown(); cerr != nil {
		logger.Warn("shutdown: %v", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
