package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yoyaktube/yyt/internal/domain"
	"github.com/yoyaktube/yyt/internal/infrastructure/cli"
	"github.com/yoyaktube/yyt/internal/infrastructure/metrics"
)

func main() {
	ctx := context.Background()
	verbose := isVerbose()
	opts := cli.Options{Verbose: verbose}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fail(err, verbose)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		fail(err, verbose)
	}
	dumpMetrics(verbose)
}

func fail(err error, verbose bool) {
	fmt.Fprintln(os.Stderr, domain.UserMessage(err))
	if verbose {
		fmt.Fprintln(os.Stderr, "detail:", err)
	}
	dumpMetrics(verbose)
	os.Exit(1)
}

func dumpMetrics(verbose bool) {
	if !verbose {
		return
	}
	if err := metrics.WriteText(os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "metrics dump failed:", err)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("YYT_DEBUG"), "1") || strings.EqualFold(os.Getenv("YYT_DEBUG"), "true")
}
