// Command dm-poll prints the direct messages received since a timestamp.
//
//	dm-poll [--log-level=LEVEL] [since_timestamp]
package main

import (
	"context"
	"os"

	"github.com/jrsteele09/go-bsky-dm/dm"
	"github.com/jrsteele09/go-bsky-dm/internal/cli"
)

var command = cli.Command{
	Name:  "dm-poll",
	Usage: "Usage: dm-poll [since_timestamp]",
	ValidArgs: func(args []string) bool {
		return len(args) <= 1
	},
	Run: func(ctx context.Context, deps *cli.Deps, args []string) (any, error) {
		since := ""
		if len(args) == 1 {
			since = args[0]
		}
		poller := dm.NewPoller(deps.Sessions, deps.Client, deps.Creds)
		return poller.Poll(ctx, since)
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}
