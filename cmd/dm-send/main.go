// Command dm-send sends one direct message from the bot account.
//
//	dm-send [--log-level=LEVEL] <recipient_did> <message_text>
package main

import (
	"context"
	"os"

	"github.com/jrsteele09/go-bsky-dm/dm"
	"github.com/jrsteele09/go-bsky-dm/internal/cli"
)

var command = cli.Command{
	Name:  "dm-send",
	Usage: "Usage: dm-send <recipient_did> <message_text>",
	ValidArgs: func(args []string) bool {
		return len(args) == 2
	},
	Run: func(ctx context.Context, deps *cli.Deps, args []string) (any, error) {
		sender := dm.NewSender(deps.Sessions, deps.Client, deps.Creds)
		return sender.Send(ctx, args[0], args[1])
	},
}

func main() {
	os.Exit(command.Main(os.Args[1:], os.Stdout, os.Stderr))
}
