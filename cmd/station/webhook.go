package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var eventFlag = &cli.StringFlag{
	Name:  "event",
	Usage: "one of POOL_SWAP, POOL_JOIN, POOL_EXIT, PRICES_UPDATED or * for any",
	Value: "*",
}

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "add, remove or list webhooks",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a (secured) webhook endpoint called whenever the target event occurs",
			Flags: []cli.Flag{
				eventFlag,
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the webhook endpoint to be called whenever the target event occurs",
					Required: true,
				},
				&cli.StringFlag{
					Name: "secret",
					Usage: "the eventual secret to use to sign a token for " +
						"authenticating requests to the webhook endpoint",
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:      "remove",
			Usage:     "remove a webhook",
			ArgsUsage: "<id>",
			Action:    removeWebhookAction,
		},
		{
			Name:  "list",
			Usage: "list all webhooks, optionally filtered by target event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "event",
					Usage: "the target event, all webhooks are listed if not set",
				},
			},
			Action: listWebhooksAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	id, err := c.AddWebhook(
		context.Background(),
		ctx.String("event"), ctx.String("endpoint"), ctx.String("secret"),
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, map[string]string{"id": id})
}

func removeWebhookAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "remove"}
	}
	c, err := getClient()
	if err != nil {
		return err
	}

	id := ctx.Args().First()
	if err := c.RemoveWebhook(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "webhook %s has been removed\n", id)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	hooks, err := c.ListWebhooks(context.Background(), ctx.String("event"))
	if err != nil {
		return err
	}
	return printRespJSON(ctx, hooks)
}
