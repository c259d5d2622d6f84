package main

import (
	"context"

	"github.com/tdex-network/stationd/pkg/client"
	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var swapFlags = []cli.Flag{
	poolFlag,
	decimalsFlag,
	&cli.StringFlag{
		Name:     "token_in",
		Usage:    "the address of the token sent to the pool",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "token_out",
		Usage:    "the address of the token received from the pool",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "amount",
		Usage:    "the exact amount of token_in, or of token_out with --given_out",
		Required: true,
	},
	&cli.BoolFlag{
		Name:  "given_out",
		Usage: "the amount is the one of token_out",
	},
}

var swap = cli.Command{
	Name:  "swap",
	Usage: "swap tokens with a pool at the current oracle prices",
	Subcommands: []*cli.Command{
		{
			Name:   "preview",
			Usage:  "show the amounts exchanged by a swap",
			Flags:  swapFlags,
			Action: previewSwapAction,
		},
		{
			Name:   "execute",
			Usage:  "execute a swap",
			Flags:  swapFlags,
			Action: swapAction,
		},
		{
			Name:  "fee",
			Usage: "quote the fee of a batch swap given per token amounts in and out",
			Flags: []cli.Flag{
				poolFlag,
				decimalsFlag,
				&cli.StringSliceFlag{
					Name:     "in",
					Usage:    "the amount in of a pool token, one per token in pool order",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:     "out",
					Usage:    "the amount out of a pool token, one per token in pool order",
					Required: true,
				},
			},
			Action: swapFeeAction,
		},
	},
}

func previewSwapAction(ctx *cli.Context) error {
	return doSwap(ctx, true)
}

func swapAction(ctx *cli.Context) error {
	return doSwap(ctx, false)
}

func doSwap(ctx *cli.Context, preview bool) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}
	amount, err := mathutil.FromDecimalString(ctx.String("amount"), getDecimals(ctx))
	if err != nil {
		return err
	}

	kind := client.SwapGivenIn
	if ctx.Bool("given_out") {
		kind = client.SwapGivenOut
	}
	req := client.SwapRequest{
		TokenIn:  ctx.String("token_in"),
		TokenOut: ctx.String("token_out"),
		Kind:     kind,
		Amount:   amount.String(),
	}

	var resp *client.Swap
	if preview {
		resp, err = c.PreviewSwap(context.Background(), poolID, req)
	} else {
		resp, err = c.Swap(context.Background(), poolID, req)
	}
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func swapFeeAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}

	decimals := getDecimals(ctx)
	amountsIn, err := parseAmounts(ctx.StringSlice("in"), decimals)
	if err != nil {
		return err
	}
	amountsOut, err := parseAmounts(ctx.StringSlice("out"), decimals)
	if err != nil {
		return err
	}

	resp, err := c.QuoteSwapFee(
		context.Background(), poolID,
		mathutil.FormatAmounts(amountsIn), mathutil.FormatAmounts(amountsOut),
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}
