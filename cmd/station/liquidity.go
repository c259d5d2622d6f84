package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/urfave/cli/v2"
)

// newAmountFlag returns a distinct instance for every command declaring it
// since slice flags hold their parsed values.
func newAmountFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:     "amount",
		Usage:    "the amount of a pool token, one per token in pool order",
		Required: true,
	}
}

var join = cli.Command{
	Name:  "join",
	Usage: "add liquidity to a pool",
	Subcommands: []*cli.Command{
		{
			Name:   "init",
			Usage:  "fund an empty pool, shares are minted by value",
			Flags:  []cli.Flag{poolFlag, decimalsFlag, previewFlag, newAmountFlag()},
			Action: joinInitAction,
		},
		{
			Name:  "proportional",
			Usage: "mint an exact amount of shares depositing every token pro rata",
			Flags: []cli.Flag{
				poolFlag, previewFlag,
				&cli.StringFlag{
					Name:     "shares",
					Usage:    "the amount of shares to mint",
					Required: true,
				},
			},
			Action: joinProportionalAction,
		},
		{
			Name:   "tokens",
			Usage:  "deposit arbitrary amounts, shares are minted by value",
			Flags:  []cli.Flag{poolFlag, decimalsFlag, previewFlag, newAmountFlag()},
			Action: joinTokensAction,
		},
	},
}

var exit = cli.Command{
	Name:   "exit",
	Usage:  "remove liquidity from a pool burning the shares worth the amounts out",
	Flags:  []cli.Flag{poolFlag, decimalsFlag, previewFlag, newAmountFlag()},
	Action: exitAction,
}

func joinInitAction(ctx *cli.Context) error {
	amounts, err := parseAmounts(ctx.StringSlice("amount"), getDecimals(ctx))
	if err != nil {
		return err
	}
	return doJoin(ctx, payload.InitJoin{AmountsIn: amounts})
}

func joinProportionalAction(ctx *cli.Context) error {
	// Pool shares always have 18 decimals.
	shares, err := mathutil.FromDecimalString(ctx.String("shares"), defaultDecimals)
	if err != nil {
		return err
	}
	return doJoin(ctx, payload.ProportionalJoin{BptAmountOut: shares})
}

func joinTokensAction(ctx *cli.Context) error {
	amounts, err := parseAmounts(ctx.StringSlice("amount"), getDecimals(ctx))
	if err != nil {
		return err
	}
	return doJoin(ctx, payload.AllTokensJoin{AmountsIn: amounts})
}

func doJoin(ctx *cli.Context, req payload.JoinRequest) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}
	data, err := payload.EncodeJoinHex(req)
	if err != nil {
		return fmt.Errorf("failed to encode join payload: %w", err)
	}

	if ctx.Bool(previewFlag.Name) {
		resp, err := c.PreviewJoin(context.Background(), poolID, data)
		if err != nil {
			return err
		}
		return printRespJSON(ctx, resp)
	}

	resp, err := c.Join(context.Background(), poolID, data)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func exitAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}
	amounts, err := parseAmounts(ctx.StringSlice("amount"), getDecimals(ctx))
	if err != nil {
		return err
	}
	data, err := payload.EncodeExitHex(payload.ProportionalExit{AmountsOut: amounts})
	if err != nil {
		return fmt.Errorf("failed to encode exit payload: %w", err)
	}

	if ctx.Bool(previewFlag.Name) {
		resp, err := c.PreviewExit(context.Background(), poolID, data)
		if err != nil {
			return err
		}
		return printRespJSON(ctx, resp)
	}

	resp, err := c.Exit(context.Background(), poolID, data)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}
