package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/stationd/pkg/client"
	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var pool = cli.Command{
	Name:  "pool",
	Usage: "create, inspect or drop pools",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new pool and select it as target in the local state",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name of the pool",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:     "token",
					Usage:    "the address of a pool token, repeat for every token",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:  "amp",
					Usage: "the amplification parameter",
					Value: 100,
				},
				&cli.Uint64Flag{
					Name:  "withdraw_fee_rate",
					Usage: "exits pay amount/rate as fee, zero disables the fee",
				},
			},
			Action: createPoolAction,
		},
		{
			Name:   "list",
			Usage:  "list all pools",
			Action: listPoolsAction,
		},
		{
			Name:   "show",
			Usage:  "show the state of a pool",
			Flags:  []cli.Flag{poolFlag},
			Action: showPoolAction,
		},
		{
			Name:   "drop",
			Usage:  "drop a pool without outstanding shares",
			Flags:  []cli.Flag{poolFlag},
			Action: dropPoolAction,
		},
	},
}

var price = cli.Command{
	Name:  "price",
	Usage: "manage the oracle prices of a pool",
	Subcommands: []*cli.Command{
		{
			Name:  "update",
			Usage: "update the prices of the pool tokens, in the same order",
			Flags: []cli.Flag{
				poolFlag,
				&cli.StringSliceFlag{
					Name:     "price",
					Usage:    "the price of a token in the unit of account, ie. 1.5",
					Required: true,
				},
			},
			Action: updatePricesAction,
		},
	},
}

var fee = cli.Command{
	Name:  "fee",
	Usage: "manage the fees of a pool",
	Subcommands: []*cli.Command{
		{
			Name:  "update-withdraw",
			Usage: "update the withdraw fee rate of the pool",
			Flags: []cli.Flag{
				poolFlag,
				&cli.Uint64Flag{
					Name:     "rate",
					Usage:    "exits pay amount/rate as fee, zero disables the fee",
					Required: true,
				},
			},
			Action: updateWithdrawFeeAction,
		},
	},
}

func createPoolAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	pool, err := c.CreatePool(context.Background(), client.CreatePoolRequest{
		Name:            ctx.String("name"),
		Tokens:          ctx.StringSlice("token"),
		Amp:             ctx.Uint64("amp"),
		WithdrawFeeRate: ctx.Uint64("withdraw_fee_rate"),
	})
	if err != nil {
		return err
	}

	if err := setState(map[string]string{poolKey: pool.ID}); err != nil {
		return err
	}
	return printRespJSON(ctx, pool)
}

func listPoolsAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	pools, err := c.ListPools(context.Background())
	if err != nil {
		return err
	}
	return printRespJSON(ctx, pools)
}

func showPoolAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}

	pool, err := c.GetPool(context.Background(), poolID)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, pool)
}

func dropPoolAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}

	if err := c.DropPool(context.Background(), poolID); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "pool %s has been dropped\n", poolID)
	return nil
}

func updatePricesAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}

	// Prices are always fixed-point numbers with 18 decimals.
	prices, err := parseAmounts(ctx.StringSlice("price"), defaultDecimals)
	if err != nil {
		return err
	}
	resp, err := c.UpdatePrices(
		context.Background(), poolID, mathutil.FormatAmounts(prices),
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, resp)
}

func updateWithdrawFeeAction(ctx *cli.Context) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	poolID, err := getPoolID(ctx)
	if err != nil {
		return err
	}

	pool, err := c.UpdateWithdrawFeeRate(
		context.Background(), poolID, ctx.Uint64("rate"),
	)
	if err != nil {
		return err
	}
	return printRespJSON(ctx, pool)
}
