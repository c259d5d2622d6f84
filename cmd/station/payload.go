package main

import (
	"fmt"
	"math/big"

	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/tdex-network/stationd/pkg/payload"
	"github.com/urfave/cli/v2"
)

type decodedPayload struct {
	Kind       string   `json:"kind"`
	AmountsIn  []string `json:"amounts_in,omitempty"`
	AmountsOut []string `json:"amounts_out,omitempty"`
	Shares     string   `json:"shares,omitempty"`
}

var payloadCmd = cli.Command{
	Name:  "payload",
	Usage: "encode and decode join and exit payloads offline",
	Subcommands: []*cli.Command{
		{
			Name:  "encode-join",
			Usage: "encode a join payload, amounts are in base units",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kind",
					Usage:    "one of init, proportional, tokens",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:  "amount",
					Usage: "the amount of a pool token for init and tokens kinds",
				},
				&cli.StringFlag{
					Name:  "shares",
					Usage: "the amount of shares to mint for proportional kind",
				},
			},
			Action: encodeJoinAction,
		},
		{
			Name:   "encode-exit",
			Usage:  "encode an exit payload, amounts are in base units",
			Flags:  []cli.Flag{newAmountFlag()},
			Action: encodeExitAction,
		},
		{
			Name:      "decode-join",
			Usage:     "decode a hex encoded join payload",
			ArgsUsage: "<payload>",
			Action:    decodeJoinAction,
		},
		{
			Name:      "decode-exit",
			Usage:     "decode a hex encoded exit payload",
			ArgsUsage: "<payload>",
			Action:    decodeExitAction,
		},
	},
}

func encodeJoinAction(ctx *cli.Context) error {
	var req payload.JoinRequest
	switch kind := ctx.String("kind"); kind {
	case "init", "tokens":
		amounts, err := mathutil.ParseAmounts(ctx.StringSlice("amount"))
		if err != nil {
			return err
		}
		if kind == "init" {
			req = payload.InitJoin{AmountsIn: amounts}
		} else {
			req = payload.AllTokensJoin{AmountsIn: amounts}
		}
	case "proportional":
		shares, err := mathutil.ParseAmount(ctx.String("shares"))
		if err != nil {
			return err
		}
		req = payload.ProportionalJoin{BptAmountOut: shares}
	default:
		return fmt.Errorf("unknown join kind %s", kind)
	}

	data, err := payload.EncodeJoinHex(req)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, data)
	return nil
}

func encodeExitAction(ctx *cli.Context) error {
	amounts, err := mathutil.ParseAmounts(ctx.StringSlice("amount"))
	if err != nil {
		return err
	}
	data, err := payload.EncodeExitHex(payload.ProportionalExit{AmountsOut: amounts})
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, data)
	return nil
}

func decodeJoinAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "decode-join"}
	}
	req, err := payload.DecodeJoinHex(ctx.Args().First())
	if err != nil {
		return err
	}

	decoded := decodedPayload{Kind: req.Kind().String()}
	switch r := req.(type) {
	case payload.InitJoin:
		decoded.AmountsIn = mathutil.FormatAmounts(r.AmountsIn)
	case payload.AllTokensJoin:
		decoded.AmountsIn = mathutil.FormatAmounts(r.AmountsIn)
	case payload.ProportionalJoin:
		decoded.Shares = formatAmount(r.BptAmountOut)
	}
	return printRespJSON(ctx, decoded)
}

func decodeExitAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "decode-exit"}
	}
	req, err := payload.DecodeExitHex(ctx.Args().First())
	if err != nil {
		return err
	}

	decoded := decodedPayload{Kind: req.Kind().String()}
	if r, ok := req.(payload.ProportionalExit); ok {
		decoded.AmountsOut = mathutil.FormatAmounts(r.AmountsOut)
	}
	return printRespJSON(ctx, decoded)
}

func formatAmount(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}
