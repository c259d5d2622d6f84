package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/stationd/pkg/client"
	"github.com/tdex-network/stationd/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

const (
	rpcServerKey = "rpcserver"
	poolKey      = "pool"
	decimalsKey  = "decimals"

	defaultDecimals = 18
)

var (
	stationDataDir = btcutil.AppDataDir("station", false)
	statePath      = filepath.Join(stationDataDir, "state.json")

	poolFlag = &cli.StringFlag{
		Name:  "pool",
		Usage: "the id of the target pool, defaults to the one in the local state",
	}
	decimalsFlag = &cli.IntFlag{
		Name:  "decimals",
		Usage: "the number of decimals of amounts, zero for base units",
		Value: -1,
	}
	previewFlag = &cli.BoolFlag{
		Name:  "preview",
		Usage: "show the outcome of the operation without executing it",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "station"
	app.Usage = "Command line interface for stationd operators and traders"
	app.Commands = append(
		app.Commands,
		&config,
		&pool,
		&price,
		&fee,
		&swap,
		&join,
		&exit,
		&webhook,
		&payloadCmd,
	)
	return app
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("corrupted state file %s: %s", statePath, err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if err := os.MkdirAll(stationDataDir, os.ModeDir|0755); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getClient() (*client.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state[rpcServerKey]
	if !ok {
		return nil, errors.New("set rpcserver with `config set rpcserver`")
	}
	return client.New(address)
}

func getPoolID(ctx *cli.Context) (string, error) {
	if poolID := ctx.String(poolFlag.Name); poolID != "" {
		return poolID, nil
	}
	state, err := getState()
	if err != nil {
		return "", err
	}
	poolID, ok := state[poolKey]
	if !ok || poolID == "" {
		return "", errors.New("set the target pool with --pool or `config set pool`")
	}
	return poolID, nil
}

// getDecimals returns the --decimals flag if set, otherwise the value in
// the local state or the default one.
func getDecimals(ctx *cli.Context) int32 {
	if d := ctx.Int(decimalsFlag.Name); d >= 0 {
		return int32(d)
	}
	state, err := getState()
	if err != nil {
		return defaultDecimals
	}
	var d int32
	if _, err := fmt.Sscanf(state[decimalsKey], "%d", &d); err != nil || d < 0 {
		return defaultDecimals
	}
	return d
}

// parseAmounts converts human readable amounts into base units.
func parseAmounts(amounts []string, decimals int32) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(amounts))
	for _, a := range amounts {
		v, err := mathutil.FromDecimalString(a, decimals)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func printRespJSON(ctx *cli.Context, resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %s", err)
	}
	fmt.Fprintln(ctx.App.Writer, string(jsonBytes))
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[station] %v\n", err)
	}
	os.Exit(1)
}
