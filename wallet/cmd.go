package wallet

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/veilnet/create-wallet/client"
	"github.com/veilnet/create-wallet/config"
)

// Cmds are the secondary lifecycle commands; the primary bare-argument
// create flow lives on the app itself.
var Cmds = []*cli.Command{
	restoreCmd,
	awaitCmd,
	balanceCmd,
}

func networkArg(cctx *cli.Context) (config.Config, error) {
	if !cctx.Args().Present() {
		_ = cli.ShowSubcommandHelp(cctx)
		return config.Config{}, xerrors.New("missing network argument")
	}

	name := cctx.Args().First()
	cfg, err := config.ForNetwork(name)
	if err != nil {
		errW := io.Writer(os.Stderr)
		if cctx.App.ErrWriter != nil {
			errW = cctx.App.ErrWriter
		}
		fmt.Fprintf(errW, "Invalid network: %s (expected one of: %s)\n",
			name, strings.Join(config.Names(), ", "))
		return config.Config{}, err
	}
	return cfg, nil
}

func seedFlagValue(cctx *cli.Context) (Seed, error) {
	if cctx.String("seed") == "genesis" {
		return GenesisSeed(), nil
	}
	return ParseSeed(cctx.String("seed"))
}

// CloseWallet is the shared best-effort teardown: a close failure is
// logged as a warning and never escalates the exit status.
func CloseWallet(w client.Wallet) {
	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		log.Warnf("closing wallet: %v", err)
		return
	}
	log.Info("wallet closed")
}

var seedFlag = &cli.StringFlag{
	Name:     "seed",
	Usage:    "64-character hex seed, or \"genesis\" for the standalone genesis wallet",
	Required: true,
}

var restoreCmd = &cli.Command{
	Name:      "restore",
	Usage:     "Connect to an existing wallet from its seed",
	ArgsUsage: "<network>",
	Flags:     []cli.Flag{seedFlag},
	Action: func(cctx *cli.Context) error {
		cfg, err := networkArg(cctx)
		if err != nil {
			return cli.Exit("", 1)
		}

		seed, err := seedFlagValue(cctx)
		if err != nil {
			return err
		}

		w, err := BuildFromSeed(cctx.Context, cfg, seed)
		defer CloseWallet(w)
		if err != nil {
			return err
		}

		fmt.Println(client.DeriveAddress(seed.Bytes(), cfg.Network))
		return nil
	},
}

var awaitCmd = &cli.Command{
	Name:      "await",
	Usage:     "Connect to a wallet and block until it is funded",
	ArgsUsage: "<network>",
	Flags:     []cli.Flag{seedFlag},
	Action: func(cctx *cli.Context) error {
		cfg, err := networkArg(cctx)
		if err != nil {
			return cli.Exit("", 1)
		}

		seed, err := seedFlagValue(cctx)
		if err != nil {
			return err
		}

		w, balance, err := BuildAndWaitForFunds(cctx.Context, cfg, seed)
		defer CloseWallet(w)
		if err != nil {
			return err
		}

		color.Green("Wallet funded!")
		fmt.Printf("Balance: %d\n", balance)
		return nil
	},
}

var balanceCmd = &cli.Command{
	Name:      "balance",
	Usage:     "Query the node for an address balance",
	ArgsUsage: "<network> <address>",
	Action: func(cctx *cli.Context) error {
		cfg, err := networkArg(cctx)
		if err != nil {
			return cli.Exit("", 1)
		}

		if cctx.NArg() != 2 {
			return xerrors.New("must specify network and address")
		}

		balance, err := client.Balance(cctx.Context, cfg.Node, cctx.Args().Get(1))
		if err != nil {
			return err
		}

		fmt.Println(balance)
		return nil
	},
}
