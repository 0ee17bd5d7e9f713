package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	logging "github.com/ipfs/go-log/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"

	"github.com/veilnet/create-wallet/config"
	"github.com/veilnet/create-wallet/wallet"
)

var log = logging.Logger("create-wallet")

type env struct {
	LogLevel string `envconfig:"WALLET_LOG_LEVEL" default:"info"`
}

func newApp() *cli.App {
	return &cli.App{
		Name:                 "create-wallet",
		Usage:                "create a wallet on the veil network",
		ArgsUsage:            "<network>",
		Version:              "v0.1.0",
		EnableBashCompletion: true,
		Commands:             wallet.Cmds,
		Action:               create,
	}
}

func main() {
	var e env
	if err := envconfig.Process("", &e); err != nil {
		fmt.Fprintf(os.Stderr, "reading environment: %v\n", err)
		os.Exit(1)
	}
	if err := logging.SetLogLevel("*", e.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid WALLET_LOG_LEVEL %q: %v\n", e.LogLevel, err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Warnf("%+v", err)
		os.Exit(1)
	}
}

// errWriter mirrors the app's stderr, falling back when the app never
// set one.
func errWriter(cctx *cli.Context) io.Writer {
	if cctx.App.ErrWriter != nil {
		return cctx.App.ErrWriter
	}
	return os.Stderr
}

// create is the default action: build a brand-new wallet on the chosen
// network and print its seed. Usage errors are reported before any
// business logging and never reach the structured logger.
func create(cctx *cli.Context) error {
	if !cctx.Args().Present() {
		_ = cli.ShowAppHelp(cctx)
		return cli.Exit("", 1)
	}

	name := cctx.Args().First()
	cfg, err := config.ForNetwork(name)
	if err != nil {
		fmt.Fprintf(errWriter(cctx), "Invalid network: %s (expected one of: %s)\n",
			name, strings.Join(config.Names(), ", "))
		return cli.Exit("", 1)
	}

	w, seed, err := wallet.BuildFresh(cctx.Context, cfg)
	defer wallet.CloseWallet(w)
	if err != nil {
		log.Errorf("wallet construction failed: %+v", err)
		return cli.Exit("", 1)
	}

	out := cctx.App.Writer
	color.New(color.FgGreen).Fprintln(out, "Wallet created successfully!")
	fmt.Fprintf(out, "Network: %s\n", name)
	fmt.Fprintf(out, "Seed: %s\n", seed)
	color.New(color.FgRed).Fprintln(out, "Be sure to save the seed. Losing the seed loses the wallet!")
	return nil
}
