package backfill

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/mxnrates/cmd/env"
	"github.com/sig-0/mxnrates/config"
)

// backfillCfg wraps the backfill configuration
type backfillCfg struct {
	flags *Flags
}

// NewBackfillCmd creates the backfill command
func NewBackfillCmd() *ffcli.Command {
	cfg := &backfillCfg{
		flags: NewFlags(),
	}

	fs := flag.NewFlagSet("backfill", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "backfill",
		ShortUsage: "backfill [flags]",
		LongHelp:   "Fetches every day in range and writes the compra, venta and otro tables as CSV",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *backfillCfg) registerFlags(fs *flag.FlagSet) {
	c.flags.RegisterFlags(fs)

	fs.StringVar(
		&c.flags.Config.Backfill.OutputDir,
		"out",
		config.DefaultOutputDir,
		"the directory the CSV tables are written to",
	)
}

// exec executes the backfill command
func (c *backfillCfg) exec(ctx context.Context, _ []string) error {
	if err := c.flags.Load(); err != nil {
		return err
	}

	logger, err := c.flags.Logger()
	if err != nil {
		return err
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	cfg := c.flags.Config.Backfill

	tables, _, err := Build(runCtx, &cfg, logger)
	if err != nil {
		return err
	}

	paths, err := WriteTables(tables, cfg.OutputDir)
	if err != nil {
		return err
	}

	logger.Info(
		"tables written",
		"files", paths,
		"compra_rows", tables.Compra.Len(),
		"venta_rows", tables.Venta.Len(),
		"otro_rows", tables.Otro.Len(),
	)

	return nil
}
