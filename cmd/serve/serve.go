package serve

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/mxnrates/cmd/backfill"
	"github.com/sig-0/mxnrates/cmd/env"
	"github.com/sig-0/mxnrates/config"
	"github.com/sig-0/mxnrates/server"
)

// serveCfg wraps the serve configuration
type serveCfg struct {
	flags *backfill.Flags
}

// NewServeCmd creates the serve command
func NewServeCmd() *ffcli.Command {
	cfg := &serveCfg{
		flags: backfill.NewFlags(),
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		LongHelp:   "Builds the compra, venta and otro tables, then serves them over HTTP",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCfg) registerFlags(fs *flag.FlagSet) {
	c.flags.RegisterFlags(fs)

	fs.StringVar(
		&c.flags.Config.Server.ListenAddress,
		"listen",
		config.DefaultListenAddress,
		"the IP:PORT URL for the server",
	)
}

// exec executes the serve command
func (c *serveCfg) exec(ctx context.Context, _ []string) error {
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

	// Build the tables before serving
	tables, report, err := backfill.Build(runCtx, &c.flags.Config.Backfill, logger)
	if err != nil {
		return err
	}

	s, err := server.New(
		tables,
		server.WithLogger(logger),
		server.WithConfig(&c.flags.Config.Server),
		server.WithReport(report),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	group, gCtx := errgroup.WithContext(runCtx)

	group.Go(func() error {
		return s.Serve(gCtx)
	})

	return group.Wait()
}
