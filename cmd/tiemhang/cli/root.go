// Package cli implements the tiemhang terminal console: products,
// customers, inventory, orders, and the interactive order draft
// editor, all driving the REST backend through the typed client.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/app"
	"github.com/tiemhang/tiemhang/internal/session"
)

// console bundles the dependencies every command needs.
type console struct {
	cfg      *app.Config
	logger   *slog.Logger
	client   *api.Client
	sessions *session.Store
	out      io.Writer
	in       io.Reader
}

// NewApp builds the command tree.
func NewApp() (*cli.App, error) {
	c := &console{out: os.Stdout, in: os.Stdin}

	a := &cli.App{
		Name:  "tiemhang",
		Usage: "order management console",
		Before: func(*cli.Context) error {
			return c.init()
		},
		Commands: []*cli.Command{
			c.loginCommand(),
			c.logoutCommand(),
			c.productsCommand(),
			c.customersCommand(),
			c.inventoryCommand(),
			c.ordersCommand(),
			c.dashboardCommand(),
			c.fakeAPICommand(),
		},
	}
	return a, nil
}

func (c *console) init() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = app.NewLogger(cfg)
	c.client = api.NewClient(cfg.APIBaseURL, cfg.APITimeout, c.logger)
	c.sessions, err = session.NewStore(cfg.StateDir)
	if err != nil {
		return err
	}
	sess, err := c.sessions.Load()
	if err != nil {
		return err
	}
	if sess != nil {
		c.client.SetToken(sess.Token)
	}
	return nil
}
