package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/stats"
)

func (c *console) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show the business summary",
		Action: func(ctx *cli.Context) error {
			svc := stats.NewService(c.client, c.cfg.LowStockThreshold, c.logger)
			s, err := svc.Dashboard(ctx.Context)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "products\t%d\n", s.TotalProducts)
			fmt.Fprintf(tw, "customers\t%d\n", s.TotalCustomers)
			fmt.Fprintf(tw, "inventory units\t%d\n", s.TotalInventoryItems)
			fmt.Fprintf(tw, "low-stock products\t%d\n", s.LowStockProducts)
			fmt.Fprintf(tw, "orders\t%d\n", s.TotalOrders)
			fmt.Fprintf(tw, "pending orders\t%d\n", s.PendingOrders)
			return tw.Flush()
		},
	}
}
