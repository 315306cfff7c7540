package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/money"
)

func (c *console) ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "manage orders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all orders",
				Action: func(ctx *cli.Context) error {
					orders, err := c.client.ListOrders(ctx.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tDATE\tCUSTOMER\tDELIVERY\tTOTAL")
					for _, o := range orders {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.OrderDate, o.Customer.Name, o.DeliveryStatus, money.VND(o.TotalAmount))
					}
					return tw.Flush()
				},
			},
			{
				Name:  "show",
				Usage: "show one order with its items and profit/loss",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(ctx *cli.Context) error {
					o, err := c.client.GetOrder(ctx.Context, ctx.Int64("id"))
					if err != nil {
						return err
					}
					c.printOrder(o)
					return nil
				},
			},
			{
				Name:   "create",
				Usage:  "open the interactive order editor (draft survives restarts)",
				Action: c.runOrderEditor,
			},
			{
				Name:  "update",
				Usage: "update order-level fields; only given flags change",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "delivery-status"},
					&cli.StringFlag{Name: "debt-status"},
					&cli.Int64Flag{Name: "additional-cost"},
					&cli.StringFlag{Name: "additional-cost-note"},
				},
				Action: func(ctx *cli.Context) error {
					var req api.UpdateOrderRequest
					if ctx.IsSet("delivery-status") {
						v := ctx.String("delivery-status")
						req.DeliveryStatus = &v
					}
					if ctx.IsSet("debt-status") {
						v := ctx.String("debt-status")
						req.DebtStatus = &v
					}
					if ctx.IsSet("additional-cost") {
						v := ctx.Int64("additional-cost")
						req.AdditionalCost = &v
					}
					if ctx.IsSet("additional-cost-note") {
						v := ctx.String("additional-cost-note")
						req.AdditionalCostNote = &v
					}
					o, err := c.client.UpdateOrder(ctx.Context, ctx.Int64("id"), req)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "updated order %d\n", o.ID)
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "delete an order; the backend restores INVENTORY-sourced stock",
				Flags: []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
				Action: func(ctx *cli.Context) error {
					id := ctx.Int64("id")
					if err := c.client.DeleteOrder(ctx.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(c.out, "deleted order %d\n", id)
					return nil
				},
			},
		},
	}
}

func (c *console) printOrder(o api.OrderResponse) {
	fmt.Fprintf(c.out, "order %d  %s  %s\n", o.ID, o.OrderDate, o.Customer.Name)
	fmt.Fprintf(c.out, "delivery: %s  debt: %s\n", o.DeliveryStatus, o.DebtStatus)
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tQTY\tPRICE\tDISC\tAMOUNT\tSOURCE\tP/L")
	for i, it := range o.OrderItems {
		amount, pl := "-", "-"
		if it.FinalAmount != nil {
			amount = money.VND(*it.FinalAmount)
		}
		if it.ProfitLoss != nil {
			pl = money.VND(*it.ProfitLoss)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d%%\t%s\t%s\t%s\n",
			i+1, it.ProductName, it.Quantity, money.VND(float64(it.SellingPrice)), it.Discount, amount, it.ExportFrom, pl)
	}
	tw.Flush()
	if o.AdditionalCost != 0 {
		fmt.Fprintf(c.out, "additional cost: %s (%s)\n", money.VND(float64(o.AdditionalCost)), o.AdditionalCostNote)
	}
	fmt.Fprintf(c.out, "total: %s\n", money.VND(o.TotalAmount))
	if o.TotalProfitLoss != nil && o.TotalProfitLossPct != nil {
		fmt.Fprintf(c.out, "profit/loss: %s (%s)\n", money.VND(*o.TotalProfitLoss), money.Percent(*o.TotalProfitLossPct))
	}
}
