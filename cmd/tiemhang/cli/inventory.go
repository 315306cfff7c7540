package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
)

func (c *console) inventoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "view and adjust stock",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every inventory record",
				Action: func(ctx *cli.Context) error {
					invs, err := c.client.ListInventories(ctx.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "PRODUCT\tNAME\tQUANTITY\tVERSION")
					for _, inv := range invs {
						fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", inv.ProductID, inv.Product.Name, inv.Quantity, inv.Version)
					}
					return tw.Flush()
				},
			},
			{
				Name:  "set",
				Usage: "set a product's on-hand quantity under the version guard",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.Int64Flag{Name: "quantity", Required: true},
					&cli.StringFlag{Name: "note"},
				},
				Action: func(ctx *cli.Context) error {
					productID := ctx.Int64("product")
					// Read first: the update must echo the version of
					// the record it was based on.
					current, err := c.client.ProductInventory(ctx.Context, productID)
					if err != nil {
						return err
					}
					updated, err := c.client.UpdateInventoryQuantity(ctx.Context, productID, api.UpdateInventoryQuantityRequest{
						Quantity: ctx.Int64("quantity"),
						Note:     ctx.String("note"),
						Version:  current.Version,
					})
					if errors.Is(err, api.ErrVersionConflict) {
						return fmt.Errorf("%w: someone else changed this inventory after it was read; run the command again", err)
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "product %d quantity is now %d (version %s)\n", productID, updated.Quantity, updated.Version)
					return nil
				},
			},
			{
				Name:  "history",
				Usage: "show the quantity audit trail for a product",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					entries, err := c.client.InventoryHistory(ctx.Context, ctx.Int64("product"))
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "WHEN\tCHANGE\tBALANCE\tBY\tNOTE")
					for _, e := range entries {
						fmt.Fprintf(tw, "%s\t%+d\t%d\t%s\t%s\n", e.ImportedAt, e.Quantity, e.FinalQuantity, e.ImporterName, e.Note)
					}
					return tw.Flush()
				},
			},
		},
	}
}
