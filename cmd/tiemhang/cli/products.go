package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/money"
)

func (c *console) productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "manage products",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all products",
				Action: func(ctx *cli.Context) error {
					products, err := c.client.ListProducts(ctx.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tSPEC\tCOST\tSTOCK")
					for _, p := range products {
						stock := "-"
						if p.Inventory != nil {
							stock = fmt.Sprintf("%d", p.Inventory.Quantity)
						}
						fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", p.ID, p.Name, p.Spec, money.VND(float64(p.OriginalPrice)), stock)
					}
					return tw.Flush()
				},
			},
			{
				Name:  "create",
				Usage: "create a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Int64Flag{Name: "spec", Usage: "units per box", Required: true},
					&cli.Int64Flag{Name: "price", Usage: "unit cost in VND", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					p, err := c.client.CreateProduct(ctx.Context, api.CreateProductRequest{
						Name:          ctx.String("name"),
						Spec:          ctx.Int64("spec"),
						OriginalPrice: ctx.Int64("price"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "created product %d (%s)\n", p.ID, p.Name)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "update a product",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Int64Flag{Name: "spec", Required: true},
					&cli.Int64Flag{Name: "price", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					p, err := c.client.UpdateProduct(ctx.Context, api.UpdateProductRequest{
						ID:            ctx.Int64("id"),
						Name:          ctx.String("name"),
						Spec:          ctx.Int64("spec"),
						OriginalPrice: ctx.Int64("price"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "updated product %d\n", p.ID)
					return nil
				},
			},
		},
	}
}
