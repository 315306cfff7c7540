package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
)

func (c *console) customersCommand() *cli.Command {
	return &cli.Command{
		Name:  "customers",
		Usage: "manage customers",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all customers",
				Action: func(ctx *cli.Context) error {
					customers, err := c.client.ListCustomers(ctx.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tPHONE\tADDRESS")
					for _, cu := range customers {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", cu.ID, cu.Name, cu.Phone, cu.Address)
					}
					return tw.Flush()
				},
			},
			{
				Name:  "create",
				Usage: "create a customer",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: func(ctx *cli.Context) error {
					cu, err := c.client.CreateCustomer(ctx.Context, api.CreateCustomerRequest{
						Name:    ctx.String("name"),
						Phone:   ctx.String("phone"),
						Address: ctx.String("address"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "created customer %d (%s)\n", cu.ID, cu.Name)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "update a customer; only given flags change",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: func(ctx *cli.Context) error {
					var req api.UpdateCustomerRequest
					if ctx.IsSet("name") {
						v := ctx.String("name")
						req.Name = &v
					}
					if ctx.IsSet("phone") {
						v := ctx.String("phone")
						req.Phone = &v
					}
					if ctx.IsSet("address") {
						v := ctx.String("address")
						req.Address = &v
					}
					cu, err := c.client.UpdateCustomer(ctx.Context, ctx.Int64("id"), req)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.out, "updated customer %d\n", cu.ID)
					return nil
				},
			},
		},
	}
}
