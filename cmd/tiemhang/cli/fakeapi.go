package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api/apitest"
)

// fakeAPICommand runs the in-memory backend double on a local port so
// the console can be tried without a real backend.
func (c *console) fakeAPICommand() *cli.Command {
	return &cli.Command{
		Name:  "fakeapi",
		Usage: "run a seeded in-memory backend for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":3000"},
		},
		Action: func(ctx *cli.Context) error {
			server := apitest.NewServer()
			server.AddProduct("Rice paper 22cm", 12, 1000, 120)
			server.AddProduct("Fish sauce 500ml", 24, 15000, 48)
			server.AddProduct("Dried shrimp 1kg", 10, 90000, 10)
			server.AddCustomer("Quan An Ngon", "0903111222", "12 Phan Chu Trinh")
			server.AddCustomer("Chi Hoa", "0938555777", "45 Le Loi")

			mux := http.NewServeMux()
			mux.Handle("/api/v1/", http.StripPrefix("/api/v1", server.Handler()))

			fmt.Fprintf(c.out, "fake backend listening on %s (base url http://localhost%s/api/v1)\n", ctx.String("addr"), ctx.String("addr"))
			srv := &http.Server{
				Addr:              ctx.String("addr"),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
}
