package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/session"
)

func (c *console) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(ctx *cli.Context) error {
			resp, err := c.client.Login(ctx.Context, api.LoginRequest{
				Username: ctx.String("username"),
				Password: ctx.String("password"),
			})
			if err != nil {
				return err
			}
			if err := c.sessions.Save(session.Session{Token: resp.Token, Username: resp.Username}); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "logged in as %s\n", resp.Username)
			return nil
		},
	}
}

func (c *console) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "discard the stored session token",
		Action: func(ctx *cli.Context) error {
			if err := c.sessions.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "logged out")
			return nil
		},
	}
}
