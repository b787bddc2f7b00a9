package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/GrumpyCockatiel/miniserver/internal/authflow"
	"github.com/GrumpyCockatiel/miniserver/internal/server"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Run an OAuth authorization-code flow against the configured provider",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port the provider redirects back to",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "State token for the flow (generated when omitted)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the full token as JSON",
			},
		},
		Action: r.Login,
	}
}

// Login catches the provider redirect on the loopback server and exchanges
// the authorization code for a token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	oc := r.config.OAuth
	if oc.ClientID == "" || oc.AuthURL == "" || oc.TokenURL == "" {
		return fmt.Errorf("%w: oauth client_id, auth_url, and token_url must be configured", shared.ErrMissingArgument)
	}

	port := r.config.Server.Port
	if p := cmd.Int("port"); p != 0 {
		port = int(p)
	}

	redirectPath := oc.RedirectPath
	if redirectPath == "" {
		redirectPath = "/callback"
	}

	ocfg := &oauth2.Config{
		ClientID:     oc.ClientID,
		ClientSecret: oc.ClientSecret,
		Endpoint:     oauth2.Endpoint{AuthURL: oc.AuthURL, TokenURL: oc.TokenURL},
		RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d%s", port, redirectPath),
		Scopes:       oc.Scopes,
	}

	r.subscribeLogger()
	srv := server.New(server.Config{Port: port})
	flow := authflow.New(ocfg, cmd.String("state"), srv)

	r.logger.Info("waiting for provider redirect", "callback", ocfg.RedirectURL)
	r.writePlain("opening browser for authorization...\n")

	token, err := flow.Run(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Authorization successful\n")

	if cmd.Bool("json") {
		return r.writeJSON(token, true)
	}

	r.writePlain("token type: %s\n", token.TokenType)
	if !token.Expiry.IsZero() {
		r.writePlain("expires: %s\n", token.Expiry.UTC().Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
