package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"github.com/yuin/goldmark"

	"github.com/GrumpyCockatiel/miniserver/internal/server"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))

// renderMarkdown converts a Markdown document to an HTML fragment with
// goldmark. Conversion failures fall back to the raw text in a pre block.
func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return fmt.Sprintf("<pre>%s</pre>", text)
	}
	return buf.String()
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a local folder over the loopback interface",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind on 127.0.0.1",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"d"},
				Usage:   "Folder to serve files from",
			},
			&cli.StringFlag{
				Name:  "home",
				Usage: "Document served for the bare / path",
			},
		},
		Action: r.Serve,
	}
}

// Serve runs the accept loop until /shutdown is requested or the context is
// canceled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.serverConfig(cmd)
	cfg.Convert = renderMarkdown

	r.subscribeLogger()
	srv := server.New(cfg)

	banner := fmt.Sprintf("%s v%s on http://127.0.0.1:%d", shared.Name, shared.Version, srv.Port())
	r.writePlain("%s\n", bannerStyle.Render(banner))
	if cfg.ServeFiles {
		r.writePlain("serving %s (home document %s)\n", cfg.Root, cfg.HomeDocument)
	}

	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	if code := srv.Run(); code == server.CodeStartupFailed {
		return fmt.Errorf("%w: port %d", shared.ErrStartupUnsupported, srv.Port())
	}

	return nil
}

// serverConfig merges config.toml values with command-line flags; flags win.
func (r *Runner) serverConfig(cmd *cli.Command) server.Config {
	cfg := server.Config{
		Port:         r.config.Server.Port,
		Root:         r.config.Content.Root,
		ServeFiles:   r.config.Content.ServeFiles,
		HomeDocument: r.config.Content.HomeDocument,
	}

	if p := cmd.Int("port"); p != 0 {
		cfg.Port = int(p)
	}
	if root := cmd.String("root"); root != "" {
		cfg.Root = root
		cfg.ServeFiles = true
	}
	if home := cmd.String("home"); home != "" {
		cfg.HomeDocument = home
	}

	return cfg
}
