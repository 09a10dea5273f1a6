// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format (csv, md, txt)",
			Value:   "txt",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: {user}_{collection}.{format}, \"-\" for stdout)",
		},
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// userCommand handles account operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "user",
		Aliases: []string{"account"},
		Usage:   "Register, log in and log out",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account (prompts for missing values)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password"},
					&cli.StringFlag{Name: "confirm", Usage: "Password confirmation"},
				},
				Action: r.UserRegister,
			},
			{
				Name:  "login",
				Usage: "Log in and switch to your favorites and history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password"},
				},
				Action: r.UserLogin,
			},
			{
				Name:   "logout",
				Usage:  "Save your data and return to the anonymous library",
				Action: r.UserLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the logged-in user",
				Action: r.UserWhoami,
			},
			{
				Name:   "list",
				Usage:  "List registered usernames",
				Action: r.UserList,
			},
			{
				Name:  "export-all",
				Usage: "Back up the favorites and history of every user and the anonymous library",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output directory (default: tunebox_export_{epoch})",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, md, txt)",
						Value:   "txt",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Concurrent export workers (max 10)",
						Value:   4,
					},
				},
				Action: r.UserExportAll,
			},
		},
	}
}

// favoritesCommand handles favorites operations
func favoritesCommand(r *Runner) *cli.Command {
	songArg := []cli.Argument{&cli.StringArg{Name: "song"}}

	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "Manage favorite songs",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorite songs",
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Add a song to favorites",
				Arguments: songArg,
				Action:    r.FavoritesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a song from favorites",
				Arguments: songArg,
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Toggle a song's favorite status",
				Arguments: songArg,
				Action:    r.FavoritesToggle,
			},
			{
				Name:   "export",
				Usage:  "Export favorites to CSV, Markdown or plain text",
				Flags:  formatFlags(),
				Action: r.FavoritesExport,
			},
		},
	}
}

// historyCommand handles listening history operations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show listening history",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List recently played songs, newest first",
				Action: r.HistoryList,
			},
			{
				Name:   "export",
				Usage:  "Export history to CSV, Markdown or plain text",
				Flags:  formatFlags(),
				Action: r.HistoryExport,
			},
		},
	}
}

// catalogCommand handles the song catalog
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Browse and extend the song catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "chart", Usage: "Only songs on this chart (rising, new, classic)"},
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output", Value: true},
				},
				Action: r.CatalogList,
			},
			{
				Name:  "add",
				Usage: "Add a song",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist"},
					&cli.StringFlag{Name: "chart", Usage: "Chart (rising, new, classic)"},
				},
				Action: r.CatalogAdd,
			},
		},
	}
}

// playCommand plays a song to the end, recording it in history
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a song through to the end",
		Arguments: []cli.Argument{&cli.StringArg{Name: "song"}},
		Action:    r.Play,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive library",
		Action:  r.TUI,
	}
}
