// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "tunevault",
		Usage:   "Store, version and verify song artifacts in a local SQLite catalog",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default: config.toml)",
				Sources: cli.EnvVars("TUNEVAULT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"db"},
				Usage:   "Database path, overrides database.path",
				Sources: cli.EnvVars("TUNEVAULT_DATABASE"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before:   r.before,
		After:    r.after,
		Commands: r.register(),
	}
}

// credentialFlags are shared by every command that acts on behalf of a user.
func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Username to authenticate as",
			Sources: cli.EnvVars("TUNEVAULT_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Password (prompted when omitted and stdin is a terminal)",
			Sources: cli.EnvVars("TUNEVAULT_PASSWORD"),
		},
		&cli.BoolFlag{
			Name:  "admin",
			Usage: "Act as an administrator (only admin may add or delete)",
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
				Usage:  "Initialize database, run migrations and seed the default account",
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

// artifactCommand handles artifact operations
func artifactCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artifact",
		Aliases: []string{"a"},
		Usage:   "Add, update, delete and inspect artifacts",
		Flags:   credentialFlags(),
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a new artifact",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "content", Usage: "Song content"},
					&cli.StringFlag{Name: "content-file", Usage: "Read content from a file"},
				},
				Action: r.ArtifactAdd,
			},
			{
				Name:  "update",
				Usage: "Replace title, artist and content of an artifact",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Artifact ID", Required: true},
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "content", Usage: "Song content"},
					&cli.StringFlag{Name: "content-file", Usage: "Read content from a file"},
				},
				Action: r.ArtifactUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete an artifact",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Artifact ID", Required: true},
				},
				Action: r.ArtifactDelete,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List artifacts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Only artifacts with this title"},
					&cli.StringFlag{Name: "artist", Usage: "Only artifacts by this artist"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ArtifactList,
			},
			{
				Name:  "show",
				Usage: "Show one artifact with its decoded content",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Artifact ID", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ArtifactShow,
			},
			{
				Name:  "verify",
				Usage: "Recompute the checksum of an artifact",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "Artifact ID", Required: true},
				},
				Action: r.ArtifactVerify,
			},
			{
				Name:  "export",
				Usage: "Export the catalog (csv, md, txt, json)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path (default: stdout)"},
					&cli.StringFlag{Name: "artist", Usage: "Only artifacts by this artist"},
				},
				Action: r.ArtifactExport,
			},
		},
	}
}

// sessionCommand runs the interactive add-then-delete workflow.
func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "session",
		Usage:  "Interactively add an artifact as administrator, then delete one by ID",
		Action: r.Session,
	}
}

// selftestCommand checks that stored artifacts round-trip.
func selftestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "selftest",
		Usage:  "Add a test artifact as the seeded account and verify its checksum and stored content",
		Action: r.SelfTest,
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the catalog in an interactive terminal UI",
		Flags:  credentialFlags(),
		Action: r.TUI,
	}
}
