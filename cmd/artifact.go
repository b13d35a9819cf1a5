package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/formatter"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/principal"
	"github.com/desertthunder/tunevault/internal/shared"
	"github.com/urfave/cli/v3"
)

// actor resolves the principal for a command from --username, --password and --admin.
//
// A missing password is prompted for when stdin is a terminal.
func (r *Runner) actor(cmd *cli.Command) (*principal.Principal, error) {
	username := cmd.String("username")
	if username == "" {
		return nil, fmt.Errorf("%w: --username is required", shared.ErrMissingArgument)
	}

	password := cmd.String("password")
	if password == "" {
		if p := newPrompter(r.input, r.output); p.tty {
			var err error
			if password, err = p.Password("Password"); err != nil {
				return nil, err
			}
		}
	}

	return r.principalFor(username, password, cmd.Bool("admin")), nil
}

// content reads --content or --content-file.
func content(cmd *cli.Command) (string, error) {
	text := cmd.String("content")
	path := cmd.String("content-file")

	if text != "" && path != "" {
		return "", fmt.Errorf("%w: cannot specify both --content and --content-file", shared.ErrInvalidArgument)
	}
	if path == "" {
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}
	return string(data), nil
}

// ArtifactAdd adds a new artifact.
func (r *Runner) ArtifactAdd(ctx context.Context, cmd *cli.Command) error {
	body, err := content(cmd)
	if err != nil {
		return err
	}

	actor, err := r.actor(cmd)
	if err != nil {
		return err
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	res, err := actor.AddArtifact(c, cmd.String("title"), cmd.String("artist"), body)
	if err != nil {
		return err
	}
	return r.report(res)
}

// ArtifactUpdate replaces title, artist and content of an artifact.
func (r *Runner) ArtifactUpdate(ctx context.Context, cmd *cli.Command) error {
	body, err := content(cmd)
	if err != nil {
		return err
	}

	actor, err := r.actor(cmd)
	if err != nil {
		return err
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	res, err := actor.UpdateArtifact(c, cmd.Int64("id"), cmd.String("title"), cmd.String("artist"), body)
	if err != nil {
		return err
	}
	return r.report(res)
}

// ArtifactDelete deletes an artifact.
func (r *Runner) ArtifactDelete(ctx context.Context, cmd *cli.Command) error {
	actor, err := r.actor(cmd)
	if err != nil {
		return err
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	res, err := actor.DeleteArtifact(c, cmd.Int64("id"))
	if err != nil {
		return err
	}
	return r.report(res)
}

// ArtifactList lists stored artifacts.
func (r *Runner) ArtifactList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	artifacts, err := c.ListArtifacts(map[string]any{
		"title":  cmd.String("title"),
		"artist": cmd.String("artist"),
	})
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(formatter.NewExport(artifacts, c.Now()).Entries, true)
	}

	if len(artifacts) == 0 {
		return r.writePlain("No artifacts found\n")
	}

	r.writePlainHeader(fmt.Sprintf("Artifacts (%d)", len(artifacts)))
	for _, a := range artifacts {
		r.writePlain("%4d  %s - %s  (modified %s)\n", a.ID(), a.Artist(), a.Title(), shared.FormatTimestamp(a.UpdatedAt()))
	}
	return nil
}

// ArtifactShow prints one artifact with its decoded content.
func (r *Runner) ArtifactShow(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	a, err := c.GetArtifact(id)
	if errors.Is(err, shared.ErrArtifactNotFound) {
		return r.writePlain("✗ %s\n", shared.ErrArtifactNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get artifact: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(formatter.NewExport([]*models.Artifact{a}, c.Now()).Entries[0], true)
	}

	r.writePlainHeader(fmt.Sprintf("#%d %s", a.ID(), a.Title()))
	r.writePlain("Artist:   %s\n", a.Artist())
	r.writePlain("Created:  %s\n", shared.FormatTimestamp(a.CreatedAt()))
	r.writePlain("Modified: %s\n", shared.FormatTimestamp(a.UpdatedAt()))
	r.writePlain("Checksum: %s\n", a.Checksum())
	return r.writePlainln("%s", c.DecodeContent(a))
}

// ArtifactVerify recomputes the checksum of an artifact.
//
// A mismatch is returned as [shared.ErrChecksumMismatch].
func (r *Runner) ArtifactVerify(ctx context.Context, cmd *cli.Command) error {
	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	v, err := c.VerifyArtifact(cmd.Int64("id"))
	if errors.Is(err, shared.ErrArtifactNotFound) {
		return r.writePlain("✗ %s\n", shared.ErrArtifactNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to verify artifact: %w", err)
	}

	return r.printVerification(v)
}

func (r *Runner) printVerification(v catalog.Verification) error {
	if v.OK() {
		return r.writePlain("✓ checksum ok for artifact %d (%s)\n", v.ArtifactID, v.Actual)
	}
	r.writePlain("✗ checksum mismatch for artifact %d\n  stored:   %s\n  computed: %s\n", v.ArtifactID, v.Expected, v.Actual)
	return v.Err()
}

// ArtifactExport writes the catalog in the requested format to a file or stdout.
func (r *Runner) ArtifactExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	artifacts, err := c.ListArtifacts(map[string]any{"artist": cmd.String("artist")})
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}

	export := formatter.NewExport(artifacts, c.Now())

	output := cmd.String("output")
	if output == "" {
		return formatter.Write(r.output, export, format)
	}

	path, err := formatter.WriteFile(export, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("export complete", "path", path, "format", format, "artifacts", len(export.Entries))
	return r.writePlain("✓ exported %d artifacts to %s\n", len(export.Entries), path)
}
