package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/principal"
	"github.com/desertthunder/tunevault/internal/shared"
	"github.com/urfave/cli/v3"
)

// sessionContent is the body stored by the interactive session.
const sessionContent = "Song Content"

// Session prompts for credentials, a title and an artist, adds an artifact as administrator, then deletes the artifact whose ID is entered.
//
// Rejected operations are printed and do not fail the command.
func (r *Runner) Session(ctx context.Context, cmd *cli.Command) error {
	p := newPrompter(r.input, r.output)

	username, err := p.Line("Enter username")
	if err != nil {
		return err
	}
	password, err := p.Password("Enter a password")
	if err != nil {
		return err
	}
	title, err := p.Line("Enter song title")
	if err != nil {
		return err
	}
	artist, err := p.Line("Enter artist name")
	if err != nil {
		return err
	}

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	admin := principal.NewAdministrator(username, password, principal.WithLogger(r.logger))

	res, err := admin.AddArtifact(c, title, artist, sessionContent)
	if err != nil {
		return err
	}
	if err := r.report(res); err != nil {
		return err
	}

	raw, err := p.Line("Enter the ID of the artifact to delete")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: artifact id %q", shared.ErrInvalidInput, raw)
	}

	res, err = admin.DeleteArtifact(c, id)
	if err != nil {
		return err
	}
	return r.report(res)
}

// SelfTest adds a known artifact as the seeded account and checks its stored checksum and transformed content.
//
// Unlike the other commands, a rejected authentication or add fails the command.
func (r *Runner) SelfTest(ctx context.Context, cmd *cli.Command) error {
	const (
		title  = "Test Song"
		artist = "Test Artist"
		body   = "This is a test content."
	)

	c, err := r.openCatalog()
	if err != nil {
		return err
	}

	seed := r.config.Seed
	ok, err := c.Authenticate(seed.Username, seed.Password)
	if err != nil {
		return err
	}
	if !ok {
		if err := r.writePlain("✗ %s authentication failed\n", seed.Username); err != nil {
			return err
		}
		return fmt.Errorf("self-test: %w: %s", shared.ErrAuthFailed, seed.Username)
	}

	admin := principal.NewAdministrator(seed.Username, seed.Password, principal.WithLogger(r.logger))
	res, err := admin.AddArtifact(c, title, artist, body)
	if err != nil {
		return err
	}
	if !res.OK() {
		if err := r.report(res); err != nil {
			return err
		}
		return fmt.Errorf("self-test: %w", res.Err())
	}

	a, err := c.GetArtifact(res.ArtifactID)
	if err != nil {
		return fmt.Errorf("artifact %d was not added: %w", res.ArtifactID, err)
	}

	r.writePlainHeader(fmt.Sprintf("Artifact %d exists", a.ID()))

	wantSum := catalog.Checksum(body)
	wantContent := catalog.TransformContent(body)
	checks := []struct {
		name      string
		want, got string
	}{
		{"checksum", wantSum, a.Checksum()},
		{"stored content", wantContent, a.Content()},
	}

	failed := 0
	for _, ch := range checks {
		mark := "✓"
		if ch.want != ch.got {
			mark = "✗"
			failed++
		}
		r.writePlain("%s %s\n  expected: %s\n  stored:   %s\n", mark, ch.name, ch.want, ch.got)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d self-test checks failed", shared.ErrChecksumMismatch, failed, len(checks))
	}
	return nil
}
