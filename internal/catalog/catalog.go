package catalog

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/repositories"
	"github.com/desertthunder/tunevault/internal/shared"
)

// ArtifactStore is the artifact persistence a [Catalog] needs.
type ArtifactStore interface {
	models.Repository[int64, *models.Artifact]
	MaxID() (int64, error)
	Exists(id int64) (bool, error)
}

// UserStore looks up credentials.
type UserStore interface {
	FindByUsername(username string) (*models.User, error)
}

// Verification is the outcome of re-checking a stored artifact against its checksum.
type Verification struct {
	ArtifactID int64
	Expected   string
	Actual     string
}

// OK reports whether the recomputed checksum matches the stored one.
func (v Verification) OK() bool {
	return v.Expected == v.Actual
}

// Err returns [shared.ErrChecksumMismatch] when the checksums differ.
func (v Verification) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("%w: artifact %d", shared.ErrChecksumMismatch, v.ArtifactID)
}

// Catalog applies authentication and artifact rules over the repositories.
type Catalog struct {
	artifacts ArtifactStore
	users     UserStore
	sessions  *Sessions
	logger    *log.Logger
	clock     func() time.Time
}

// Option configures a [Catalog].
type Option func(*Catalog)

// WithClock replaces time.Now for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Catalog) { c.clock = clock }
}

// New creates a [Catalog]. A nil sessions set starts empty and a nil logger discards output.
func New(artifacts ArtifactStore, users UserStore, sessions *Sessions, logger *log.Logger, opts ...Option) *Catalog {
	if sessions == nil {
		sessions = NewSessions()
	}
	if logger == nil {
		logger = shared.NewDiscardLogger()
	}

	c := &Catalog{
		artifacts: artifacts,
		users:     users,
		sessions:  sessions,
		logger:    logger,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromStore creates a [Catalog] over the repositories of store.
func NewFromStore(store *repositories.Store, sessions *Sessions, logger *log.Logger, opts ...Option) *Catalog {
	return New(repositories.NewArtifactRepository(store), repositories.NewUserRepository(store), sessions, logger, opts...)
}

// Sessions returns the authenticated set.
func (c *Catalog) Sessions() *Sessions {
	return c.sessions
}

// Authenticate checks username and password against the users table.
//
// On a match the username joins the session set. A mismatch has no side effects.
func (c *Catalog) Authenticate(username, password string) (bool, error) {
	user, err := c.users.FindByUsername(username)
	if err != nil {
		return false, fmt.Errorf("failed to authenticate %s: %w", username, err)
	}
	if user == nil || !credentialsMatch(user.Password(), password) {
		c.logger.Debug("authentication rejected", "user", username)
		return false, nil
	}

	session := c.sessions.Add(username, c.Now())
	c.logger.Debug("authenticated", "user", username, "session", session.ID)
	return true, nil
}

// IsAuthenticated returns true for any username already in the session set, whatever password is given.
// Other usernames go through [Catalog.Authenticate].
func (c *Catalog) IsAuthenticated(username, password string) (bool, error) {
	if c.sessions.Has(username) {
		return true, nil
	}
	return c.Authenticate(username, password)
}

// NextArtifactID returns one more than the largest stored id.
//
// The read and the later insert are separate statements, so concurrent callers can receive the same id.
// Deleting the current maximum frees its id for reuse.
func (c *Catalog) NextArtifactID() (int64, error) {
	maxID, err := c.artifacts.MaxID()
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// TransformContent applies [TransformContent].
func (c *Catalog) TransformContent(content string) string {
	return TransformContent(content)
}

// Checksum applies [Checksum].
func (c *Catalog) Checksum(content string) string {
	return Checksum(content)
}

// Now returns the catalog clock's current time.
func (c *Catalog) Now() time.Time {
	return c.clock()
}

// ArtifactExists reports whether id is stored.
func (c *Catalog) ArtifactExists(id int64) (bool, error) {
	return c.artifacts.Exists(id)
}

// StoreArtifact persists a new artifact as given.
func (c *Catalog) StoreArtifact(artifact *models.Artifact) error {
	return c.artifacts.Create(artifact)
}

// UpdateArtifact overwrites the stored artifact with the same id.
func (c *Catalog) UpdateArtifact(artifact *models.Artifact) error {
	return c.artifacts.Update(artifact)
}

// DeleteArtifact removes id.
func (c *Catalog) DeleteArtifact(id int64) error {
	return c.artifacts.Delete(id)
}

// GetArtifact returns the stored artifact. Content is still transformed.
func (c *Catalog) GetArtifact(id int64) (*models.Artifact, error) {
	return c.artifacts.Get(id)
}

// ListArtifacts returns artifacts matching criteria ("title", "artist").
func (c *Catalog) ListArtifacts(criteria map[string]any) ([]*models.Artifact, error) {
	return c.artifacts.List(criteria)
}

// DecodeContent returns the original content of a stored artifact.
func (c *Catalog) DecodeContent(artifact *models.Artifact) string {
	return TransformContent(artifact.Content())
}

// VerifyArtifact recomputes the checksum of the decoded content of id.
func (c *Catalog) VerifyArtifact(id int64) (Verification, error) {
	artifact, err := c.artifacts.Get(id)
	if err != nil {
		return Verification{}, err
	}

	v := Verification{
		ArtifactID: id,
		Expected:   artifact.Checksum(),
		Actual:     Checksum(c.DecodeContent(artifact)),
	}
	if !v.OK() {
		c.logger.Warn("checksum mismatch", "artifact_id", id, "expected", v.Expected, "actual", v.Actual)
	}
	return v, nil
}
