package principal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/shared"
)

// AdminUsername is the only identity allowed to add and delete as an administrator.
const AdminUsername = shared.AdminUsername

// Role selects which preconditions apply.
type Role int

const (
	RoleUser Role = iota
	RoleAdministrator
)

func (r Role) String() string {
	if r == RoleAdministrator {
		return "administrator"
	}
	return "user"
}

const (
	msgAuthFailed = "user authentication failed"
	msgNotFound   = "artifact does not exist"
)

// Catalog is the subset of [catalog.Catalog] a principal drives.
type Catalog interface {
	IsAuthenticated(username, password string) (bool, error)
	NextArtifactID() (int64, error)
	TransformContent(content string) string
	Checksum(content string) string
	Now() time.Time
	ArtifactExists(id int64) (bool, error)
	GetArtifact(id int64) (*models.Artifact, error)
	StoreArtifact(artifact *models.Artifact) error
	UpdateArtifact(artifact *models.Artifact) error
	DeleteArtifact(id int64) error
}

// Principal acts on the catalog with one set of credentials.
type Principal struct {
	username string
	password string
	role     Role
	logger   *log.Logger
}

// Option configures a [Principal].
type Option func(*Principal)

// WithLogger sets the logger for operation outcomes.
func WithLogger(l *log.Logger) Option {
	return func(p *Principal) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a [Principal] with role.
func New(username, password string, role Role, opts ...Option) *Principal {
	p := &Principal{
		username: username,
		password: password,
		role:     role,
		logger:   shared.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = shared.WithLogger(p.logger, "user", username, "role", role.String())
	return p
}

// NewUser creates a [Principal] with [RoleUser].
func NewUser(username, password string, opts ...Option) *Principal {
	return New(username, password, RoleUser, opts...)
}

// NewAdministrator creates a [Principal] with [RoleAdministrator].
func NewAdministrator(username, password string, opts ...Option) *Principal {
	return New(username, password, RoleAdministrator, opts...)
}

func (p *Principal) Username() string { return p.username }
func (p *Principal) Role() Role       { return p.role }

// AddArtifact stores a new artifact with the next free id.
//
// Both timestamps are set to the same instant. The checksum covers content before it is transformed.
func (p *Principal) AddArtifact(c Catalog, title, artist, content string) (Result, error) {
	if r, denied := p.requireAdmin(OpAdd, 0); denied {
		return r, nil
	}
	if r, ok, err := p.authenticate(c, OpAdd, 0); err != nil || !ok {
		return r, err
	}

	id, err := c.NextArtifactID()
	if err != nil {
		return Result{}, fmt.Errorf("failed to allocate artifact id: %w", err)
	}

	artifact := models.NewArtifact(id, title, artist, c.TransformContent(content), c.Checksum(content), c.Now())
	if err := c.StoreArtifact(artifact); err != nil {
		return Result{}, fmt.Errorf("failed to add artifact: %w", err)
	}

	return p.succeed(OpAdd, id, "artifact added successfully"), nil
}

// UpdateArtifact overwrites title, artist and content of id and stamps a new modification time.
//
// The creation time is kept. Neither role restricts updates.
func (p *Principal) UpdateArtifact(c Catalog, id int64, title, artist, content string) (Result, error) {
	if r, ok, err := p.authenticate(c, OpUpdate, id); err != nil || !ok {
		return r, err
	}
	if r, ok, err := p.requireExists(c, OpUpdate, id); err != nil || !ok {
		return r, err
	}

	artifact, err := c.GetArtifact(id)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load artifact %d: %w", id, err)
	}

	artifact.SetTitle(title)
	artifact.SetArtist(artist)
	artifact.SetContent(c.TransformContent(content))
	artifact.SetChecksum(c.Checksum(content))
	artifact.SetUpdatedAt(c.Now())

	if err := c.UpdateArtifact(artifact); err != nil {
		return Result{}, fmt.Errorf("failed to update artifact: %w", err)
	}

	return p.succeed(OpUpdate, id, "artifact updated successfully"), nil
}

// DeleteArtifact removes id.
func (p *Principal) DeleteArtifact(c Catalog, id int64) (Result, error) {
	if r, denied := p.requireAdmin(OpDelete, id); denied {
		return r, nil
	}
	if r, ok, err := p.authenticate(c, OpDelete, id); err != nil || !ok {
		return r, err
	}
	if r, ok, err := p.requireExists(c, OpDelete, id); err != nil || !ok {
		return r, err
	}

	if err := c.DeleteArtifact(id); err != nil {
		return Result{}, fmt.Errorf("failed to delete artifact: %w", err)
	}

	return p.succeed(OpDelete, id, "artifact deleted successfully"), nil
}

// requireAdmin rejects administrators other than [AdminUsername]. Plain users are never rejected here.
func (p *Principal) requireAdmin(op Operation, id int64) (Result, bool) {
	if p.role != RoleAdministrator || p.username == AdminUsername {
		return Result{}, false
	}
	msg := fmt.Sprintf("only administrators can %s artifacts", op)
	return p.reject(op, StatusPrivilegeDenied, id, msg), true
}

func (p *Principal) authenticate(c Catalog, op Operation, id int64) (Result, bool, error) {
	ok, err := c.IsAuthenticated(p.username, p.password)
	if err != nil {
		return Result{}, false, err
	}
	if !ok {
		return p.reject(op, StatusAuthFailed, id, msgAuthFailed), false, nil
	}
	return Result{}, true, nil
}

func (p *Principal) requireExists(c Catalog, op Operation, id int64) (Result, bool, error) {
	exists, err := c.ArtifactExists(id)
	if err != nil {
		return Result{}, false, err
	}
	if !exists {
		return p.reject(op, StatusNotFound, id, msgNotFound), false, nil
	}
	return Result{}, true, nil
}

func (p *Principal) reject(op Operation, status Status, id int64, msg string) Result {
	p.logger.Warn(msg, "op", op.String(), "artifact_id", id)
	return Result{Operation: op, Status: status, ArtifactID: id, Message: msg}
}

func (p *Principal) succeed(op Operation, id int64, msg string) Result {
	p.logger.Info(msg, "op", op.String(), "artifact_id", id)
	return Result{Operation: op, Status: StatusOK, ArtifactID: id, Message: msg}
}
