package models

import (
	"encoding/hex"
	"fmt"
	"time"
)

// ChecksumLength is the length of a hex-encoded SHA-256 digest.
const ChecksumLength = 64

// Artifact is a song record in the catalog.
//
// content holds the transformed body as persisted; checksum is the digest of the original body.
type Artifact struct {
	id        int64
	title     string
	artist    string
	content   string
	checksum  string
	createdAt time.Time
	updatedAt time.Time
}

var (
	_ Model[int64] = (*Artifact)(nil)
	_ Timestamped  = (*Artifact)(nil)
)

// NewArtifact creates an Artifact stamped with createdAt as both creation and modification time.
func NewArtifact(id int64, title, artist, content, checksum string, createdAt time.Time) *Artifact {
	return &Artifact{
		id:        id,
		title:     title,
		artist:    artist,
		content:   content,
		checksum:  checksum,
		createdAt: createdAt,
		updatedAt: createdAt,
	}
}

func (a *Artifact) ID() int64            { return a.id }
func (a *Artifact) Title() string        { return a.title }
func (a *Artifact) Artist() string       { return a.artist }
func (a *Artifact) Content() string      { return a.content }
func (a *Artifact) Checksum() string     { return a.checksum }
func (a *Artifact) CreatedAt() time.Time { return a.createdAt }
func (a *Artifact) UpdatedAt() time.Time { return a.updatedAt }

func (a *Artifact) SetTitle(title string)       { a.title = title }
func (a *Artifact) SetArtist(artist string)     { a.artist = artist }
func (a *Artifact) SetContent(content string)   { a.content = content }
func (a *Artifact) SetChecksum(checksum string) { a.checksum = checksum }
func (a *Artifact) SetUpdatedAt(t time.Time)    { a.updatedAt = t }

// Validate checks the artifact has a positive ID and a well-formed checksum.
//
// Empty titles, artists and content are allowed.
func (a *Artifact) Validate() error {
	if a.id <= 0 {
		return fmt.Errorf("artifact id must be positive, got %d", a.id)
	}
	if len(a.checksum) != ChecksumLength {
		return fmt.Errorf("checksum must be %d hex characters, got %d", ChecksumLength, len(a.checksum))
	}
	if _, err := hex.DecodeString(a.checksum); err != nil {
		return fmt.Errorf("checksum is not hex: %w", err)
	}
	return nil
}
