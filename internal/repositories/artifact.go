package repositories

import (
	"fmt"

	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/shared"
)

const artifactColumns = "artifact_id, title, artist, content, creation_date, modification_date, checksum"

// ArtifactRepository implements [models.Repository] for [models.Artifact] persistence.
//
// Ids are assigned by the caller. Update and Delete do not check that the row exists.
type ArtifactRepository struct {
	store *Store
}

var _ models.Repository[int64, *models.Artifact] = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a new [ArtifactRepository] backed by store
func NewArtifactRepository(store *Store) *ArtifactRepository {
	return &ArtifactRepository{store: store}
}

// Create inserts artifact with its own id
func (r *ArtifactRepository) Create(artifact *models.Artifact) error {
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO artifacts (artifact_id, title, artist, content, creation_date, modification_date, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.store.Exec(query,
		artifact.ID(),
		artifact.Title(),
		artifact.Artist(),
		artifact.Content(),
		shared.FormatTimestamp(artifact.CreatedAt()),
		shared.FormatTimestamp(artifact.UpdatedAt()),
		artifact.Checksum(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert artifact: %w", err)
	}

	return nil
}

// Get retrieves an artifact by id. A missing row is reported as [shared.ErrArtifactNotFound].
func (r *ArtifactRepository) Get(id int64) (*models.Artifact, error) {
	row, err := r.store.FetchOne("SELECT "+artifactColumns+" FROM artifacts WHERE artifact_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifact: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %d", shared.ErrArtifactNotFound, id)
	}
	return scanArtifact(row)
}

// Update overwrites title, artist, content, modification date and checksum. The creation date is never written.
func (r *ArtifactRepository) Update(artifact *models.Artifact) error {
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE artifacts
		SET title = ?, artist = ?, content = ?, modification_date = ?, checksum = ?
		WHERE artifact_id = ?
	`

	_, err := r.store.Exec(query,
		artifact.Title(),
		artifact.Artist(),
		artifact.Content(),
		shared.FormatTimestamp(artifact.UpdatedAt()),
		artifact.Checksum(),
		artifact.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update artifact: %w", err)
	}

	return nil
}

// Delete removes the row for id
func (r *ArtifactRepository) Delete(id int64) error {
	if _, err := r.store.Exec("DELETE FROM artifacts WHERE artifact_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// List retrieves artifacts matching the "title" and "artist" criteria, ordered by id.
//
// Criteria are exact matches; empty values are ignored.
func (r *ArtifactRepository) List(criteria map[string]any) ([]*models.Artifact, error) {
	query := "SELECT " + artifactColumns + " FROM artifacts WHERE 1 = 1"
	args := []any{}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title = ?"
		args = append(args, title)
	}

	if artist, ok := criteria["artist"].(string); ok && artist != "" {
		query += " AND artist = ?"
		args = append(args, artist)
	}

	query += " ORDER BY artifact_id ASC"

	rows, err := r.store.FetchAll(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}

	artifacts := make([]*models.Artifact, 0, len(rows))
	for _, row := range rows {
		artifact, err := scanArtifact(row)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	return artifacts, nil
}

// MaxID returns the largest artifact id, or 0 when the table is empty.
func (r *ArtifactRepository) MaxID() (int64, error) {
	row, err := r.store.FetchOne("SELECT COALESCE(MAX(artifact_id), 0) FROM artifacts")
	if err != nil {
		return 0, fmt.Errorf("failed to query max artifact id: %w", err)
	}
	if row == nil {
		return 0, nil
	}
	return row.Int64(0)
}

// Exists reports whether a row with id is present.
func (r *ArtifactRepository) Exists(id int64) (bool, error) {
	row, err := r.store.FetchOne("SELECT 1 FROM artifacts WHERE artifact_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check artifact: %w", err)
	}
	return row != nil, nil
}

// Count returns the number of stored artifacts.
func (r *ArtifactRepository) Count() (int64, error) {
	row, err := r.store.FetchOne("SELECT COUNT(*) FROM artifacts")
	if err != nil {
		return 0, fmt.Errorf("failed to count artifacts: %w", err)
	}
	return row.Int64(0)
}

func scanArtifact(row Row) (*models.Artifact, error) {
	id, err := row.Int64(0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan artifact id: %w", err)
	}

	fields := make([]string, 6)
	for i := range fields {
		if fields[i], err = row.String(i + 1); err != nil {
			return nil, fmt.Errorf("failed to scan artifact %d: %w", id, err)
		}
	}

	createdAt, err := shared.ParseTimestamp(fields[3])
	if err != nil {
		return nil, err
	}
	updatedAt, err := shared.ParseTimestamp(fields[4])
	if err != nil {
		return nil, err
	}

	artifact := models.NewArtifact(id, fields[0], fields[1], fields[2], fields[5], createdAt)
	artifact.SetUpdatedAt(updatedAt)
	return artifact, nil
}
