package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/shared"
)

var _ list.Item = artifactItem{}

// artifactItem wraps [models.Artifact] to implement [list.Item].
type artifactItem struct {
	artifact *models.Artifact
}

func (i artifactItem) FilterValue() string { return i.artifact.Title() + " " + i.artifact.Artist() }
func (i artifactItem) Title() string {
	return fmt.Sprintf("#%d %s", i.artifact.ID(), i.artifact.Title())
}
func (i artifactItem) Description() string {
	return fmt.Sprintf("%s • modified %s", i.artifact.Artist(), shared.FormatTimestamp(i.artifact.UpdatedAt()))
}

func artifactItems(artifacts []*models.Artifact) []list.Item {
	items := make([]list.Item, len(artifacts))
	for i, a := range artifacts {
		items[i] = artifactItem{artifact: a}
	}
	return items
}
