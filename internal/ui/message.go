package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/principal"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgArtifactsLoaded MsgKind = iota
	MsgArtifactVerified
	MsgArtifactDeleted
)

type artifactsLoaded struct {
	artifacts []*models.Artifact
	err       error
}

type artifactVerified struct {
	verification catalog.Verification
	err          error
}

type artifactDeleted struct {
	result principal.Result
	err    error
}

// artifactsLoadedMsg is the constructor for [MsgArtifactsLoaded]
func artifactsLoadedMsg(artifacts []*models.Artifact, err error) Msg {
	return Msg{kind: MsgArtifactsLoaded, data: artifactsLoaded{artifacts, err}}
}

// artifactVerifiedMsg is the constructor for [MsgArtifactVerified]
func artifactVerifiedMsg(v catalog.Verification, err error) Msg {
	return Msg{kind: MsgArtifactVerified, data: artifactVerified{v, err}}
}

// artifactDeletedMsg is the constructor for [MsgArtifactDeleted]
func artifactDeletedMsg(result principal.Result, err error) Msg {
	return Msg{kind: MsgArtifactDeleted, data: artifactDeleted{result, err}}
}
