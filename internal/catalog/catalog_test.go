package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/repositories"
	"github.com/desertthunder/tunevault/internal/shared"
)

var fixedNow = time.Date(2024, 6, 1, 9, 15, 0, 250000000, time.Local)

func setupTestCatalog(t *testing.T) (*Catalog, *repositories.Store) {
	t.Helper()

	store, err := repositories.OpenStore(shared.MemoryPath, 0)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Initialize("admin", "admin123"); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	c := NewFromStore(store, NewSessions(), nil, WithClock(func() time.Time { return fixedNow }))
	return c, store
}

func storeTestArtifact(t *testing.T, c *Catalog, title, content string) *models.Artifact {
	t.Helper()

	id, err := c.NextArtifactID()
	if err != nil {
		t.Fatalf("NextArtifactID() error = %v", err)
	}

	a := models.NewArtifact(id, title, "Artist X", c.TransformContent(content), c.Checksum(content), c.Now())
	if err := c.StoreArtifact(a); err != nil {
		t.Fatalf("StoreArtifact() error = %v", err)
	}
	return a
}

func mustAuthenticate(t *testing.T, c *Catalog, username, password string) bool {
	t.Helper()
	ok, err := c.IsAuthenticated(username, password)
	if err != nil {
		t.Fatalf("IsAuthenticated(%q) error = %v", username, err)
	}
	return ok
}

func mustExist(t *testing.T, c *Catalog, id int64) bool {
	t.Helper()
	exists, err := c.ArtifactExists(id)
	if err != nil {
		t.Fatalf("ArtifactExists(%d) error = %v", id, err)
	}
	return exists
}

func TestTransformContent(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii", in: "hello", want: "olleh"},
		{name: "empty", in: "", want: ""},
		{name: "single", in: "a", want: "a"},
		{name: "multibyte", in: "héllo✓", want: "✓olléh"},
		{name: "palindrome", in: "racecar", want: "racecar"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformContent(tt.in)
			if got != tt.want {
				t.Errorf("TransformContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if back := TransformContent(got); back != tt.in {
				t.Errorf("transforming twice gave %q, want %q", back, tt.in)
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	const helloSum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	if got := Checksum("hello"); got != helloSum {
		t.Errorf("Checksum(hello) = %s, want %s", got, helloSum)
	}
	if Checksum("world") != Checksum("world") {
		t.Error("checksum should be deterministic")
	}
	if Checksum("hello") == Checksum("world") {
		t.Error("different content should not share a checksum")
	}
	if got := len(Checksum("")); got != models.ChecksumLength {
		t.Errorf("expected %d hex characters, got %d", models.ChecksumLength, got)
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	if s.Has("admin") {
		t.Fatal("new set should be empty")
	}

	first := s.Add("admin", fixedNow)
	second := s.Add("admin", fixedNow.Add(time.Minute))

	if first != second {
		t.Errorf("re-adding should keep the original session, got %+v then %+v", first, second)
	}
	if first.ID == "" {
		t.Error("expected a session id")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 session, got %d", s.Len())
	}

	got, ok := s.Get("admin")
	if !ok {
		t.Fatal("expected session for admin")
	}
	if !got.AuthenticatedAt.Equal(fixedNow) {
		t.Errorf("AuthenticatedAt = %v, want %v", got.AuthenticatedAt, fixedNow)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid credentials join the session set", func(t *testing.T) {
		c, _ := setupTestCatalog(t)

		ok, err := c.Authenticate("admin", "admin123")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if !ok {
			t.Error("expected valid credentials to authenticate")
		}
		if !c.Sessions().Has("admin") {
			t.Error("expected admin in the session set")
		}
	})

	t.Run("wrong password has no side effects", func(t *testing.T) {
		c, _ := setupTestCatalog(t)

		ok, err := c.Authenticate("admin", "nope")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if ok {
			t.Error("expected wrong password to be rejected")
		}
		if c.Sessions().Len() != 0 {
			t.Errorf("expected empty session set, got %d", c.Sessions().Len())
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		c, _ := setupTestCatalog(t)

		ok, err := c.Authenticate("ghost", "admin123")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if ok {
			t.Error("expected unknown user to be rejected")
		}
	})

	t.Run("storage fault is returned", func(t *testing.T) {
		c, store := setupTestCatalog(t)
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		_, err := c.Authenticate("admin", "admin123")
		if !errors.Is(err, shared.ErrStorageUnavailable) {
			t.Errorf("expected ErrStorageUnavailable, got %v", err)
		}
	})
}

func TestIsAuthenticated(t *testing.T) {
	t.Run("delegates when not yet authenticated", func(t *testing.T) {
		c, _ := setupTestCatalog(t)

		if mustAuthenticate(t, c, "admin", "wrong") {
			t.Error("expected wrong password to be rejected")
		}
		if !mustAuthenticate(t, c, "admin", "admin123") {
			t.Error("expected valid credentials to authenticate")
		}
	})

	t.Run("password is not rechecked once authenticated", func(t *testing.T) {
		c, store := setupTestCatalog(t)

		if !mustAuthenticate(t, c, "admin", "admin123") {
			t.Fatal("expected valid credentials to authenticate")
		}

		for _, pw := range []string{"", "wrong", "admin123"} {
			if !mustAuthenticate(t, c, "admin", pw) {
				t.Errorf("password %q should pass for an authenticated user", pw)
			}
		}

		if _, err := store.Exec("UPDATE users SET password = ? WHERE username = ?", "rotated", "admin"); err != nil {
			t.Fatalf("failed to rotate password: %v", err)
		}
		if !mustAuthenticate(t, c, "admin", "anything") {
			t.Error("cached session should outlive a password change")
		}
	})

	t.Run("sessions are per set", func(t *testing.T) {
		c, store := setupTestCatalog(t)
		mustAuthenticate(t, c, "admin", "admin123")

		other := NewFromStore(store, NewSessions(), nil)
		if mustAuthenticate(t, other, "admin", "wrong") {
			t.Error("a separate session set should recheck the password")
		}
	})
}

func TestNextArtifactID(t *testing.T) {
	c, _ := setupTestCatalog(t)

	id, err := c.NextArtifactID()
	if err != nil {
		t.Fatalf("NextArtifactID() error = %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id 1, got %d", id)
	}

	storeTestArtifact(t, c, "Song A", "hello")
	second := storeTestArtifact(t, c, "Song B", "world")
	if second.ID() != 2 {
		t.Errorf("expected second id 2, got %d", second.ID())
	}

	t.Run("deleting the maximum frees its id", func(t *testing.T) {
		if err := c.DeleteArtifact(second.ID()); err != nil {
			t.Fatalf("DeleteArtifact() error = %v", err)
		}

		id, err := c.NextArtifactID()
		if err != nil {
			t.Fatalf("NextArtifactID() error = %v", err)
		}
		if id != 2 {
			t.Errorf("expected id 2 to be reused, got %d", id)
		}
	})
}

func TestArtifactLifecycle(t *testing.T) {
	c, _ := setupTestCatalog(t)

	a := storeTestArtifact(t, c, "Song A", "hello")
	if !mustExist(t, c, a.ID()) {
		t.Fatal("stored artifact should exist")
	}

	got, err := c.GetArtifact(a.ID())
	if err != nil {
		t.Fatalf("GetArtifact() error = %v", err)
	}
	if got.Content() != "olleh" {
		t.Errorf("stored content = %q, want olleh", got.Content())
	}
	if decoded := c.DecodeContent(got); decoded != "hello" {
		t.Errorf("DecodeContent() = %q, want hello", decoded)
	}
	if got.Checksum() != Checksum("hello") {
		t.Errorf("checksum = %s, want checksum of hello", got.Checksum())
	}

	got.SetContent(c.TransformContent("world"))
	got.SetChecksum(c.Checksum("world"))
	got.SetUpdatedAt(fixedNow.Add(time.Hour))
	if err := c.UpdateArtifact(got); err != nil {
		t.Fatalf("UpdateArtifact() error = %v", err)
	}

	updated, err := c.GetArtifact(a.ID())
	if err != nil {
		t.Fatalf("GetArtifact() error = %v", err)
	}
	if updated.Content() != "dlrow" {
		t.Errorf("updated content = %q, want dlrow", updated.Content())
	}
	if !updated.CreatedAt().Equal(fixedNow) {
		t.Errorf("creation date changed to %v", updated.CreatedAt())
	}

	list, err := c.ListArtifacts(map[string]any{"artist": "Artist X"})
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 artifact, got %d", len(list))
	}

	if err := c.DeleteArtifact(a.ID()); err != nil {
		t.Fatalf("DeleteArtifact() error = %v", err)
	}
	if mustExist(t, c, a.ID()) {
		t.Error("deleted artifact should not exist")
	}
}

func TestVerifyArtifact(t *testing.T) {
	t.Run("intact", func(t *testing.T) {
		c, _ := setupTestCatalog(t)
		a := storeTestArtifact(t, c, "Song A", "hello")

		v, err := c.VerifyArtifact(a.ID())
		if err != nil {
			t.Fatalf("VerifyArtifact() error = %v", err)
		}
		if !v.OK() {
			t.Errorf("expected intact artifact to verify, got %+v", v)
		}
		if err := v.Err(); err != nil {
			t.Errorf("Err() = %v, want nil", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		c, store := setupTestCatalog(t)
		a := storeTestArtifact(t, c, "Song A", "hello")

		if _, err := store.Exec("UPDATE artifacts SET content = ? WHERE artifact_id = ?", "dlrow", a.ID()); err != nil {
			t.Fatalf("failed to tamper with artifact: %v", err)
		}

		v, err := c.VerifyArtifact(a.ID())
		if err != nil {
			t.Fatalf("VerifyArtifact() error = %v", err)
		}
		if v.OK() {
			t.Error("expected tampered artifact to fail verification")
		}
		if v.Actual != Checksum("world") {
			t.Errorf("Actual = %s, want checksum of world", v.Actual)
		}
		if !errors.Is(v.Err(), shared.ErrChecksumMismatch) {
			t.Errorf("expected ErrChecksumMismatch, got %v", v.Err())
		}
	})

	t.Run("missing", func(t *testing.T) {
		c, _ := setupTestCatalog(t)
		if _, err := c.VerifyArtifact(9); !errors.Is(err, shared.ErrArtifactNotFound) {
			t.Errorf("expected ErrArtifactNotFound, got %v", err)
		}
	})
}
