package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (r *recordingRemover) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, name)
	return r.err
}

func newTestPresentationRepo(t *testing.T) (*PresentationRepo, *recordingRemover) {
	t.Helper()
	files := &recordingRemover{}
	return NewPresentationRepo(filepath.Join(t.TempDir(), PresentationsFile), files), files
}

func storedFile(name string) models.StoredFile {
	return models.StoredFile{Name: name, Path: models.DefaultUploadPath + name}
}

func TestPresentationRepoFreshDocument(t *testing.T) {
	repo, _ := newTestPresentationRepo(t)

	assert.Empty(t, repo.FindAll())
	assert.Equal(t, models.DefaultCategories, repo.Categories())
	assert.Equal(t, models.DefaultAllowedFormats, repo.Settings().Formats())
	assert.Equal(t, models.DefaultUploadPath, repo.Settings().UploadPath)
}

func TestPresentationRepoAdd(t *testing.T) {
	repo, _ := newTestPresentationRepo(t)
	ctx := context.Background()

	p, err := repo.Add(ctx, models.PresentationInput{Title: "Test One", Category: "business", Featured: "true"}, storedFile("1-a.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "test-one", p.ID)
	assert.Equal(t, "Test One-ДИАВЕР.pdf", p.DownloadName)
	assert.Equal(t, models.DefaultPresentationDuration, p.Duration)
	assert.Equal(t, "/assets/presentations/1-a.pdf", p.File)
	assert.Equal(t, "1-a.pdf", p.FileName)
	assert.True(t, p.Featured)
	assert.Zero(t, p.DemoRequests)

	found, err := repo.FindByID("test-one")
	require.NoError(t, err)
	assert.Equal(t, p.Title, found.Title)
}

func TestPresentationRepoSameTitleOverwrites(t *testing.T) {
	repo, files := newTestPresentationRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, models.PresentationInput{Title: "Test One", Category: "business", Description: "first"}, storedFile("1-a.pdf"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.PresentationInput{Title: "Test One", Category: "business", Description: "second"}, storedFile("2-b.pdf"))
	require.NoError(t, err)

	all := repo.FindAll()
	require.Len(t, all, 1)
	assert.Equal(t, "test-one", all[0].ID)
	assert.Equal(t, "second", all[0].Description)
	assert.Equal(t, []string{"1-a.pdf"}, files.removed)
}

func TestPresentationRepoCategoryAppendedOnce(t *testing.T) {
	repo, _ := newTestPresentationRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, models.PresentationInput{Title: "One", Category: "healthcare"}, storedFile("1.pdf"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.PresentationInput{Title: "Two", Category: "healthcare"}, storedFile("2.pdf"))
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.PresentationInput{Title: "Three", Category: "finance"}, storedFile("3.pdf"))
	require.NoError(t, err)

	want := append(append([]string(nil), models.DefaultCategories...), "healthcare")
	assert.Equal(t, want, repo.Categories())

	t.Run("categories survive deletes", func(t *testing.T) {
		_, err := repo.Delete(ctx, "one")
		require.NoError(t, err)
		_, err = repo.Delete(ctx, "two")
		require.NoError(t, err)
		assert.Equal(t, want, repo.Categories())
	})
}

func TestPresentationRepoAddRejectsInput(t *testing.T) {
	repo, files := newTestPresentationRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, models.PresentationInput{Title: "No category"}, storedFile("1.pdf"))
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	_, err = repo.Add(ctx, models.PresentationInput{Title: "«»", Category: "business"}, storedFile("2.pdf"))
	assert.True(t, errs.IsInvalidFieldError(err))

	assert.Empty(t, repo.FindAll())
	assert.Equal(t, []string{"1.pdf", "2.pdf"}, files.removed)
}

func TestPresentationRepoUpdate(t *testing.T) {
	repo, files := newTestPresentationRepo(t)
	ctx := context.Background()
	created, err := repo.Add(ctx, models.PresentationInput{Title: "Deck", Category: "business", Description: "old", Featured: "true"}, storedFile("1.pdf"))
	require.NoError(t, err)

	title := "Deck Renamed"
	empty := ""
	featured := "yes"
	newFile := storedFile("2.pdf")
	updated, err := repo.Update(ctx, "deck", models.PresentationPatch{
		Title:       &title,
		Description: &empty,
		Featured:    &featured,
		File:        &newFile,
	})
	require.NoError(t, err)

	assert.Equal(t, "deck", updated.ID)
	assert.Equal(t, "Deck Renamed", updated.Title)
	assert.Equal(t, "Deck Renamed-ДИАВЕР.pdf", updated.DownloadName)
	assert.Equal(t, "old", updated.Description)
	assert.False(t, updated.Featured)
	assert.Equal(t, "2.pdf", updated.FileName)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, []string{"1.pdf"}, files.removed)

	t.Run("missing id removes the new upload", func(t *testing.T) {
		files.removed = nil
		upload := storedFile("3.pdf")
		_, err := repo.Update(ctx, "nope", models.PresentationPatch{File: &upload})
		assert.True(t, errs.IsNotFound(err))
		assert.Equal(t, []string{"3.pdf"}, files.removed)
		assert.Len(t, repo.FindAll(), 1)
	})
}

func TestPresentationRepoDelete(t *testing.T) {
	repo, files := newTestPresentationRepo(t)
	ctx := context.Background()
	_, err := repo.Add(ctx, models.PresentationInput{Title: "Deck", Category: "business"}, storedFile("1.pdf"))
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, "deck")
	require.NoError(t, err)
	assert.Equal(t, "Deck", removed.Title)
	assert.Equal(t, []string{"1.pdf"}, files.removed)
	assert.Empty(t, repo.FindAll())

	_, err = repo.FindByID("deck")
	assert.True(t, errs.IsNotFound(err))
	_, err = repo.Delete(ctx, "deck")
	assert.True(t, errs.IsNotFound(err))
}

func TestPresentationRepoDeleteSurvivesFileError(t *testing.T) {
	repo, files := newTestPresentationRepo(t)
	files.err = errors.New("disk gone")
	ctx := context.Background()
	_, err := repo.Add(ctx, models.PresentationInput{Title: "Deck", Category: "business"}, storedFile("1.pdf"))
	require.NoError(t, err)

	_, err = repo.Delete(ctx, "deck")
	require.NoError(t, err)
	assert.Empty(t, repo.FindAll())
}

func TestPresentationRepoDemoRequestsAndOrder(t *testing.T) {
	repo, _ := newTestPresentationRepo(t)
	ctx := context.Background()
	for _, title := range []string{"First", "Second"} {
		_, err := repo.Add(ctx, models.PresentationInput{Title: title, Category: "business"}, storedFile(title+".pdf"))
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		_, err := repo.RecordDemoRequest("second")
		require.NoError(t, err)
	}
	p, err := repo.FindByID("second")
	require.NoError(t, err)
	assert.Equal(t, 3, p.DemoRequests)

	_, err = repo.RecordDemoRequest("missing")
	assert.True(t, errs.IsNotFound(err))

	all := repo.FindAll()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].ID)
	assert.Equal(t, 2, repo.Count())
}
