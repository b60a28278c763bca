package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileName(t *testing.T) {
	name := NewFileName("Deck.PDF")
	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-f-]{36}\.pdf$`), name)
	assert.NotEqual(t, name, NewFileName("Deck.PDF"))
	assert.NotContains(t, NewFileName("noext"), ".")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "application/octet-stream", ContentType("a.unknownext"))
}

func TestDiskStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewDiskStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "1-a.pdf", strings.NewReader("%PDF-1.4")))

	data, err := os.ReadFile(filepath.Join(dir, "1-a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	rc, err := store.Open(ctx, "1-a.pdf")
	require.NoError(t, err)
	read, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(read))

	require.NoError(t, store.Delete(ctx, "1-a.pdf"))
	_, err = os.Stat(filepath.Join(dir, "1-a.pdf"))
	assert.True(t, os.IsNotExist(err))

	t.Run("deleting a missing file is fine", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "1-a.pdf"))
	})
	t.Run("opening a missing file is not found", func(t *testing.T) {
		_, err := store.Open(ctx, "1-a.pdf")
		assert.True(t, errs.IsNotFound(err))
	})
	t.Run("names cannot escape the directory", func(t *testing.T) {
		for _, name := range []string{"../x.pdf", "a/b.pdf", "..", ""} {
			assert.True(t, errs.IsInvalidFieldError(store.Save(ctx, name, strings.NewReader("x"))), name)
		}
	})
}

type fakeObjects struct {
	objects map[string][]byte
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}}
	store := NewS3Store(fake, "site", "/presentations/")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "1-a.pdf", strings.NewReader("deck")))
	assert.Equal(t, []byte("deck"), fake.objects["site/presentations/1-a.pdf"])

	rc, err := store.Open(ctx, "1-a.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "deck", string(data))

	require.NoError(t, store.Delete(ctx, "1-a.pdf"))
	assert.Empty(t, fake.objects)

	_, err = store.Open(ctx, "1-a.pdf")
	assert.True(t, errs.IsNotFound(err))

	fake.err = errors.New("throttled")
	err = store.Save(ctx, "2-b.pdf", strings.NewReader("x"))
	assert.True(t, errs.IsFileStorageError(err))
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, map[string]string{"UPLOAD_DIR": t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &DiskStore{}, store)

	_, err = New(ctx, map[string]string{"UPLOAD_BACKEND": "s3"})
	assert.Error(t, err)

	_, err = New(ctx, map[string]string{"UPLOAD_BACKEND": "ftp"})
	assert.Error(t, err)
}
