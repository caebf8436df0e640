package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/oneconcern/filemon/pkg/storage"
	"github.com/oneconcern/filemon/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testContributor = model.Contributor{Name: "ritesh", Email: "ritesh@example.com"}

func setupRepo(t testing.TB, opts ...Option) *Repo {
	t.Helper()

	base := []Option{
		MetaStore(localfs.New(afero.NewMemMapFs())),
		BlobStore(localfs.New(afero.NewMemMapFs())),
		Clock(fakeClock()),
	}
	r := New(append(base, opts...)...)
	require.NoError(t, r.Initialize(context.Background()))
	return r
}

// fakeClock yields strictly increasing timestamps
func fakeClock() func() time.Time {
	now := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func mustCommit(t testing.TB, r *Repo, branch, path, content string, version *model.Version) model.Commit {
	t.Helper()
	c, err := r.Commit(context.Background(), CommitParams{
		Branch:      branch,
		Path:        path,
		Content:     []byte(content),
		Contributor: testContributor,
		Version:     version,
	})
	require.NoError(t, err)
	return c
}

func vp(major, minor uint64) *model.Version {
	v := model.NewVersion(major, minor)
	return &v
}

func TestCommitAssignsVersions(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	c1 := mustCommit(t, r, "main", "a.txt", "x\ny", nil)
	assert.Equal(t, "1.0", c1.Version.String())
	assert.Equal(t, uint64(1), c1.Seq)

	c2 := mustCommit(t, r, "main", "a.txt", "x\nz", nil)
	assert.Equal(t, "1.1", c2.Version.String())
	assert.Equal(t, uint64(2), c2.Seq)
	assert.True(t, c1.Timestamp.Before(c2.Timestamp))

	c3 := mustCommit(t, r, "main", "a.txt", "x\nz\nw", vp(2, 0))
	assert.Equal(t, "2.0", c3.Version.String())

	_, err := r.Commit(ctx, CommitParams{
		Branch: "main", Path: "a.txt", Content: []byte("stale"),
		Contributor: testContributor, Version: vp(1, 5),
	})
	require.ErrorIs(t, err, model.ErrVersionOutOfOrder)
}

func TestCommitRejectsStoredDuplicate(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	// a version landed in the object store without a log entry
	// (e.g. leftover of an interrupted transfer)
	key := model.GetArchivePathToVersion("main", "a.txt", model.NewVersion(1, 0))
	require.NoError(t, r.blobs.Put(ctx, key, bytes.NewReader([]byte("ghost")), storage.NoOverWrite))

	_, err := r.Commit(ctx, CommitParams{
		Branch: "main", Path: "a.txt", Content: []byte("fresh"), Contributor: testContributor,
	})
	require.ErrorIs(t, err, status.ErrVersionExists)

	// the stored bytes were not overwritten
	buf, err := storage.ReadObject(ctx, r.blobs, key)
	require.NoError(t, err)
	assert.Equal(t, "ghost", string(buf))
}

func TestCommitUnknownBranch(t *testing.T) {
	r := setupRepo(t)

	_, err := r.Commit(context.Background(), CommitParams{
		Branch: "nope", Path: "a.txt", Content: []byte("x"), Contributor: testContributor,
	})
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestCheckout(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "first", nil)
	mustCommit(t, r, "main", "a.txt", "second", nil)

	buf, err := r.Checkout(ctx, "main", "a.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", string(buf))

	buf, err = r.Checkout(ctx, "main", "a.txt", vp(1, 0))
	require.NoError(t, err)
	assert.Equal(t, "first", string(buf))

	_, err = r.Checkout(ctx, "main", "a.txt", vp(9, 9))
	require.ErrorIs(t, err, status.ErrNotFound)

	_, err = r.Checkout(ctx, "main", "missing.txt", nil)
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestListVersions(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "one", nil)
	mustCommit(t, r, "main", "a.txt", "two", vp(1, 10))
	mustCommit(t, r, "main", "a.txt", "three", vp(2, 0))

	versions, err := r.ListVersions(ctx, "main", "a.txt")
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "1.0", versions[0].String())
	assert.Equal(t, "1.10", versions[1].String())
	assert.Equal(t, "2.0", versions[2].String())

	versions, err = r.ListVersions(ctx, "main", "untracked.txt")
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestHistoryAndLatest(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "one", nil)
	mustCommit(t, r, "main", "b.txt", "other", nil)
	mustCommit(t, r, "main", "a.txt", "two", nil)

	history, err := r.History(ctx, "main", "a.txt")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "1.0", history[0].Version.String())
	assert.Equal(t, "1.1", history[1].Version.String())

	all, err := r.History(ctx, "main", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// oldest first, ordered by sequence
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint64(3), all[2].Seq)

	latest, err := r.Latest(ctx, "main", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.1", latest.Version.String())

	_, err = r.Latest(ctx, "main", "missing.txt")
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestInitializeIdempotent(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "kept", nil)
	require.NoError(t, r.Initialize(ctx))

	buf, err := r.Checkout(ctx, "main", "a.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "kept", string(buf))
}

func TestDiffStoredVersions(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "x\ny", nil)
	mustCommit(t, r, "main", "a.txt", "x\nz", nil)

	edits, err := r.Diff(ctx, "main", "a.txt", model.NewVersion(1, 0), model.NewVersion(1, 1))
	require.NoError(t, err)
	require.Len(t, edits, 3)

	m, err := r.DiffMetrics(ctx, "main", "a.txt", model.NewVersion(1, 0), model.NewVersion(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Additions)
	assert.Equal(t, 1, m.Deletions)

	// a version against itself is all unchanged
	m, err = r.DiffMetrics(ctx, "main", "a.txt", model.NewVersion(1, 0), model.NewVersion(1, 0))
	require.NoError(t, err)
	assert.Zero(t, m.Additions)
	assert.Zero(t, m.Deletions)

	out, err := r.DiffUnified(ctx, "main", "a.txt", model.NewVersion(1, 0), model.NewVersion(1, 1))
	require.NoError(t, err)
	assert.Contains(t, out, "-y")
	assert.Contains(t, out, "+z")

	_, err = r.Diff(ctx, "main", "a.txt", model.NewVersion(1, 0), model.NewVersion(9, 9))
	require.ErrorIs(t, err, status.ErrNotFound)
}
