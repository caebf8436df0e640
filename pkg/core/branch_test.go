package core

import (
	"context"
	"testing"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBranch(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	err := r.CreateBranch(ctx, "feature", "main")
	require.ErrorIs(t, err, status.ErrBranchExists)

	err = r.CreateBranch(ctx, "orphan", "nope")
	require.ErrorIs(t, err, status.ErrNotFound)

	branches, err := r.ListBranches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"feature", "main"}, branches)

	// the fork sees the parent's content immediately
	buf, err := r.Checkout(ctx, "feature", "a.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "base", string(buf))
}

func TestBranchIndependence(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	mustCommit(t, r, "feature", "a.txt", "changed on feature", nil)

	buf, err := r.Checkout(ctx, "main", "a.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "base", string(buf))

	main, err := r.GetBranch(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "1.0", main.Heads["a.txt"].String())

	feature, err := r.GetBranch(ctx, "feature")
	require.NoError(t, err)
	assert.Equal(t, "1.1", feature.Heads["a.txt"].String())
	assert.Equal(t, "main", feature.CreatedFrom)
	assert.Equal(t, "1.0", feature.BaseHeads["a.txt"].String())
}

func TestCreateBranchKeepsFullHistory(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "v1", nil)
	mustCommit(t, r, "main", "a.txt", "v2", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	// a pre-fork, non-head version stays retrievable on the fork
	buf, err := r.Checkout(ctx, "feature", "a.txt", vp(1, 0))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(buf))

	// the stored versions agree with the cloned log
	versions, err := r.ListVersions(ctx, "feature", "a.txt")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "1.0", versions[0].String())
	assert.Equal(t, "1.1", versions[1].String())

	history, err := r.History(ctx, "feature", "a.txt")
	require.NoError(t, err)
	assert.Len(t, history, len(versions))
}

func TestMergeFastForward(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))
	mustCommit(t, r, "feature", "a.txt", "improved", nil)
	mustCommit(t, r, "feature", "new.txt", "brand new", nil)

	result, err := r.Merge(ctx, "feature", "main", testContributor)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "new.txt"}, result.Merged)
	assert.Empty(t, result.Conflicted)

	buf, err := r.Checkout(ctx, "main", "a.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "improved", string(buf))

	buf, err = r.Checkout(ctx, "main", "new.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "brand new", string(buf))

	// fast-forward bumps the target's own version number and records provenance
	latest, err := r.Latest(ctx, "main", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.1", latest.Version.String())
	require.NotNil(t, latest.Parent)
	assert.Equal(t, "1.1", latest.Parent.String())

	// a path never tracked on the target keeps the source's version
	latest, err = r.Latest(ctx, "main", "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.0", latest.Version.String())
}

func TestMergeConflict(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "b.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	mustCommit(t, r, "main", "b.txt", "changed on main", nil)
	mustCommit(t, r, "feature", "b.txt", "changed on feature", nil)
	mustCommit(t, r, "feature", "ok.txt", "mergeable", nil)

	result, err := r.Merge(ctx, "feature", "main", testContributor)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, result.Merged)
	assert.Equal(t, []string{"b.txt"}, result.Conflicted)

	// the conflicted path is left untouched on the target
	buf, err := r.Checkout(ctx, "main", "b.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "changed on main", string(buf))

	main, err := r.GetBranch(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "1.1", main.Heads["b.txt"].String())
}

func TestMergeIdenticalContent(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "c.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	mustCommit(t, r, "main", "c.txt", "same fix", nil)
	mustCommit(t, r, "feature", "c.txt", "same fix", nil)

	result, err := r.Merge(ctx, "feature", "main", testContributor)
	require.NoError(t, err)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicted)

	// no extra commit was produced
	history, err := r.History(ctx, "main", "c.txt")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestMergeSelf(t *testing.T) {
	r := setupRepo(t)

	mustCommit(t, r, "main", "a.txt", "x", nil)

	result, err := r.Merge(context.Background(), "main", "main", testContributor)
	require.NoError(t, err)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicted)
}

func TestMergeUnknownBranch(t *testing.T) {
	r := setupRepo(t)

	_, err := r.Merge(context.Background(), "ghost", "main", testContributor)
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestMergeNothingToDo(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "base", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))

	result, err := r.Merge(ctx, "feature", "main", testContributor)
	require.NoError(t, err)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicted)

	// merging the other way is just as quiet
	result, err = r.Merge(ctx, "main", "feature", testContributor)
	require.NoError(t, err)
	assert.Empty(t, result.Merged)
	assert.Empty(t, result.Conflicted)
}

func TestMergeRecordsVersionOnBranchRecord(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "v1", nil)
	require.NoError(t, r.CreateBranch(ctx, "feature", "main"))
	mustCommit(t, r, "feature", "a.txt", "v2", vp(2, 0))

	_, err := r.Merge(ctx, "feature", "main", testContributor)
	require.NoError(t, err)

	// the merge commit gets the target's next version, not the source's
	latest, err := r.Latest(ctx, "main", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.1", latest.Version.String())
	require.NotNil(t, latest.Parent)
	assert.Equal(t, model.NewVersion(2, 0), *latest.Parent)
}
