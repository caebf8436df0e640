package core

import (
	"context"
	"testing"

	"github.com/oneconcern/filemon/pkg/core/status"
	"github.com/oneconcern/filemon/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTag(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "x", nil)
	mustCommit(t, r, "main", "a.txt", "y", nil)

	require.NoError(t, r.AddTag(ctx, "release-1", "main", "a.txt", model.NewVersion(1, 0), testContributor))

	tag, err := r.GetTag(ctx, "release-1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", tag.Path)
	assert.Equal(t, "1.0", tag.Version.String())
	assert.Equal(t, "main", tag.Branch)
}

func TestAddTagCollision(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "x", nil)
	mustCommit(t, r, "main", "a.txt", "y", nil)

	require.NoError(t, r.AddTag(ctx, "pinned", "main", "a.txt", model.NewVersion(1, 0), testContributor))

	err := r.AddTag(ctx, "pinned", "main", "a.txt", model.NewVersion(1, 1), testContributor)
	require.ErrorIs(t, err, status.ErrTagExists)

	// the original target is unchanged
	tag, err := r.GetTag(ctx, "pinned")
	require.NoError(t, err)
	assert.Equal(t, "1.0", tag.Version.String())
}

func TestAddTagMissingTarget(t *testing.T) {
	r := setupRepo(t)

	err := r.AddTag(context.Background(), "ghost", "main", "a.txt", model.NewVersion(1, 0), testContributor)
	require.ErrorIs(t, err, status.ErrNotFound)
}

func TestListTagsInsertionOrder(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	mustCommit(t, r, "main", "a.txt", "x", nil)
	mustCommit(t, r, "main", "b.txt", "y", nil)

	require.NoError(t, r.AddTag(ctx, "zulu", "main", "a.txt", model.NewVersion(1, 0), testContributor))
	require.NoError(t, r.AddTag(ctx, "alpha", "main", "b.txt", model.NewVersion(1, 0), testContributor))

	tags, err := r.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	// insertion order, not lexical order
	assert.Equal(t, "zulu", tags[0].Name)
	assert.Equal(t, "alpha", tags[1].Name)

	_, err = r.GetTag(ctx, "missing")
	require.ErrorIs(t, err, status.ErrNotFound)
}
