package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func testBranch() *BranchDescriptor {
	at := time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)
	parent := NewVersion(1, 0)
	return &BranchDescriptor{
		Name:      "main",
		Timestamp: at,
		Seq:       2,
		Heads:     map[string]Version{"a.txt": NewVersion(1, 1)},
		BaseHeads: nil,
		Commits: []Commit{
			{Path: "a.txt", Version: NewVersion(1, 0), Branch: "main", Seq: 1, Timestamp: at,
				Contributor: Contributor{Name: "ritesh", Email: "ritesh@example.com"}},
			{Path: "a.txt", Version: NewVersion(1, 1), Parent: &parent, Message: "tweak",
				Branch: "main", Seq: 2, Timestamp: at.Add(time.Second),
				Contributor: Contributor{Name: "ritesh", Email: "ritesh@example.com"}},
		},
	}
}

func TestBranchDescriptorRoundTrip(t *testing.T) {
	b := testBranch()

	buf, err := yaml.Marshal(b)
	require.NoError(t, err)

	var reloaded BranchDescriptor
	require.NoError(t, yaml.Unmarshal(buf, &reloaded))
	assert.Equal(t, *b, reloaded)
	require.NotNil(t, reloaded.Commits[1].Parent)
	assert.Equal(t, "1.0", reloaded.Commits[1].Parent.String())
}

func TestBranchClone(t *testing.T) {
	b := testBranch()
	clone := b.Clone("feature", b.Timestamp.Add(time.Minute))

	assert.Equal(t, "feature", clone.Name)
	assert.Equal(t, "main", clone.CreatedFrom)
	assert.Equal(t, b.Seq, clone.Seq)
	assert.Equal(t, b.Heads, clone.BaseHeads)

	// the clone shares nothing with its parent
	clone.Heads["a.txt"] = NewVersion(2, 0)
	clone.Commits[0].Path = "other.txt"
	assert.Equal(t, NewVersion(1, 1), b.Heads["a.txt"])
	assert.Equal(t, "a.txt", b.Commits[0].Path)
}

func TestBranchHasCommit(t *testing.T) {
	b := testBranch()

	assert.True(t, b.HasCommit("a.txt", NewVersion(1, 0)))
	assert.False(t, b.HasCommit("a.txt", NewVersion(2, 0)))
	assert.False(t, b.HasCommit("b.txt", NewVersion(1, 0)))

	head, ok := b.Head("a.txt")
	require.True(t, ok)
	assert.Equal(t, "1.1", head.String())
	_, ok = b.BaseHead("a.txt")
	assert.False(t, ok)
}
