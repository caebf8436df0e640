package core

import (
	"context"
	"fmt"

	"github.com/oneconcern/filemon/pkg/diff"
	"github.com/oneconcern/filemon/pkg/model"
)

// Diff aligns two stored versions of a file line by line.
// Either version being absent fails with status.ErrNotFound.
func (r *Repo) Diff(ctx context.Context, branch, path string, older, newer model.Version) ([]diff.LineEdit, error) {
	a, b, err := r.contents(ctx, branch, path, older, newer)
	if err != nil {
		return nil, err
	}
	return diff.Lines(a, b), nil
}

// DiffMetrics totals added and removed lines between two stored versions
func (r *Repo) DiffMetrics(ctx context.Context, branch, path string, older, newer model.Version) (diff.Metrics, error) {
	edits, err := r.Diff(ctx, branch, path, older, newer)
	if err != nil {
		return diff.Metrics{}, err
	}
	return diff.Count(edits), nil
}

// DiffUnified renders a unified diff between two stored versions
func (r *Repo) DiffUnified(ctx context.Context, branch, path string, older, newer model.Version) (string, error) {
	a, b, err := r.contents(ctx, branch, path, older, newer)
	if err != nil {
		return "", err
	}
	return diff.Unified(
		fmt.Sprintf("%s@%s", path, older),
		fmt.Sprintf("%s@%s", path, newer),
		a, b)
}

func (r *Repo) contents(ctx context.Context, branch, path string, older, newer model.Version) ([]byte, []byte, error) {
	a, err := r.Checkout(ctx, branch, path, &older)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.Checkout(ctx, branch, path, &newer)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
