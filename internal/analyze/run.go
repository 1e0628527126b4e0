package analyze

import (
	"context"

	"lszip/internal/archive"
	"lszip/internal/model"
)

// Run opens the named archive file and builds its full content tree and
// summary. Each call is one self-contained analysis: nothing is shared or
// cached between runs, and on any error no partial result is returned.
func Run(ctx context.Context, name string) (model.Result, error) {
	a, err := archive.Open(ctx, name)
	if err != nil {
		return model.Result{}, err
	}
	defer a.Close()

	tree, summary, err := Build(ctx, a.Entries())
	if err != nil {
		return model.Result{}, err
	}

	return model.Result{ArchiveName: a.Name, Tree: tree, Summary: summary}, nil
}
