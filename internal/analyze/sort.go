package analyze

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lszip/internal/model"
)

// SortTree recursively orders every directory's children in place:
// directories before files, and within each kind ascending collated name
// order. Names are unique among siblings so the order is total, and sorting
// an already-sorted tree is a no-op.
func SortTree(root *model.Dir) {
	// Collators are not safe for concurrent use; each sort owns its own.
	sortDir(root, collate.New(language.Und))
}

func sortDir(d *model.Dir, c *collate.Collator) {
	slices.SortStableFunc(d.Children, func(a, b model.Node) int {
		aDir, aName := kindAndName(a)
		bDir, bName := kindAndName(b)
		if aDir != bDir {
			if aDir {
				return -1
			}
			return 1
		}
		return c.CompareString(aName, bName)
	})

	for _, child := range d.Children {
		if sub, ok := child.(*model.Dir); ok {
			sortDir(sub, c)
		}
	}
}

func kindAndName(n model.Node) (isDir bool, name string) {
	switch v := n.(type) {
	case *model.Dir:
		return true, v.Name
	case *model.File:
		return false, v.Name
	}
	return false, ""
}
