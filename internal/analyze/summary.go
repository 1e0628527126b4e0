package analyze

import "lszip/internal/model"

// Summarize walks a (sub)tree and tallies the same Summary the builder
// accumulates incrementally during Build. For the root the two must agree
// exactly; for an inner directory it yields that subtree's share, which the
// detail views use.
func Summarize(d *model.Dir) model.Summary {
	var s model.Summary
	tally(d, &s)
	return s
}

func tally(d *model.Dir, s *model.Summary) {
	for _, child := range d.Children {
		switch v := child.(type) {
		case *model.Dir:
			tally(v, s)
		case *model.File:
			s.TotalFiles++
			if v.Analyzable {
				s.AnalyzableFiles++
				s.TotalLines += v.LineCount
			} else {
				s.OpaqueFiles++
			}
			s.TotalSize += v.Size
		}
	}
}
