package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"lszip/internal/model"
)

// GenerateReport renders a plain-text diagnostic report for one analysis:
// the content tree drawn with ASCII connectors followed by a summary block.
// Verbose adds a per-extension breakdown of the file population.
func GenerateReport(res model.Result, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Archive: %s\n\n", res.ArchiveName)

	if res.Empty() {
		b.WriteString("No files found in archive.\n")
		return b.String()
	}

	b.WriteString(model.RootName + "\n")
	writeTree(&b, res.Tree, "")

	s := res.Summary
	b.WriteString("\n--- Summary ---\n")
	fmt.Fprintf(&b, "Files total:   %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Analyzable:    %d\n", s.AnalyzableFiles)
	fmt.Fprintf(&b, "Opaque:        %d\n", s.OpaqueFiles)
	fmt.Fprintf(&b, "Lines counted: %d\n", s.TotalLines)
	fmt.Fprintf(&b, "Content size:  %s\n", humanize.Bytes(uint64(s.TotalSize)))

	if verbose {
		writeExtensionBreakdown(&b, res.Tree)
	}

	return b.String()
}

func writeTree(b *strings.Builder, d *model.Dir, indent string) {
	for i, child := range d.Children {
		last := i == len(d.Children)-1
		connector := "├── "
		if last {
			connector = "└── "
		}

		switch v := child.(type) {
		case *model.Dir:
			fmt.Fprintf(b, "%s%s%s/\n", indent, connector, v.Name)
			childIndent := indent + "│   "
			if last {
				childIndent = indent + "    "
			}
			writeTree(b, v, childIndent)
		case *model.File:
			fmt.Fprintf(b, "%s%s%s %s\n", indent, connector, v.Name, fileAnnotation(v))
		}
	}
}

func fileAnnotation(f *model.File) string {
	if f.Analyzable {
		return fmt.Sprintf("(%d lines)", f.LineCount)
	}
	return fmt.Sprintf("(opaque, %s)", humanize.Bytes(uint64(f.Size)))
}

func writeExtensionBreakdown(b *strings.Builder, root *model.Dir) {
	counts := map[string]int{}
	countExts(root, counts)

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	b.WriteString("\n--- Extensions ---\n")
	for _, ext := range exts {
		label := "." + ext
		if ext == "" {
			label = "(none)"
		}
		fmt.Fprintf(b, "%-10s %d\n", label, counts[ext])
	}
}

func countExts(d *model.Dir, counts map[string]int) {
	for _, child := range d.Children {
		switch v := child.(type) {
		case *model.Dir:
			countExts(v, counts)
		case *model.File:
			counts[v.Ext]++
		}
	}
}
