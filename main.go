package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"lszip/internal/analyze"
	"lszip/internal/model"
	"lszip/internal/tui"
	"lszip/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "richti03",
		Repository: "lszip",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/richti03/lszip/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lszip [options] <archive>\n\n")
		fmt.Fprintf(os.Stderr, "lszip inspects the contents of an archive without extracting it.\n")
		fmt.Fprintf(os.Stderr, "It reconstructs the directory tree, classifies every file as text-like\n")
		fmt.Fprintf(os.Stderr, "or opaque, and counts lines in the text-like ones.\n\n")
		fmt.Fprintf(os.Stderr, "Supported formats: zip, tar, tar.gz, tar.xz, tar.zst, 7z.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lszip project.zip           # Browse the archive in the TUI\n")
		fmt.Fprintf(os.Stderr, "  lszip -r project.zip        # Print a text report to stdout\n")
		fmt.Fprintf(os.Stderr, "  lszip -r -o r.txt demo.7z   # Save the report to a file\n")
		fmt.Fprintf(os.Stderr, "  lszip --json src.tar.gz     # Output the tree and summary as JSON\n")
		fmt.Fprintf(os.Stderr, "  lszip --web                 # Drag & drop archives in the browser\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output the analysis result as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a plain-text report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include the per-extension breakdown in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("lszip version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *webFlag {
		web.StartServer()
		return
	}

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	archivePath := pflag.Arg(0)

	if *reportFlag {
		runReportMode(archivePath, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(archivePath)
		return
	}

	// Default: TUI
	runTuiMode(archivePath)
}

func runReportMode(archivePath, outputFile string, verbose bool) {
	res, err := analyze.Run(context.Background(), archivePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read archive: %v\n", err)
		os.Exit(1)
	}

	report := analyze.GenerateReport(res, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

func runJsonMode(archivePath string) {
	res, err := analyze.Run(context.Background(), archivePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read archive: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(res)
}

func runTuiMode(archivePath string) {
	m := tui.InitialModel(archivePath)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
