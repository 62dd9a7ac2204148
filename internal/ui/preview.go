package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaeawc/batchname/internal/dirsession"
)

// RenderListing formats the contents of dir: folders first, then files,
// each in the order given and numbered from 1.
func RenderListing(dir string, folders, files []string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Current directory: "+dir) + "\n\n")

	if len(folders) == 0 && len(files) == 0 {
		b.WriteString(EmptyStyle.Render("(empty)") + "\n")
		return b.String()
	}

	writeSection(&b, "Folders", folders, FolderStyle, "/")
	writeSection(&b, "Files", files, FileStyle, "")

	return b.String()
}

func writeSection(b *strings.Builder, title string, names []string, style lipgloss.Style, suffix string) {
	b.WriteString(BoldStyle.Render(fmt.Sprintf("%s (%d)", title, len(names))) + "\n")

	if len(names) == 0 {
		b.WriteString("  " + EmptyStyle.Render("none") + "\n\n")
		return
	}

	for i, name := range names {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, style.Render(name+suffix)))
	}

	b.WriteString("\n")
}

// RenderPreview lists staged changes in commit order. Entries whose
// target had to be adjusted show the requested name alongside.
func RenderPreview(changes []dirsession.Change) string {
	if len(changes) == 0 {
		return SubtleStyle.Render("Nothing to do.")
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%d pending change(s)", len(changes))) + "\n")

	for i, change := range changes {
		label := KindStyle(change.Kind).Render(fmt.Sprintf("%-13s", change.Kind.Label()))

		var line string

		switch {
		case change.Kind == dirsession.KindRename:
			line = fmt.Sprintf("%s -> %s", change.Original, change.Resolved)
		case change.Original != change.Resolved:
			line = fmt.Sprintf("%s %s", change.Resolved, SubtleStyle.Render("(requested "+change.Original+")"))
		default:
			line = change.Resolved
		}

		b.WriteString(fmt.Sprintf("%3d. %s %s\n", i+1, label, line))
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderReport summarizes a committed batch, one line per change
func RenderReport(report *dirsession.Report) string {
	if report == nil {
		return ""
	}

	if report.NothingToDo {
		return SubtleStyle.Render("Nothing to do.")
	}

	if report.Declined {
		return WarningStyle.Render(fmt.Sprintf("Canceled, %d change(s) discarded.", len(report.Results)))
	}

	var b strings.Builder

	for _, res := range report.Results {
		style := StatusStyle(res.Status)
		line := fmt.Sprintf("%s %s", StatusSymbol(res.Status), res.Change)

		switch {
		case res.Err != nil:
			line += fmt.Sprintf(" (%s: %v)", res.Reason, res.Err)
		case res.Reason != dirsession.ReasonNone:
			line += fmt.Sprintf(" (%s)", res.Reason)
		}

		b.WriteString(style.Render(line) + "\n")
	}

	summary := fmt.Sprintf("%d applied, %d failed, %d skipped",
		len(report.Applied()), len(report.Failed()), len(report.Skipped()))

	if len(report.Failed()) > 0 {
		b.WriteString(ErrorStyle.Render(summary))
	} else {
		b.WriteString(SuccessStyle.Render(summary))
	}

	return b.String()
}
