package main

import (
	"fmt"
	"io"
)

// FindingsReport holds the console wording for an analysis command
type FindingsReport struct {
	Title string // heading printed above a non-empty list
	Empty string // line printed when nothing was found
}

var (
	BugReport = FindingsReport{
		Title: "Bug Analysis Report:",
		Empty: "Bug Analysis Report: No bugs found!",
	}
	PerfReport = FindingsReport{
		Title: "Performance Improvements:",
		Empty: "No improvements found!",
	}
)

// ReportFor returns the console wording for an analysis operation
func ReportFor(op Operation) FindingsReport {
	if op == OpPerf {
		return PerfReport
	}
	return BugReport
}

// RenderFindings prints findings as a 1-indexed list, or the report's empty
// message when there are none.
func RenderFindings(w io.Writer, styles *Styles, report FindingsReport, findings []string) error {
	if len(findings) == 0 {
		if _, err := fmt.Fprintln(w, styles.Success.Render(report.Empty)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "%s\n\n", styles.Heading.Render(report.Title)); err != nil {
			return err
		}
		for i, finding := range findings {
			if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, finding); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
