package inspection

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type reportDoc struct {
	XMLName  xml.Name       `xml:"project-errors"`
	Version  string         `xml:"version,attr"`
	Metadata reportMetadata `xml:"metadata"`
	Errors   reportErrors   `xml:"errors"`
}

type reportMetadata struct {
	ScanDate        string          `xml:"scan-date"`
	ProjectName     string          `xml:"project-name"`
	TotalErrors     int             `xml:"total-errors"`
	FilesAnalyzed   int             `xml:"files-analyzed"`
	SeveritySummary severitySummary `xml:"severity-summary"`
	CategorySummary []categoryCount `xml:"category-summary>category"`
}

// Severity counts are emitted as elements named after the lowercased
// severity tag, e.g. <warning>12</warning>.
type severitySummary struct {
	Counts []severityCount
}

type severityCount struct {
	XMLName xml.Name
	Count   string `xml:",chardata"`
}

type categoryCount struct {
	Name  string `xml:"name,attr"`
	Count string `xml:",chardata"`
}

type reportErrors struct {
	Entries []reportError `xml:"error"`
}

type reportError struct {
	ID          string       `xml:"id,attr"`
	Category    string       `xml:"category,attr"`
	Severity    string       `xml:"severity,attr"`
	Priority    string       `xml:"priority,attr"`
	File        string       `xml:"file"`
	Line        int          `xml:"line"`
	Column      int          `xml:"column"`
	ClassID     string       `xml:"problem-class-id"`
	ClassText   string       `xml:"problem-class-text"`
	Description string       `xml:"description"`
	Highlighted string       `xml:"highlighted-element"`
	Language    string       `xml:"language"`
	Module      string       `xml:"module"`
	Package     string       `xml:"package"`
	Hints       *reportHints `xml:"hints,omitempty"`
}

type reportHints struct {
	Hints []string `xml:"hint"`
}

// WriteReport serializes the aggregate to path. The aggregate must already
// be sorted; synthetic error ids follow that order.
func WriteReport(agg *Aggregate, projectName, path string, scanDate time.Time) error {
	doc := buildReport(agg, projectName, scanDate)

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func buildReport(agg *Aggregate, projectName string, scanDate time.Time) reportDoc {
	md := reportMetadata{
		ScanDate:      scanDate.Format(time.RFC3339),
		ProjectName:   projectName,
		TotalErrors:   len(agg.Problems),
		FilesAnalyzed: agg.FilesAnalyzed,
	}
	for _, c := range agg.SeverityCounts() {
		md.SeveritySummary.Counts = append(md.SeveritySummary.Counts, severityCount{
			XMLName: xml.Name{Local: strings.ToLower(c.Name)},
			Count:   strconv.Itoa(c.Count),
		})
	}
	for _, c := range agg.CategoryCounts() {
		md.CategorySummary = append(md.CategorySummary, categoryCount{
			Name:  c.Name,
			Count: strconv.Itoa(c.Count),
		})
	}

	entries := make([]reportError, 0, len(agg.Problems))
	for idx, p := range agg.Problems {
		entry := reportError{
			ID:          fmt.Sprintf("ERR-%s-%04d", strings.ToUpper(string(p.Category)), idx),
			Category:    string(p.Category),
			Severity:    string(p.Severity),
			Priority:    string(p.Priority),
			File:        cleanPath(p.File),
			Line:        p.Line,
			Column:      p.Column,
			ClassID:     p.ClassID,
			ClassText:   p.ClassText,
			Description: p.Description,
			Highlighted: p.Highlighted,
			Language:    p.Language,
			Module:      p.Module,
			Package:     p.Package,
		}
		if len(p.Hints) > 0 {
			entry.Hints = &reportHints{Hints: p.Hints}
		}
		entries = append(entries, entry)
	}

	return reportDoc{
		Version:  "1.0",
		Metadata: md,
		Errors:   reportErrors{Entries: entries},
	}
}

// cleanPath rewrites the IDE home placeholder and backslashes so report
// paths stay portable.
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "file://$USER_HOME$/", "~/")
	return strings.ReplaceAll(p, `\`, "/")
}
