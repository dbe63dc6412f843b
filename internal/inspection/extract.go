package inspection

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Wire format of one IDE inspection export (root element <problems>).
type problemsDoc struct {
	XMLName  xml.Name      `xml:"problems"`
	Problems []problemElem `xml:"problem"`
}

type problemElem struct {
	File         string            `xml:"file"`
	Line         string            `xml:"line"`
	Column       string            `xml:"column"`
	Module       string            `xml:"module"`
	Package      string            `xml:"package"`
	Language     string            `xml:"language"`
	Offset       string            `xml:"offset"`
	Length       string            `xml:"length"`
	Highlighted  string            `xml:"highlighted_element"`
	Description  string            `xml:"description"`
	ProblemClass *problemClassElem `xml:"problem_class"`
	Hints        *hintsElem        `xml:"hints"`
}

type problemClassElem struct {
	ID       string `xml:"id,attr"`
	Severity string `xml:"severity,attr"`
	Text     string `xml:",chardata"`
}

type hintsElem struct {
	Hints []hintElem `xml:"hint"`
}

type hintElem struct {
	Value string `xml:"value,attr"`
}

// ExtractBytes parses one inspection report into normalized problems.
// Missing optional fields default to empty strings and zero line/column;
// a missing problem_class defaults to id "unknown" with WARNING severity.
func ExtractBytes(b []byte) ([]Problem, error) {
	var doc problemsDoc
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse inspection report: %w", err)
	}

	out := make([]Problem, 0, len(doc.Problems))
	for _, p := range doc.Problems {
		classID := "unknown"
		severity := SevWarning
		classText := ""
		if p.ProblemClass != nil {
			if p.ProblemClass.ID != "" {
				classID = p.ProblemClass.ID
			}
			if p.ProblemClass.Severity != "" {
				severity = Severity(p.ProblemClass.Severity)
			}
			classText = strings.TrimSpace(p.ProblemClass.Text)
		}

		var hints []string
		for _, h := range hintsOf(p.Hints) {
			hints = append(hints, h.Value)
		}

		language := p.Language
		if language == "" {
			language = "UNKNOWN"
		}

		category, priority := Classify(classID)

		out = append(out, Problem{
			File:        p.File,
			Line:        safeInt(p.Line),
			Column:      safeInt(p.Column),
			Module:      p.Module,
			Package:     p.Package,
			Language:    language,
			Offset:      safeInt(p.Offset),
			Length:      safeInt(p.Length),
			Highlighted: p.Highlighted,
			Description: p.Description,
			ClassID:     classID,
			ClassText:   classText,
			Severity:    severity,
			Hints:       hints,
			Category:    category,
			Priority:    priority,
		})
	}
	return out, nil
}

// ExtractFile reads and parses one inspection report file.
func ExtractFile(path string) ([]Problem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractBytes(b)
}

func hintsOf(h *hintsElem) []hintElem {
	if h == nil {
		return nil
	}
	return h.Hints
}

func safeInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
