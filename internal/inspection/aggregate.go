package inspection

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Aggregate holds every finding from one run plus its tallies.
type Aggregate struct {
	Problems      []Problem
	FilesAnalyzed int
	CategoryCount map[Category]int
	SeverityCount map[Severity]int
	PriorityCount map[Priority]int
}

func NewAggregate() *Aggregate {
	return &Aggregate{
		CategoryCount: map[Category]int{},
		SeverityCount: map[Severity]int{},
		PriorityCount: map[Priority]int{},
	}
}

// Add appends problems and updates the tallies. Nothing is deduplicated:
// every input finding stays in the aggregate.
func (a *Aggregate) Add(problems []Problem) {
	for _, p := range problems {
		a.Problems = append(a.Problems, p)
		a.CategoryCount[p.Category]++
		a.SeverityCount[p.Severity]++
		a.PriorityCount[p.Priority]++
	}
}

// Sort orders findings by priority rank, then category, file and line.
// The sort is stable so equal keys keep encounter order.
func (a *Aggregate) Sort() {
	sort.SliceStable(a.Problems, func(i, j int) bool {
		pi, pj := a.Problems[i], a.Problems[j]
		if pi.Priority.Rank() != pj.Priority.Rank() {
			return pi.Priority.Rank() < pj.Priority.Rank()
		}
		if pi.Category != pj.Category {
			return pi.Category < pj.Category
		}
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		return pi.Line < pj.Line
	})
}

// Count is one name/count pair from a summary map.
type Count struct {
	Name  string
	Count int
}

func sortedCounts[K ~string](m map[K]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Name: string(k), Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (a *Aggregate) CategoryCounts() []Count { return sortedCounts(a.CategoryCount) }
func (a *Aggregate) SeverityCounts() []Count { return sortedCounts(a.SeverityCount) }

// Collector gathers findings from every report file in a directory.
type Collector struct {
	logger *zap.SugaredLogger
}

func NewCollector(logger *zap.SugaredLogger) *Collector {
	return &Collector{logger: logger}
}

// CollectDir extracts every *.xml report in dir (non-recursive) and returns
// the sorted aggregate. A file that fails to parse is logged and skipped;
// it still counts as analyzed.
func (c *Collector) CollectDir(dir string) (*Aggregate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read inspection dir: %w", err)
	}

	agg := NewAggregate()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		agg.FilesAnalyzed++

		problems, err := ExtractFile(path)
		if err != nil {
			c.logger.Warnw("skipping unparsable report", "file", path, "error", err)
			continue
		}
		agg.Add(problems)
	}

	agg.Sort()
	return agg, nil
}
