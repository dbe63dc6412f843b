package inspection

type Severity string

const (
	SevError       Severity = "ERROR"
	SevWarning     Severity = "WARNING"
	SevWeakWarning Severity = "WEAK_WARNING"
	SevInfo        Severity = "INFO"
)

type Category string

const (
	CatAndroidLint  Category = "android-lint"
	CatDeprecation  Category = "deprecation"
	CatUnusedCode   Category = "unused-code"
	CatErrors       Category = "errors"
	CatNullSafety   Category = "null-safety"
	CatPython       Category = "python"
	CatShellScripts Category = "shell-scripts"
	CatMarkup       Category = "markup"
	CatCodeQuality  Category = "code-quality"
	CatRedundancy   Category = "redundancy"
	CatMisc         Category = "miscellaneous"
)

type Priority string

const (
	// PriorityCritical is reserved; no classification rule assigns it yet.
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders priorities for sorting. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Problem is one normalized static-analysis finding.
type Problem struct {
	File        string
	Line        int
	Column      int
	Module      string
	Package     string
	Language    string
	Offset      int
	Length      int
	Highlighted string
	Description string
	ClassID     string // analyzer rule id, e.g. "NullableProblems"
	ClassText   string
	Severity    Severity
	Hints       []string

	// Derived from ClassID by Classify.
	Category Category
	Priority Priority
}
