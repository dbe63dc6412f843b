package inspection

import "strings"

type rule struct {
	match    func(id string) bool
	category Category
	priority Priority
}

// Rules are evaluated in order and the first match wins, so overlapping
// conditions (e.g. "AndroidLintError") resolve to the earlier rule.
var rules = []rule{
	{prefixOf("AndroidLint"), CatAndroidLint, PriorityMedium},
	{oneOf("Deprecation", "GrDeprecatedAPIUsage"), CatDeprecation, PriorityMedium},
	{oneOf("unused", "UnusedAssignment", "UnusedReturnValue"), CatUnusedCode, PriorityLow},
	{containsAny("Error", "Exception"), CatErrors, PriorityHigh},
	{oneOf("NullableProblems", "NotNullFieldNotInitialized"), CatNullSafety, PriorityHigh},
	{prefixOf("Py"), CatPython, PriorityMedium},
	{oneOf("ShellCheck"), CatShellScripts, PriorityMedium},
	{prefixOf("Html", "Xml"), CatMarkup, PriorityLow},
	{oneOf("FieldCanBeLocal", "FieldMayBeFinal", "CanBeFinal"), CatCodeQuality, PriorityLow},
	{oneOf("RedundantCast", "RedundantSuppression", "RedundantVisibilityModifier"), CatRedundancy, PriorityLow},
}

// Classify maps an analyzer problem-class id to its category and priority.
// It is total: unrecognized ids land in miscellaneous/low.
func Classify(classID string) (Category, Priority) {
	for _, r := range rules {
		if r.match(classID) {
			return r.category, r.priority
		}
	}
	return CatMisc, PriorityLow
}

func prefixOf(prefixes ...string) func(string) bool {
	return func(id string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				return true
			}
		}
		return false
	}
}

func oneOf(ids ...string) func(string) bool {
	return func(id string) bool {
		for _, c := range ids {
			if id == c {
				return true
			}
		}
		return false
	}
}

func containsAny(subs ...string) func(string) bool {
	return func(id string) bool {
		for _, s := range subs {
			if strings.Contains(id, s) {
				return true
			}
		}
		return false
	}
}
