package ingest

import "strings"

// FallbackBucket is the grouping key assigned to rows whose identifier is
// missing or does not look like a structured adset slug.
const FallbackBucket = "Other"

// goalMarker separates the joinable part of an adset slug from the
// campaign-goal suffix. The marker itself is kept in the key.
const goalMarker = "-reg"

// NormalizeAdset canonicalizes a raw adset or sub-identifier into a stable
// grouping key. A value qualifies as an adset slug when it contains "adset"
// (case-insensitive) or carries at least 5 hyphens over a length of 30+.
// Qualifying values are truncated through the goal marker when present,
// otherwise at the first space. Anything shorter than 20 characters after
// truncation lands in the fallback bucket; only the slug up to the goal
// marker is stable across the source systems.
func NormalizeAdset(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return FallbackBucket
	}

	lower := strings.ToLower(name)
	valid := strings.Contains(lower, "adset") ||
		(strings.Count(name, "-") >= 5 && len(name) >= 30)
	if !valid {
		return FallbackBucket
	}

	if pos := strings.Index(name, goalMarker); pos >= 0 {
		name = name[:pos+len(goalMarker)]
	} else if pos := strings.Index(name, " "); pos >= 0 {
		name = name[:pos]
	}

	name = strings.TrimSpace(name)
	if len(name) < 20 {
		return FallbackBucket
	}
	return name
}
