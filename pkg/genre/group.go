package genre

import "strings"

// InferGroup maps a raw catalog genre label onto one of the coarse
// groups used for seed bucketing and taste aggregation.
func InferGroup(raw string) string {
	if raw == "" {
		return "other"
	}
	g := strings.ToLower(raw)

	switch {
	case strings.Contains(g, "rock"):
		return "rock"
	case strings.Contains(g, "metal"):
		return "metal"
	case strings.Contains(g, "pop"):
		return "pop"
	case strings.Contains(g, "hip hop"), strings.Contains(g, "rap"),
		strings.Contains(g, "trap"), strings.Contains(g, "hop"):
		return "hiphop"
	case strings.Contains(g, "r&b"), strings.Contains(g, "soul"):
		return "rnb"
	case strings.Contains(g, "electronic"), strings.Contains(g, "edm"),
		strings.Contains(g, "house"), strings.Contains(g, "techno"),
		strings.Contains(g, "dance"):
		return "electronic"
	case strings.Contains(g, "jazz"):
		return "jazz"
	case strings.Contains(g, "classical"), strings.Contains(g, "orchestra"):
		return "classical"
	case strings.Contains(g, "country"):
		return "country"
	case strings.Contains(g, "latin"), strings.Contains(g, "reggaeton"),
		strings.Contains(g, "salsa"):
		return "latin"
	case strings.Contains(g, "folk"), strings.Contains(g, "acoustic"):
		return "folk"
	case strings.Contains(g, "blues"):
		return "blues"
	case strings.Contains(g, "reggae"), strings.Contains(g, "ska"):
		return "reggae"
	case strings.Contains(g, "ambient"), strings.Contains(g, "chill"):
		return "ambient"
	}
	return "other"
}
