package archetype

import (
	"fmt"
	"strings"
)

// Metrics is the listening summary an archetype is derived from.
type Metrics struct {
	AvgEnergy         float64
	AvgValence        float64
	AvgPopularityNorm float64
	GenreDiversity    float64
	TopGenres         []string
}

type Archetype struct {
	Id               string
	Title            string
	ShortDescription string
	LongDescription  string
}

// Classifier maps a metrics vector onto a named archetype. The rule
// table below is the default policy; swapping in a model only requires
// another implementation of this interface.
type Classifier interface {
	Classify(m Metrics) Archetype
}

type ruleClassifier struct{}

func NewRuleClassifier() Classifier {
	return &ruleClassifier{}
}

func (c *ruleClassifier) Classify(m Metrics) Archetype {
	var id, title, short string
	switch {
	case m.AvgEnergy >= 0.65 && m.AvgValence >= 0.55:
		id = "sunlit_groove_pilot"
		title = "Sunlit Groove Pilot"
		short = "You move through life with warmth, momentum, and a taste for big, bright moments."
	case m.AvgEnergy <= 0.45 && m.GenreDiversity >= 0.6:
		id = "dreamy_rhythm_alchemist"
		title = "Dreamy Rhythm Alchemist"
		short = "You're drawn to textured, emotional worlds: songs that feel like scenes, not just sounds."
	case m.AvgPopularityNorm >= 0.7:
		id = "chart_savvy_conductor"
		title = "Chart-Savvy Conductor"
		short = "You have a radar for what hits: polished, catchy tracks that land instantly."
	default:
		id = "midnight_side_streets"
		title = "Midnight Side Streets Curator"
		short = "You live in the in-between: not fully mainstream, not fully obscure, just tastefully off-center."
	}

	return Archetype{
		Id:               id,
		Title:            title,
		ShortDescription: short,
		LongDescription:  buildLongDescription(title, short, m),
	}
}

func buildLongDescription(title, short string, m Metrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s fits you because of how your library balances mood, energy, and variety.\n\n", title)

	texture := "moody, reflective"
	if m.AvgValence > 0.55 {
		texture = "uplifting"
	}
	fmt.Fprintf(&b, "Your average energy sits around %.2f, with a valence of %.2f, which points to a mix of %s textures.\n", m.AvgEnergy, m.AvgValence, texture)

	if len(m.TopGenres) > 0 {
		fmt.Fprintf(&b, "Your top genres lean towards %s, giving your listening a clear flavor.\n", strings.Join(m.TopGenres, ", "))
	}

	spread := "tend to go deep within a few lanes you love"
	if m.GenreDiversity > 0.6 {
		spread = "wander widely across different sounds"
	}
	fmt.Fprintf(&b, "Your genre diversity score of %.2f means you %s.\n\n", m.GenreDiversity, spread)

	b.WriteString(short)
	return b.String()
}
