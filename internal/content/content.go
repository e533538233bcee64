// Package content holds the static text shown around the game: stage briefings,
// pilot tips and the mock leaderboard, plus an optional remote briefing source.
package content

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

const stagePlaceholder = "{stage}"

// Rand is the random source used to pick tips.
type Rand interface {
	Intn(n int) int
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
	Rank  string `yaml:"-"` // "01".."07", assigned by position
}

// Prompts configures the remote text generator.
type Prompts struct {
	Briefing            string  `yaml:"briefing"`
	BriefingTemperature float64 `yaml:"briefing_temperature"`
	Tip                 string  `yaml:"tip"`
	TipTemperature      float64 `yaml:"tip_temperature"`
}

// BriefingPrompt returns the briefing prompt for a stage.
func (p Prompts) BriefingPrompt(stage int) string {
	return strings.ReplaceAll(p.Briefing, stagePlaceholder, strconv.Itoa(stage))
}

// Library is the parsed content file.
type Library struct {
	Briefings        map[int]string `yaml:"briefings"`
	FallbackBriefing string         `yaml:"fallback_briefing"`
	Tips             []string       `yaml:"tips"`
	Scores           []ScoreEntry   `yaml:"leaderboard"`
	Prompts          Prompts        `yaml:"prompts"`
}

// Load returns the library compiled into the binary.
func Load() (*Library, error) {
	return Parse(embedded)
}

// Parse decodes a content file. At least one tip is required.
func Parse(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if len(lib.Tips) == 0 {
		return nil, fmt.Errorf("parse content: no tips")
	}
	for i := range lib.Scores {
		lib.Scores[i].Rank = fmt.Sprintf("%02d", i+1)
	}
	return &lib, nil
}

// MissionBriefing returns the briefing for a stage, or the templated fallback.
func (l *Library) MissionBriefing(stage int) string {
	if text, ok := l.Briefings[stage]; ok {
		return text
	}
	return strings.ReplaceAll(l.FallbackBriefing, stagePlaceholder, strconv.Itoa(stage))
}

// PilotTip picks one tip at random.
func (l *Library) PilotTip(rnd Rand) string {
	return l.Tips[rnd.Intn(len(l.Tips))]
}

// Leaderboard returns a copy of the mock high score table, best first.
func (l *Library) Leaderboard() []ScoreEntry {
	return append([]ScoreEntry(nil), l.Scores...)
}
