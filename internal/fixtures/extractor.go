package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/onsideagency/touchline/internal/textgen"
)

const extractSystemPrompt = "You extract football fixtures from pasted text. " +
	"Respond with a JSON array only. Each element has the fields " +
	`"fixture_date" (YYYY-MM-DD or empty), "opponent", "home" (boolean), ` +
	`"competition", "goals_for", "goals_against" and "result" (W, D, L or empty).`

type extractedFixture struct {
	FixtureDate  string `json:"fixture_date"`
	Opponent     string `json:"opponent"`
	Home         bool   `json:"home"`
	Competition  string `json:"competition"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Result       string `json:"result"`
}

// Extractor turns pasted free text into fixtures using the text-generation
// service, with the line parser as a fallback when the model response is
// unusable.
type Extractor struct {
	textgen textgen.Client
}

// NewExtractor creates a new Extractor.
func NewExtractor(client textgen.Client) *Extractor {
	return &Extractor{textgen: client}
}

// Extract parses fixtures out of a pasted block of text.
func (e *Extractor) Extract(ctx context.Context, playerID, text string) ([]Fixture, error) {
	out, err := e.textgen.Generate(ctx, textgen.GenerateRequest{
		System: extractSystemPrompt,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("fixture extraction failed: %w", err)
	}

	parsed, err := decodeExtracted(playerID, out)
	if err == nil {
		return parsed, nil
	}
	log.Warn("Model response was not valid fixture JSON, falling back to line parser", "error", err)

	var fallback []Fixture
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		f, perr := ParseLine(playerID, line)
		if perr != nil {
			log.Debug("Skipping unparseable fixture line", "line", line, "error", perr)
			continue
		}
		fallback = append(fallback, *f)
	}
	if len(fallback) == 0 {
		return nil, fmt.Errorf("no fixtures could be extracted: %w", err)
	}
	return fallback, nil
}

func decodeExtracted(playerID, raw string) ([]Fixture, error) {
	// Models like to wrap JSON in fences; strip them before decoding.
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	var items []extractedFixture
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &items); err != nil {
		return nil, err
	}

	out := make([]Fixture, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Opponent) == "" {
			continue
		}
		out = append(out, Fixture{
			PlayerID:     playerID,
			FixtureDate:  it.FixtureDate,
			Opponent:     strings.TrimSpace(it.Opponent),
			Home:         it.Home,
			Competition:  it.Competition,
			GoalsFor:     it.GoalsFor,
			GoalsAgainst: it.GoalsAgainst,
			Result:       Result(strings.ToUpper(strings.TrimSpace(it.Result))),
		})
	}
	return out, nil
}
