package fixtures

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fixture lines arrive as loosely formatted strings pasted from match
// centres or club sites, e.g.
//
//	"Arsenal (H) 2-1 W"
//	"vs. Real Sociedad (A) 0-0"
//	"Premier League: Chelsea (H) 3-2"
//
// ParseLine infers opponent, venue, score and result. The score is read as
// for-against from the player's side; when no explicit W/D/L marker is
// present the result is inferred from the score.

var (
	scoreRe  = regexp.MustCompile(`\b(\d{1,2})\s*[-:\x{2013}]\s*(\d{1,2})\b`)
	venueRe  = regexp.MustCompile(`\(([HhAa])\)`)
	resultRe = regexp.MustCompile(`\b([WDLwdl])\b\s*$`)
)

// ParseLine parses one free-form fixture line.
func ParseLine(playerID, line string) (*Fixture, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, fmt.Errorf("empty fixture line")
	}

	f := &Fixture{
		PlayerID:   playerID,
		Home:       true,
		SourceLine: trimmed,
	}
	rest := trimmed

	// Optional "Competition:" prefix. A colon inside a score like "1:1" is
	// not a prefix separator.
	if i := strings.Index(rest, ":"); i > 0 {
		if loc := scoreRe.FindStringIndex(rest); loc == nil || i < loc[0] || i >= loc[1] {
			f.Competition = strings.TrimSpace(rest[:i])
			rest = strings.TrimSpace(rest[i+1:])
		}
	}

	if m := venueRe.FindStringSubmatch(rest); m != nil {
		f.Home = strings.EqualFold(m[1], "H")
		rest = strings.Replace(rest, m[0], "", 1)
	}

	if m := resultRe.FindStringSubmatch(rest); m != nil {
		f.Result = Result(strings.ToUpper(m[1]))
		rest = strings.TrimSpace(strings.TrimSuffix(rest, m[0]))
	}

	if m := scoreRe.FindStringSubmatch(rest); m != nil {
		f.GoalsFor, _ = strconv.Atoi(m[1])
		f.GoalsAgainst, _ = strconv.Atoi(m[2])
		rest = strings.Replace(rest, m[0], "", 1)
		if f.Result == ResultUnknown {
			switch {
			case f.GoalsFor > f.GoalsAgainst:
				f.Result = ResultWin
			case f.GoalsFor < f.GoalsAgainst:
				f.Result = ResultLoss
			default:
				f.Result = ResultDraw
			}
		}
	}

	opponent := strings.TrimSpace(rest)
	for _, prefix := range []string{"vs.", "vs", "v.", "v "} {
		if strings.HasPrefix(strings.ToLower(opponent), prefix) {
			opponent = strings.TrimSpace(opponent[len(prefix):])
			break
		}
	}
	opponent = strings.Trim(opponent, " -–")
	if opponent == "" {
		return nil, fmt.Errorf("no opponent found in fixture line %q", line)
	}
	f.Opponent = opponent

	return f, nil
}
