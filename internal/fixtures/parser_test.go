package fixtures_test

import (
	"testing"

	"github.com/onsideagency/touchline/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want fixtures.Fixture
	}{
		{
			name: "full line with explicit result",
			line: "Arsenal (H) 2-1 W",
			want: fixtures.Fixture{Opponent: "Arsenal", Home: true, GoalsFor: 2, GoalsAgainst: 1, Result: fixtures.ResultWin},
		},
		{
			name: "away draw without marker",
			line: "vs. Real Sociedad (A) 0-0",
			want: fixtures.Fixture{Opponent: "Real Sociedad", Home: false, GoalsFor: 0, GoalsAgainst: 0, Result: fixtures.ResultDraw},
		},
		{
			name: "competition prefix",
			line: "Premier League: Chelsea (H) 3-2",
			want: fixtures.Fixture{Opponent: "Chelsea", Home: true, Competition: "Premier League", GoalsFor: 3, GoalsAgainst: 2, Result: fixtures.ResultWin},
		},
		{
			name: "loss inferred from score",
			line: "Liverpool (A) 0-3",
			want: fixtures.Fixture{Opponent: "Liverpool", Home: false, GoalsFor: 0, GoalsAgainst: 3, Result: fixtures.ResultLoss},
		},
		{
			name: "colon score separator",
			line: "Porto (H) 1:1",
			want: fixtures.Fixture{Opponent: "Porto", Home: true, GoalsFor: 1, GoalsAgainst: 1, Result: fixtures.ResultDraw},
		},
		{
			name: "no score at all",
			line: "vs Bayern (A)",
			want: fixtures.Fixture{Opponent: "Bayern", Home: false, Result: fixtures.ResultUnknown},
		},
		{
			name: "lowercase venue and result",
			line: "spurs (a) 1-2 l",
			want: fixtures.Fixture{Opponent: "spurs", Home: false, GoalsFor: 1, GoalsAgainst: 2, Result: fixtures.ResultLoss},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixtures.ParseLine("p1", tt.line)
			require.NoError(t, err)
			assert.Equal(t, "p1", got.PlayerID)
			assert.Equal(t, tt.line, got.SourceLine)
			assert.Equal(t, tt.want.Opponent, got.Opponent)
			assert.Equal(t, tt.want.Home, got.Home)
			assert.Equal(t, tt.want.Competition, got.Competition)
			assert.Equal(t, tt.want.GoalsFor, got.GoalsFor)
			assert.Equal(t, tt.want.GoalsAgainst, got.GoalsAgainst)
			assert.Equal(t, tt.want.Result, got.Result)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	_, err := fixtures.ParseLine("p1", "")
	assert.Error(t, err)

	_, err = fixtures.ParseLine("p1", "   ")
	assert.Error(t, err)

	_, err = fixtures.ParseLine("p1", "(H) 2-1")
	assert.Error(t, err)
}
