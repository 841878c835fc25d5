package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdateVariants(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		kind   UpdateKind
		bases  int64
		scored []string
	}{
		{"empty", "", Empty, 0, nil},
		{"play ball", "Play ball!", PlayBall, 0, nil},
		{"inning turnover top", "Top of 1, Miami Dale batting.", InningTurnover, 0, nil},
		{"inning turnover bottom", "Bottom of 9, Hawai'i Fridays batting.", InningTurnover, 0, nil},
		{"batter up", "Jessica Telephone batting for the Moist Talkers.", BatterUp, 0, nil},
		{"ball", "Ball. 1-0", Ball, 0, nil},
		{"foul ball", "Foul Ball. 2-1", FoulBall, 0, nil},
		{"strikeout looking", "Jessica Telephone strikes out looking.", StrikeoutLooking, 0, nil},
		{"strikeout swinging", "Jessica Telephone strikes out swinging.", StrikeoutSwinging, 0, nil},
		{"strike swinging", "Strike, swinging. 1-2", StrikeSwinging, 0, nil},
		{"strike looking", "Strike, looking. 0-0", StrikeLooking, 0, nil},
		{"ground out", "Jessica Telephone hit a ground out to Alexandria Rosales.", GroundOut, 0, nil},
		{"flyout", "Jessica Telephone hit a flyout to Alexandria Rosales.", Flyout, 0, nil},
		{"inning end", "Inning 3 is now an Outing.", InningEnd, 0, nil},
		{"single", "Jessica Telephone hits a Single!", Hit, 1, nil},
		{"double with one score", "Jessica Telephone hits a Double!\nAlexandria Rosales scores!", Hit, 2, []string{"Alexandria Rosales"}},
		{"triple with two scores", "Jessica Telephone hits a Triple!\nAlexandria Rosales scores!\nJaylen Hotdogfingers scores!", Hit, 3, []string{"Alexandria Rosales", "Jaylen Hotdogfingers"}},
		{"quadruple", "Jessica Telephone hits a Quadruple!", Hit, 4, nil},
		{"double play", "Jessica Telephone hit into a double play!\nAlexandria Rosales scores!", DoublePlay, 0, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, err := ParseUpdate(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.kind, u.Kind)
			if c.kind == Hit {
				assert.Equal(t, c.bases, u.Bases)
				assert.Equal(t, c.scored, u.Scored)
			}
		})
	}
}

func TestParseUpdateRejectsUnknownText(t *testing.T) {
	_, err := ParseUpdate("A wild shelled one appears!")
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseUpdatePrefersFirstMatchingAlternative(t *testing.T) {
	// Empty only matches the empty string; everything else must fall
	// through in the fixed grammar order.
	u, err := ParseUpdate("Play ball!")
	require.NoError(t, err)
	assert.Equal(t, PlayBall, u.Kind)
}
