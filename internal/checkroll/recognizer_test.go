package checkroll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognizeFixedLabels(t *testing.T) {
	p := Recognize("Was there a party?")
	assert.Equal(t, KindParty, p.Kind)

	p = Recognize("Where was the double play?")
	assert.Equal(t, KindDoublePlayWhere, p.Kind)
}

func TestRecognizeParameterizedLabels(t *testing.T) {
	p := Recognize("Did the runner steal base 2?")
	require.Equal(t, KindSteal, p.Kind)
	assert.Equal(t, int64(2), p.Base)

	p = Recognize("Did Hank catch the out?")
	require.Equal(t, KindOut, p.Kind)
	assert.Equal(t, "Hank", p.Fielder)

	p = Recognize("Was it a double? (with fielder Hope)")
	require.Equal(t, KindDouble, p.Kind)
	assert.Equal(t, "Hope", p.Fielder)
}

func TestRecognizeFallsBackToUnparsed(t *testing.T) {
	p := Recognize("something the recognizer has never seen")
	assert.Equal(t, KindUnparsed, p.Kind)
	assert.Equal(t, "something the recognizer has never seen", p.Raw)
}

func TestRollStreamDecodesNDJSON(t *testing.T) {
	body := `{"label": "Was there a party?", "roll": 0.123456789012345}
{"label": "Did the runner advance?", "roll": 0.5, "passed": true, "threshold": 0.6}
`
	s := NewRollStream(strings.NewReader(body))

	first, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindParty, first.Purpose.Kind)
	assert.Nil(t, first.Passed)

	second, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, second.Passed)
	assert.True(t, *second.Passed)
	require.NotNil(t, second.Threshold)
	assert.Equal(t, 0.6, *second.Threshold)

	_, ok, err = s.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRollStreamExhaustedDoesNotConsume(t *testing.T) {
	s := NewRollStream(strings.NewReader(`{"label": "Mild pitch?", "roll": 0.1}`))
	exhausted, err := s.Exhausted()
	require.NoError(t, err)
	assert.False(t, exhausted)

	_, ok, err := s.Next()
	require.NoError(t, err)
	assert.True(t, ok)

	exhausted, err = s.Exhausted()
	require.NoError(t, err)
	assert.True(t, exhausted)
}
