package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeat_EncodeText(t *testing.T) {
	b := Beat{Action: "Open the gate", Outcome: "The gate creaks open."}
	assert.Equal(t, `action: "Open the gate" outcome: "The gate creaks open."`, b.EncodeText())
}

func TestBeat_DecodeText(t *testing.T) {
	b, err := Beat{}.DecodeText(`action: "Run" outcome: "You trip on a root."`)
	require.NoError(t, err)
	assert.Equal(t, Beat{Action: "Run", Outcome: "You trip on a root."}, b)
}

func TestBeat_DecodeText_TrailingSpace(t *testing.T) {
	b, err := Beat{}.DecodeText(`action: "Run" outcome: "Fast." `)
	require.NoError(t, err)
	assert.Equal(t, "Fast.", b.Outcome)
}

func TestBeat_DecodeText_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no action", `outcome: "x"`},
		{"unterminated action", `action: "Run outcome`},
		{"no outcome", `action: "Run"`},
		{"unterminated outcome", `action: "Run" outcome: "x`},
		{"trailing garbage", `action: "Run" outcome: "x" extra`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Beat{}.DecodeText(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestBeat_RoundTrip_ZeroValue(t *testing.T) {
	// The tree's construction guard depends on this holding.
	var zero Beat
	got, err := zero.DecodeText(zero.EncodeText())
	require.NoError(t, err)
	assert.True(t, zero.Equal(got))
}

func TestBeat_Validate(t *testing.T) {
	assert.NoError(t, Beat{Action: "Go", Outcome: "Gone."}.Validate())
	assert.Error(t, Beat{Action: "multi\nline"}.Validate())
	assert.Error(t, Beat{Outcome: `he said "hi"`}.Validate())
}

func TestStoryline_BuildSerializeParse(t *testing.T) {
	sl, err := NewStoryline()
	require.NoError(t, err)

	root, err := sl.SetRoot(Beat{Outcome: "You wake in a clearing."})
	require.NoError(t, err)
	_, err = sl.AppendChild(root, Beat{Action: "Walk north", Outcome: "A river blocks the way."})
	require.NoError(t, err)
	_, err = sl.AppendChild(root, Beat{Action: "Walk south", Outcome: "You find a village."})
	require.NoError(t, err)

	text := sl.Serialize()
	require.NoError(t, ValidateStoryline(text))

	got, err := ParseStoryline(text)
	require.NoError(t, err)
	assert.Equal(t, text, got.Serialize())
}
