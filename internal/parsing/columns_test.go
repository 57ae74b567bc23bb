package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectColumns(t *testing.T) {
	r := DefaultRules()

	t.Run("contact column is collected", func(t *testing.T) {
		raw := "Contact: +1 555 123 4567          Senior Software Engineer\nJust a normal line"
		hint := r.DetectColumns(raw)

		assert.True(t, hint.HasHint)
		assert.Equal(t, 1, hint.HintCount)
		assert.Equal(t, []string{"Contact: +1 555 123 4567"}, hint.PersonalInfoHints)
	})

	t.Run("non-contact columns only count", func(t *testing.T) {
		hint := r.DetectColumns("Projects          Experience")

		assert.True(t, hint.HasHint)
		assert.Equal(t, 1, hint.HintCount)
		assert.Empty(t, hint.PersonalInfoHints)
	})

	t.Run("short parts are ignored", func(t *testing.T) {
		hint := r.DetectColumns("ab          cd")
		assert.False(t, hint.HasHint)
	})

	t.Run("single column", func(t *testing.T) {
		hint := r.DetectColumns("John Smith\nSoftware Engineer")
		assert.False(t, hint.HasHint)
		assert.Zero(t, hint.HintCount)
	})
}

func TestColumnHint_PersonalText(t *testing.T) {
	t.Run("without hints returns raw text", func(t *testing.T) {
		assert.Equal(t, "raw text", ColumnHint{}.PersonalText("raw text"))
	})

	t.Run("hints come first", func(t *testing.T) {
		hint := ColumnHint{HasHint: true, HintCount: 1, PersonalInfoHints: []string{"email: a@b.co"}}
		assert.Equal(t, "email: a@b.co\nraw text", hint.PersonalText("raw text"))
	})

	t.Run("raw text is truncated", func(t *testing.T) {
		hint := ColumnHint{HasHint: true, HintCount: 1, PersonalInfoHints: []string{"phone"}}
		text := hint.PersonalText(strings.Repeat("x", 2000))
		assert.Equal(t, len("phone\n")+personalTextPrefixRunes, len(text))
	})
}
