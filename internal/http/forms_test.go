package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryFormValidate(t *testing.T) {
	valid := EntryForm{Topic: "konu", Author: "eren", Text: "bir girdi"}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name     string
		form     EntryForm
		problems int
	}{
		{"empty topic", EntryForm{Author: "eren", Text: "girdi"}, 1},
		{"long topic", EntryForm{Topic: strings.Repeat("k", 51), Author: "eren", Text: "girdi"}, 1},
		{"empty text", EntryForm{Topic: "konu", Author: "eren"}, 1},
		{"empty author", EntryForm{Topic: "konu", Text: "girdi"}, 1},
		{"long author", EntryForm{Topic: "konu", Author: strings.Repeat("a", 41), Text: "girdi"}, 1},
		{"author with space", EntryForm{Topic: "konu", Author: "iki isim", Text: "girdi"}, 1},
		{"everything wrong", EntryForm{}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, tc.form.Validate(), tc.problems)
		})
	}
}

func TestNukeEntryFormValidate(t *testing.T) {
	valid := NukeEntryForm{EntryID: "1", Text: EntryDeleteConfirmation, Checkbox: true}
	assert.Empty(t, valid.Validate())

	cases := []struct {
		name     string
		form     NukeEntryForm
		problems int
	}{
		{"wrong confirmation", NukeEntryForm{Text: "sil gitsin", Checkbox: true}, 1},
		{"missing checkbox", NukeEntryForm{Text: EntryDeleteConfirmation}, 1},
		{"trap ticked", NukeEntryForm{Text: EntryDeleteConfirmation, Checkbox: true, Trap: true}, 1},
		{"everything wrong", NukeEntryForm{Trap: true}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, tc.form.Validate(), tc.problems)
		})
	}
}

func TestSearchFormValidate(t *testing.T) {
	assert.Empty(t, SearchForm{Query: "tan"}.Validate())
	assert.Empty(t, SearchForm{Query: strings.Repeat("q", 50)}.Validate())

	assert.NotEmpty(t, SearchForm{}.Validate())
	assert.NotEmpty(t, SearchForm{Query: "  "}.Validate())
	assert.NotEmpty(t, SearchForm{Query: "ab"}.Validate())
	assert.NotEmpty(t, SearchForm{Query: strings.Repeat("q", 51)}.Validate())
}

func TestThemeFormValidate(t *testing.T) {
	for theme := range Themes {
		assert.Empty(t, ThemeForm{Theme: theme}.Validate(), "theme %q", theme)
	}

	assert.NotEmpty(t, ThemeForm{Theme: "neon"}.Validate())
	assert.NotEmpty(t, ThemeForm{}.Validate())
}
