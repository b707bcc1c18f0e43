package http

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// EntryDeleteConfirmation must be typed verbatim into the delete form.
const EntryDeleteConfirmation = "lütfen siler misin canım benim"

// EntryForm carries the raw, unvalidated strings of a new entry submission.
// The domain constructors remain the single validation gate; this form only
// produces friendlier messages for the obvious mistakes.
type EntryForm struct {
	Topic  string
	Author string
	Text   string
}

func ParseEntryForm(c *gin.Context) EntryForm {
	return EntryForm{
		Topic:  c.PostForm("topic"),
		Author: c.PostForm("author"),
		Text:   c.PostForm("text"),
	}
}

func (f EntryForm) Validate() []string {
	var problems []string
	if strings.TrimSpace(f.Topic) == "" {
		problems = append(problems, "yokluk mu demek istedin?")
	}
	if utf8.RuneCountInString(f.Topic) > 50 {
		problems = append(problems, "baslik cok uzun ama.")
	}
	if strings.TrimSpace(f.Text) == "" {
		problems = append(problems, "??? cok aciklayici olmussun.")
	}
	if strings.TrimSpace(f.Author) == "" {
		problems = append(problems, "bu girdi uzaylilardan gelmis olamaz diye dusunuyorum.")
	}
	if utf8.RuneCountInString(f.Author) > 40 {
		problems = append(problems, "isim cok uzun ama.")
	}
	if strings.Contains(f.Author, " ") {
		problems = append(problems, "ismine bosluk koyamiyorsun maalesef. kurallar boyle.")
	}
	return problems
}

// NukeEntryForm is the deliberately annoying moderation form: a typed
// confirmation phrase, a consent checkbox and a trap checkbox that must stay
// unticked.
type NukeEntryForm struct {
	EntryID  string
	Text     string
	Checkbox bool
	Trap     bool
}

func ParseNukeEntryForm(c *gin.Context) NukeEntryForm {
	return NukeEntryForm{
		EntryID:  c.PostForm("entry_id"),
		Text:     c.PostForm("text"),
		Checkbox: c.PostForm("checkbox") == "on",
		Trap:     c.PostForm("checkbox_2") == "on",
	}
}

func (f NukeEntryForm) Validate() []string {
	var problems []string
	if f.Text != EntryDeleteConfirmation {
		problems = append(problems, fmt.Sprintf("%q yazmadin, ben de silmedim kaptanim.", EntryDeleteConfirmation))
	}
	if !f.Checkbox {
		problems = append(problems, "silmedim.")
	}
	if f.Trap {
		problems = append(problems, "yemezler.")
	}
	return problems
}

// SearchForm carries the substring search query.
type SearchForm struct {
	Query string
}

func ParseSearchForm(c *gin.Context) SearchForm {
	return SearchForm{Query: c.Query("query")}
}

func (f SearchForm) Validate() []string {
	var problems []string
	if strings.TrimSpace(f.Query) == "" {
		problems = append(problems, "akil fikir")
		return problems
	}
	if length := utf8.RuneCountInString(f.Query); length < 3 || length > 50 {
		problems = append(problems, "uzunluk kotu.")
	}
	return problems
}

// ThemeForm carries the theme choice.
type ThemeForm struct {
	Theme string
}

func ParseThemeForm(c *gin.Context) ThemeForm {
	return ThemeForm{Theme: c.PostForm("theme")}
}

func (f ThemeForm) Validate() []string {
	if _, ok := Themes[f.Theme]; !ok {
		return []string{"boyle bir tema yok."}
	}
	return nil
}
