package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eren/sozluk/internal/sozluk"
	"github.com/eren/sozluk/internal/storage"
)

const (
	indexTopicLimit   = 20
	indexAuthorLimit  = 20
	indexRandomLimit  = 15
	searchResultLimit = 50
)

// Controller serves the whole entry-board UI on top of a storage backend.
type Controller struct {
	store    storage.Sozluk
	sessions *SessionManager
	timezone time.Duration
}

func NewController(store storage.Sozluk, sessions *SessionManager, timezone time.Duration) *Controller {
	return &Controller{
		store:    store,
		sessions: sessions,
		timezone: timezone,
	}
}

// render wraps c.HTML with the data every page needs: flash messages, the
// theme class and the CSRF token.
func (ct *Controller) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	theme := ct.sessions.Theme(c)
	data["Flashes"] = ct.sessions.PopFlashes(c)
	data["Theme"] = theme
	data["ThemeClass"] = Themes[theme]
	data["CSRFToken"] = csrfToken(c)
	data["CSRFFieldName"] = CSRFFieldName
	c.HTML(status, name, data)
}

func (ct *Controller) Index(c *gin.Context) {
	topics, err := ct.store.LatestTopics(indexTopicLimit, 0)
	if err != nil {
		ct.internalError(c, err)
		return
	}
	authors, err := ct.store.LatestAuthors(indexAuthorLimit, 0)
	if err != nil {
		ct.internalError(c, err)
		return
	}
	randoms, err := ct.store.RandomEntries(indexRandomLimit)
	if err != nil {
		ct.internalError(c, err)
		return
	}

	ct.render(c, http.StatusOK, "index", gin.H{
		"Topics":        topics,
		"Authors":       authors,
		"RandomEntries": randoms,
		"TopicName":     "",
	})
}

func (ct *Controller) AddEntry(c *gin.Context) {
	form := ParseEntryForm(c)
	if problems := form.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			ct.sessions.Flash(c, problem)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	sketch, err := buildSketch(form)
	if err != nil {
		var invalid sozluk.ValidationError
		if errors.As(err, &invalid) {
			ct.sessions.Flash(c, "bir seyleri yanlis yapmis olmalisin")
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		ct.internalError(c, err)
		return
	}

	outcome, id, err := ct.store.AddEntry(sketch)
	if err != nil {
		ct.internalError(c, err)
		return
	}

	switch outcome {
	case storage.AddSuccess:
		ct.sessions.Flash(c, "tebrikler! artik girdin yayinda.")
		c.Redirect(http.StatusSeeOther, "/entry/"+id.String())
	case storage.AddDefinitionExists:
		ct.sessions.Flash(c, "bu tanim zaten var")
		c.Redirect(http.StatusSeeOther, "/topic/"+url.PathEscape(sketch.Topic.String()))
	default:
		ct.internalError(c, errors.New("unhandled add outcome"))
	}
}

func buildSketch(form EntryForm) (sozluk.EntrySketch, error) {
	topic, err := sozluk.NewTopicName(form.Topic)
	if err != nil {
		return sozluk.EntrySketch{}, err
	}
	author, err := sozluk.NewAuthorName(form.Author)
	if err != nil {
		return sozluk.EntrySketch{}, err
	}
	return sozluk.EntrySketch{
		Topic:  topic,
		Author: author,
		Text:   sozluk.NewEntryText(form.Text),
	}, nil
}

func (ct *Controller) DelEntry(c *gin.Context) {
	form := ParseNukeEntryForm(c)
	if problems := form.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			ct.sessions.Flash(c, problem)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	id, err := parseEntryID(form.EntryID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	outcome, err := ct.store.DelEntry(id)
	if err != nil {
		ct.internalError(c, err)
		return
	}

	switch outcome {
	case storage.DeleteSuccess:
		ct.sessions.Flash(c, "artik yok")
		c.Redirect(http.StatusSeeOther, "/")
	case storage.DeleteEntryNotFound:
		ct.sessions.Flash(c, "boyle bir girdi zaten yokmus, silmeme gerek kalmadi sanirim.")
		ct.render(c, http.StatusNotFound, "404", nil)
	default:
		ct.internalError(c, errors.New("unhandled delete outcome"))
	}
}

func (ct *Controller) Entry(c *gin.Context) {
	id, err := parseEntryID(c.Param("id"))
	if err != nil {
		ct.sessions.Flash(c, "boyle bir girdi numarasi olamaz ki")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	entry, err := ct.store.GetEntry(id)
	if err != nil {
		ct.internalError(c, err)
		return
	}
	if entry == nil {
		ct.render(c, http.StatusNotFound, "404", nil)
		return
	}

	ct.render(c, http.StatusOK, "entry", gin.H{
		"Entry":        *entry,
		"Confirmation": EntryDeleteConfirmation,
	})
}

func (ct *Controller) Topic(c *gin.Context) {
	name, err := sozluk.NewTopicName(c.Param("name"))
	if err != nil {
		ct.sessions.Flash(c, "baslik ismi kotu. boyle baslik olmaz olsun.")
		ct.render(c, http.StatusNotFound, "404", nil)
		return
	}

	entries, err := ct.store.GetTopic(name)
	if err != nil {
		ct.internalError(c, err)
		return
	}

	ct.render(c, http.StatusOK, "topic", gin.H{
		"TopicName": name,
		"Entries":   entries,
	})
}

func (ct *Controller) Author(c *gin.Context) {
	name, err := sozluk.NewAuthorName(c.Param("name"))
	if err != nil {
		ct.sessions.Flash(c, "yazar ismi cok kotu. boyle isim olmaz olsun")
		ct.render(c, http.StatusNotFound, "404", nil)
		return
	}

	entries, err := ct.store.GetAuthor(name)
	if err != nil {
		ct.internalError(c, err)
		return
	}
	if len(entries) == 0 {
		ct.render(c, http.StatusNotFound, "404", nil)
		return
	}

	ct.render(c, http.StatusOK, "author", gin.H{
		"AuthorName": name,
		"Entries":    entries,
	})
}

func (ct *Controller) Search(c *gin.Context) {
	form := ParseSearchForm(c)
	if problems := form.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			ct.sessions.Flash(c, problem)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	topics, err := ct.store.SearchTopics(form.Query, searchResultLimit)
	if err != nil {
		ct.internalError(c, err)
		return
	}

	ct.render(c, http.StatusOK, "search", gin.H{
		"Query":  form.Query,
		"Topics": topics,
	})
}

func (ct *Controller) SetTheme(c *gin.Context) {
	form := ParseThemeForm(c)
	if problems := form.Validate(); len(problems) > 0 {
		for _, problem := range problems {
			ct.sessions.Flash(c, problem)
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	ct.sessions.SetTheme(c, form.Theme)
	ct.sessions.Flash(c, "tema ayarlandi.")
	c.Redirect(http.StatusSeeOther, "/")
}

func (ct *Controller) NotFound(c *gin.Context) {
	ct.render(c, http.StatusNotFound, "404", nil)
}

func (ct *Controller) internalError(c *gin.Context, err error) {
	log.Printf("Storage failure: %v", err)
	c.String(http.StatusInternalServerError, "bir seyler cok ters gitti.")
}

func parseEntryID(raw string) (sozluk.EntryID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, sozluk.ValidationError("entry identifier is not a number")
	}
	return sozluk.NewEntryID(value)
}
