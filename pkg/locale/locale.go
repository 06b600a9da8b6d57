// Package locale holds the translated labels used in responses.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when the configured language is unknown.
const DefaultLanguage = "es"

// Localizer translates message ids for a single language.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
	title     cases.Caser
}

// New loads the embedded message files and returns a Localizer for lang.
func New(lang string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("unable to read locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("unable to load locale file %s: %w", entry.Name(), err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		log.Warnf("unknown language %q, falling back to %s", lang, DefaultLanguage)
		tag = language.Spanish
	}

	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), DefaultLanguage),
		title:     cases.Title(tag),
	}, nil
}

// Must is New for callers that only pass known languages, such as tests.
func Must(lang string) *Localizer {
	l, err := New(lang)
	if err != nil {
		panic(err)
	}
	return l
}

// Message renders the message id with the given template data. A missing
// translation renders as the id itself.
func (l *Localizer) Message(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.Debugf("missing translation %s: %v", id, err)
		return id
	}
	return msg
}

// MonthName returns the lower-case month name, e.g. "marzo".
func (l *Localizer) MonthName(m time.Month) string {
	return l.Message(fmt.Sprintf("Month%d", int(m)), nil)
}

// MonthYear renders a title-cased "Marzo 2026" label.
func (l *Localizer) MonthYear(m time.Month, year int) string {
	return fmt.Sprintf("%s %d", l.title.String(l.MonthName(m)), year)
}

// Language returns the BCP 47 tag in use.
func (l *Localizer) Language() string {
	return strings.ToLower(l.tag.String())
}
