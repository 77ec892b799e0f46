// Package messages provides the localized mail text: subject, body, and the
// performance-conditioned cover paragraph. English is the reference locale
// and reproduces the original wording.
package messages

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog resolves mail text for one language.
type Catalog struct {
	loc *i18n.Localizer
}

// New loads the embedded locale bundle and returns a catalog for the given
// language tag. Unknown languages fall back to English per message.
func New(lang string) (*Catalog, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		bundle.MustParseMessageFileBytes(data, e.Name())
	}

	return &Catalog{loc: i18n.NewLocalizer(bundle, tag.String())}, nil
}

// Subject renders the message subject for a course.
func (c *Catalog) Subject(course string) string {
	return c.render("mail.subject", map[string]any{"Course": course})
}

// Encouragement is the below-average cover paragraph.
func (c *Catalog) Encouragement() string {
	return c.render("mail.encouragement", nil)
}

// Body renders the message body. coverText is either empty or the
// encouragement paragraph; a non-empty signature is appended.
func (c *Catalog) Body(firstName, coverText, signature string) string {
	cover := ""
	if coverText != "" {
		cover = "\n" + coverText + "\n"
	}
	body := c.render("mail.body", map[string]any{
		"FirstName": firstName,
		"CoverText": cover,
	})
	if strings.TrimSpace(signature) != "" {
		body += "\n\n" + strings.TrimSpace(signature)
	}
	return body
}

func (c *Catalog) render(msgID string, data map[string]any) string {
	s, err := c.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		slog.Warn("missing translation", "id", msgID, "error", err)
		return msgID
	}
	return s
}
