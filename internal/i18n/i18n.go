// Package i18n resolves the request locale and looks up the server's own
// messages in the embedded catalogs under locales/<locale>/<namespace>.json.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
)

const (
	CookieName       = "NEXT_LOCALE"
	DefaultLocale    = "en"
	DefaultNamespace = "common"
)

var (
	Locales    = []string{"en", "pt", "sv"}
	Namespaces = []string{"common", "blog", "transcriptions", "auth"}
)

// matcher order must follow Locales so match indexes line up.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Portuguese,
	language.Swedish,
})

//go:embed locales/*/*.json
var localesFS embed.FS

// Supported reports whether locale is one of Locales, exactly.
func Supported(locale string) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}

func match(tags ...language.Tag) (string, bool) {
	if len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Locales[idx], true
}

// FromCookie maps a cookie value such as "pt" or "pt-BR" to a supported locale.
func FromCookie(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	return match(tag)
}

// FromAcceptLanguage picks the best supported locale from an Accept-Language
// header, honoring q-values.
func FromAcceptLanguage(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	return match(tags...)
}

// Resolve applies cookie, then Accept-Language, then DefaultLocale.
func Resolve(cookie, acceptLanguage string) string {
	if locale, ok := FromCookie(cookie); ok {
		return locale
	}
	if locale, ok := FromAcceptLanguage(acceptLanguage); ok {
		return locale
	}
	return DefaultLocale
}

// Catalog holds messages as locale -> namespace -> key -> text.
type Catalog struct {
	messages map[string]map[string]map[string]string
}

// Load reads every embedded locale file. A missing file is an error so that a
// new namespace cannot ship without all translations.
func Load() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]map[string]string, len(Locales))}
	for _, locale := range Locales {
		c.messages[locale] = make(map[string]map[string]string, len(Namespaces))
		for _, ns := range Namespaces {
			raw, err := localesFS.ReadFile(path.Join("locales", locale, ns+".json"))
			if err != nil {
				return nil, fmt.Errorf("read %s/%s: %w", locale, ns, err)
			}
			var msgs map[string]string
			if err := json.Unmarshal(raw, &msgs); err != nil {
				return nil, fmt.Errorf("decode %s/%s: %w", locale, ns, err)
			}
			c.messages[locale][ns] = msgs
		}
	}
	return c, nil
}

func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Namespace returns a copy of the messages of one namespace.
func (c *Catalog) Namespace(locale, ns string) (map[string]string, bool) {
	msgs, ok := c.messages[locale][ns]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(msgs))
	for k, v := range msgs {
		out[k] = v
	}
	return out, true
}

// T looks key up in ns, then in the common namespace, first for locale and
// then for DefaultLocale. The key itself is returned when nothing matches.
func (c *Catalog) T(locale, ns, key string) string {
	for _, l := range []string{locale, DefaultLocale} {
		for _, n := range []string{ns, DefaultNamespace} {
			if msg, ok := c.messages[l][n][key]; ok {
				return msg
			}
		}
	}
	return key
}
