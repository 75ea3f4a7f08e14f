// Package i18n provides localized validation message catalogs.
//
// Each validator failure is identified by a machine-readable code and
// rendered through a per-locale message template. Unknown locales fall
// back to the base locale via language matching.
package i18n

import (
	"bytes"
	"sort"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Code is a machine-readable validation message code.
type Code string

// Validation message codes. One per failure mode, shared across locales.
const (
	CodeCastFailed          Code = "CAST_FAILED"
	CodeRequired            Code = "FIELD_REQUIRED"
	CodeLengthMin           Code = "LENGTH_MIN"
	CodeLengthMax           Code = "LENGTH_MAX"
	CodeLengthIs            Code = "LENGTH_IS"
	CodeLengthUnsupported   Code = "LENGTH_UNSUPPORTED"
	CodeNumberInvalid       Code = "NUMBER_INVALID"
	CodeNumberGreaterThan   Code = "NUMBER_GREATER_THAN"
	CodeNumberGreaterEqual  Code = "NUMBER_GREATER_THAN_OR_EQUAL_TO"
	CodeNumberLessThan      Code = "NUMBER_LESS_THAN"
	CodeNumberLessEqual     Code = "NUMBER_LESS_THAN_OR_EQUAL_TO"
	CodeNumberEqualTo       Code = "NUMBER_EQUAL_TO"
	CodeNumberNotEqualTo    Code = "NUMBER_NOT_EQUAL_TO"
	CodeFormat              Code = "FORMAT_MISMATCH"
	CodeInclusion           Code = "INCLUSION"
	CodeExclusion           Code = "EXCLUSION"
	CodeSubset              Code = "SUBSET"
	CodeSubsetNotList       Code = "SUBSET_NOT_LIST"
	CodeAcceptance          Code = "ACCEPTANCE"
	CodeConfirmationMissing Code = "CONFIRMATION_MISSING"
	CodeConfirmation        Code = "CONFIRMATION_MISMATCH"
)

// Catalog maps message codes to templates for a single locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Catalog{}

	matcherOnce sync.Once
	matcher     language.Matcher
	matcherTags []string
)

// register adds a locale catalog at package init time.
func register(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{locale: locale, messages: messages}
	registryMu.Lock()
	registry[locale] = c
	registryMu.Unlock()
	return c
}

// ForLocale returns the catalog best matching the requested locale.
// Falls back to the base locale when no catalog matches.
func ForLocale(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	registryMu.RLock()
	exact, ok := registry[requested]
	registryMu.RUnlock()
	if ok {
		return exact
	}

	resolved := matchLocale(requested)
	registryMu.RLock()
	defer registryMu.RUnlock()
	if c, ok := registry[resolved]; ok {
		return c
	}
	return registry[BaseLocale]
}

// Locales returns all registered locale identifiers, sorted.
func Locales() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for locale := range registry {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the code itself when no template is registered, and to the
// raw template when rendering fails, so callers always get a message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return string(code)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// matchLocale resolves a requested locale to a registered one using
// language matching (e.g. "pt" and "pt-PT" resolve to "pt-BR").
func matchLocale(requested string) string {
	matcherOnce.Do(func() {
		locales := Locales()
		tags := make([]language.Tag, 0, len(locales)+1)
		names := make([]string, 0, len(locales)+1)
		// Base locale first so it wins ties and undetermined matches.
		tags = append(tags, language.Make(BaseLocale))
		names = append(names, BaseLocale)
		for _, locale := range locales {
			if locale == BaseLocale {
				continue
			}
			tags = append(tags, language.Make(locale))
			names = append(names, locale)
		}
		matcher = language.NewMatcher(tags)
		matcherTags = names
	})

	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, index, _ := matcher.Match(tag)
	if index < 0 || index >= len(matcherTags) {
		return BaseLocale
	}
	return matcherTags[index]
}
