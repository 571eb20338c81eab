// Package i18n registers the narrative text of the game for each supported
// locale and resolves printers for them.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.Japanese,
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// ParseLocale maps a locale string such as "ja" or "en-US" to a supported
// tag. Blank input selects the default.
func ParseLocale(value string) (language.Tag, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), nil
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Tag{}, fmt.Errorf("parse locale %q: %w", value, err)
	}
	base, _ := parsed.Base()
	for _, tag := range supportedTags {
		if supportedBase, _ := tag.Base(); supportedBase == base {
			return tag, nil
		}
	}
	return language.Tag{}, fmt.Errorf("unsupported locale %q", value)
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ListSeparator joins display names in running text.
func ListSeparator(tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "ja" {
		return "、"
	}
	return ", "
}
