package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "property" or "variant").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "unrepresentable_optional_property":
			msg = "プロパティ {property} は{wrapper}のため表現できません (nullable を使用してください)"
		case "unsupported_variant":
			msg = "未対応のスキーマ種別です: {variant}"
		}
	default: // "en"
		switch code {
		case "unrepresentable_optional_property":
			msg = "property {property} {wrapper}; every property must be present (use nullable instead)"
		case "unsupported_variant":
			msg = "unsupported schema variant {variant}"
		}
	}
	if msg == "" {
		return code
	}
	for k, v := range data {
		if k == "wrapper" {
			// rendered as a phrase, not a quoted value
			if p, ok := wrapperPhrases[t.lang][v]; ok {
				v = p
			}
			msg = strings.ReplaceAll(msg, "{wrapper}", v)
			continue
		}
		msg = strings.ReplaceAll(msg, "{"+k+"}", quote(v))
	}
	return msg
}

var wrapperPhrases = map[string]map[string]string{
	"en": {"optional": "is optional", "default": "has a default"},
	"ja": {"optional": "省略可能", "default": "既定値付き"},
}

func quote(s string) string { return "\"" + s + "\"" }

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
