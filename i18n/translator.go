package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "value" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"invalid_type":        "invalid type",
		"required":            "required property missing",
		"unknown_key":         "unknown key",
		"duplicate_key":       "duplicate key",
		"invalid_enum":        "invalid account key",
		"no_matching_variant": "value matches no variant",
		"parse_error":         "parse error",
		"truncated":           "truncated",
	},
	"ja": {
		"invalid_type":        "型が不正です",
		"required":            "必須プロパティが不足しています",
		"unknown_key":         "未知のキーです",
		"duplicate_key":       "キーが重複しています",
		"invalid_enum":        "アカウントキーが不正です",
		"no_matching_variant": "いずれの型にも一致しません",
		"parse_error":         "解析エラー",
		"truncated":           "打ち切られました",
	},
}

// detailKeys lists, per code, the data entry appended to the message.
var detailKeys = map[string]string{
	"invalid_type":        "got",
	"required":            "field",
	"unknown_key":         "key",
	"duplicate_key":       "key",
	"invalid_enum":        "value",
	"no_matching_variant": "got",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if k, ok := detailKeys[code]; ok && data[k] != "" {
		var b strings.Builder
		b.WriteString(msg)
		b.WriteString(": ")
		b.WriteString(data[k])
		return b.String()
	}
	return msg
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dict[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
