package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides values substituted into {placeholders} (for example,
// "expected", "actual", "field" or "record").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalog = map[string]map[string]string{
	"en": {
		"invalid_type":        "expected {expected}, got {actual}",
		"invalid_union":       "expected one of {expected}, got {actual}",
		"invalid_literal":     "expected one of {expected}, got {actual}",
		"invalid_length":      "expected {expected} items, got {actual}",
		"required":            "missing required field {field}",
		"unknown_key":         "unexpected field {field}",
		"invalid_declaration": "invalid declaration: {reason}",
	},
	"ja": {
		"invalid_type":        "{expected} が必要ですが {actual} が渡されました",
		"invalid_union":       "{expected} のいずれかが必要ですが {actual} が渡されました",
		"invalid_literal":     "{expected} のいずれかが必要ですが {actual} が渡されました",
		"invalid_length":      "要素数は {expected} 個が必要ですが {actual} 個でした",
		"required":            "必須フィールド {field} が不足しています",
		"unknown_key":         "未知のフィールド {field} です",
		"invalid_declaration": "宣言が不正です: {reason}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := catalog[t.lang][code]
	if !ok {
		msg, ok = catalog["en"][code]
	}
	if !ok {
		return code
	}
	if len(data) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	translatorMu      sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil Translator restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	translatorMu.Lock()
	currentTranslator = tr
	translatorMu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	translatorMu.RLock()
	tr := currentTranslator
	translatorMu.RUnlock()
	return tr.Message(code, data)
}
