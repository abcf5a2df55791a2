package i18n

import "strings"

// Translator retrieves localized default messages for rule kinds.
// data provides optional metadata to embed in the message (for example,
// "field", "min", or "values").
type Translator interface {
	Message(rule string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(rule string, data map[string]string) string {
	field := data["field"]
	if field == "" {
		field = "value"
	}
	switch t.lang {
	case "ja":
		switch rule {
		case "required":
			return field + " は必須です"
		case "minlength":
			return field + " は " + data["min"] + " 文字以上で入力してください"
		case "maxlength":
			return field + " は " + data["max"] + " 文字以内で入力してください"
		case "min":
			return field + " は " + data["min"] + " 以上でなければなりません"
		case "max":
			return field + " は " + data["max"] + " 以下でなければなりません"
		case "minitems":
			return field + " は " + data["min"] + " 件以上必要です"
		case "maxitems":
			return field + " は " + data["max"] + " 件以内にしてください"
		case "email":
			return field + " は有効なメールアドレスではありません"
		case "regex":
			return field + " の形式が不正です"
		case "enum":
			return field + " は次のいずれかでなければなりません: " + data["values"]
		case "type":
			return field + " の型が不正です"
		}
		return field + " の検証に失敗しました"
	default: // "en"
		switch rule {
		case "required":
			return field + " is required"
		case "minlength":
			return field + " must be at least " + data["min"] + " characters"
		case "maxlength":
			return field + " must be at most " + data["max"] + " characters"
		case "min":
			return field + " must be at least " + data["min"]
		case "max":
			return field + " must be at most " + data["max"]
		case "minitems":
			return field + " must contain at least " + data["min"] + " items"
		case "maxitems":
			return field + " must contain at most " + data["max"] + " items"
		case "email":
			return field + " must be a valid email address"
		case "regex":
			return field + " format is invalid"
		case "enum":
			return field + " must be one of: " + data["values"]
		case "type":
			return field + " has an invalid type"
		}
		return field + " validation failed"
	}
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if strings.ToLower(lang) != "ja" {
		lang = "en"
	} else {
		lang = "ja"
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

// T fetches a message for the given rule kind using the current Translator.
func T(rule string, data map[string]string) string { return currentTranslator.Message(rule, data) }
