package code

import (
	"errors"
	"reflect"
)

// lang stores the per-language message text for a code.
type lang struct {
	en    string
	zh_cn string
}

var lng = "en"

const FALLBACK_LNG = "en"

// GetMessage returns the message for the active language, falling back
// to English when the active language has no text.
func (l lang) GetMessage() string {
	if lng == "" {
		lng = FALLBACK_LNG
	}
	val := reflect.ValueOf(l)
	field := val.FieldByName(lng)
	if field.IsValid() && field.String() != "" {
		return field.String()
	}
	fallbackField := val.FieldByName(FALLBACK_LNG)
	if fallbackField.IsValid() && fallbackField.String() != "" {
		return fallbackField.String()
	}
	return "no message available"
}

// GetSupportedLanguages returns the language field names of the lang type.
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// SetGlobalDefaultLang sets the language used for response messages.
func SetGlobalDefaultLang(language string) error {
	for _, l := range GetSupportedLanguages() {
		if language == l {
			lng = language
			return nil
		}
	}
	lng = FALLBACK_LNG
	return errors.New("unsupported language type, defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang returns the active language.
func GetGlobalDefaultLang() string {
	return lng
}
