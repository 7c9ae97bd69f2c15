// Package i18n holds the message bundle for user-facing text. English
// defaults are registered at Init so lookups work even when no locale
// files were loaded.
package i18n

import (
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	MsgSomethingWentWrong = "ErrSomethingWentWrong"
	MsgSystemBusy         = "ErrSystemBusy"
)

var bundle *goi18n.Bundle

func Init() {
	bundle = goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	_ = bundle.AddMessages(language.English,
		&goi18n.Message{
			ID:    MsgSomethingWentWrong,
			Other: "Something went wrong with your request, please try again later.",
		},
		&goi18n.Message{
			ID:    MsgSystemBusy,
			Other: "The system is busy, please try again later.",
		},
	)
}

// Load adds a locale file (e.g. locales/active.sw.json) to the bundle.
func Load(path string) error {
	_, err := bundle.LoadMessageFile(path)
	return err
}

// T resolves a message id for the given language, falling back to the
// English default and finally to the id itself.
func T(lang, messageID string) string {
	if bundle == nil {
		Init()
	}
	msg, err := goi18n.NewLocalizer(bundle, lang).Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}
