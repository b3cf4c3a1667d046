package i18n

import (
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed *.toml
var localeFS embed.FS

var bundle *i18n.Bundle

func init() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.zh.toml"} {
		data, err := localeFS.ReadFile(file)
		if err != nil {
			continue
		}
		if _, err := bundle.ParseMessageFileBytes(data, file); err != nil {
			panic("broken message catalog " + file + ": " + err.Error())
		}
	}
}

// Localizer resolves interface strings from the embedded catalogs.
type Localizer struct {
	localizer *i18n.Localizer
}

// NewLocalizer returns a localizer for the given locale. Anything other
// than a Chinese locale tag falls back to English.
func NewLocalizer(locale string) *Localizer {
	lang := language.English
	switch locale {
	case "zh", "zh-CN", "zh_CN":
		lang = language.Chinese
	}
	return &Localizer{localizer: i18n.NewLocalizer(bundle, lang.String())}
}

// T resolves a message by ID. An unknown ID comes back verbatim, so a
// missing catalog entry shows up on screen instead of blanking a label.
func (l *Localizer) T(messageID string) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: messageID,
	})
	if err != nil {
		return messageID
	}
	return msg
}

// TF resolves a message and substitutes template data.
func (l *Localizer) TF(messageID string, templateData map[string]interface{}) string {
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}
	return msg
}
