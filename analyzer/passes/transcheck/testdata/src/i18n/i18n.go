package i18n

func T(template string, args ...any) string { return template }

type Translator struct{}

func (*Translator) Translate(template string, args ...any) string { return template }
