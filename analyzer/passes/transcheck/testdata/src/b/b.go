package b

import "i18n"

type point struct{ x int }

func calls(v any, name string) {
	_ = i18n.T("Value %1", v)                                              // want `Argument passed to i18n.T is not printable: variable v`
	_ = i18n.T("Hi %name", map[string]string{"name": name, "age": "3"}) // want `Key "age" is not used by any placeholder`
	_ = i18n.T("Point %1", point{x: 1})                                    // want `Argument passed to i18n.T is not printable: struct literal`

	var tr i18n.Translator
	_ = tr.Translate("Method %1")
}
