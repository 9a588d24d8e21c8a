package a

import "i18n"

type user struct{ name string }

const welcome = "Welcome %1"

func calls(name string, count int, dynamic string, args []any) {
	_ = i18n.T("Hello %1, you have %2 items", name, count)
	_ = i18n.T("Hello %1 and %2", name)                        // want `Template string has 2 placeholders, only 1 arguments passed to T`
	_ = i18n.T("Hello %1", name, count)                        // want `Template string has 1 placeholders, but 2 arguments passed to T`
	_ = i18n.T("Hi %name", map[string]any{"name": name})
	_ = i18n.T("Bye %name", map[string]any{"other": name})     // want `Missing value for placeholder %name`
	_ = i18n.T("Hey %name", name)                              // want `Expected the second argument to T to be a collection literal of placeholder values`
	u := user{name: name}
	_ = i18n.T(welcome, u)                                     // want `Argument passed to T is not printable: variable u`
	_ = i18n.T(welcome, user{name: name})
	_ = i18n.T("Hi %name", map[any]any{"name": name, 2: name}) // want `Key of placeholder entry 2 must be a string literal`
	_ = i18n.T("%1", []any{name}, count)                       // want `When the second argument to T is a collection, it must be the only additional argument`
	_ = i18n.T(dynamic, name)
	_ = i18n.T("Spread %1 %2", args...)

	var tr i18n.Translator
	_ = tr.Translate("Method %1") // want `only 0 arguments passed to Translate`
}
