package handlers

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Translator translates message templates for one language.
//
// Templates carry placeholders such as %1 or %name. Positional templates
// take their values as arguments; named templates take a single map.
type Translator struct {
	Lang    string
	catalog map[string]string
}

// NewTranslator returns a Translator backed by catalog, which maps source
// templates to their translation.
func NewTranslator(lang string, catalog map[string]string) *Translator {
	return &Translator{Lang: lang, catalog: catalog}
}

// T translates template and substitutes args into its placeholders.
func (tr *Translator) T(template string, args ...any) string {
	if translated, ok := tr.catalog[template]; ok {
		template = translated
	}

	// Named templates take a single string-keyed map such as rex.Map.
	if len(args) == 1 {
		if m := reflect.ValueOf(args[0]); m.Kind() == reflect.Map && m.Type().Key().Kind() == reflect.String {
			keys := m.MapKeys()
			// Longest names first so %name is not replaced as %n.
			slices.SortFunc(keys, func(a, b reflect.Value) int {
				if d := len(b.String()) - len(a.String()); d != 0 {
					return d
				}
				return strings.Compare(a.String(), b.String())
			})

			pairs := make([]string, 0, 2*len(keys))
			for _, k := range keys {
				pairs = append(pairs, "%"+k.String(), fmt.Sprint(m.MapIndex(k).Interface()))
			}
			return strings.NewReplacer(pairs...).Replace(template)
		}
	}

	// Replace from the highest index down so %1 does not match inside %10.
	for i := len(args); i >= 1; i-- {
		template = strings.ReplaceAll(template, "%"+strconv.Itoa(i), fmt.Sprint(args[i-1]))
	}
	return template
}
