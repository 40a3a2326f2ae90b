package dashboard

import (
	"slices"

	"github.com/modboard/modboard/internal/botapi"
)

// The draft helpers never modify their input; each returns a fresh slice or
// map so a draft can never alias the canonical snapshot.

// AddQuestion appends an empty question.
func AddQuestion(questions []string) []string {
	return append(slices.Clone(questions), "")
}

// UpdateQuestion replaces the question at i. Out of range indexes leave the
// list unchanged.
func UpdateQuestion(questions []string, i int, text string) []string {
	out := slices.Clone(questions)
	if i >= 0 && i < len(out) {
		out[i] = text
	}
	return out
}

// RemoveQuestion drops the question at i. Out of range indexes leave the list
// unchanged.
func RemoveQuestion(questions []string, i int) []string {
	out := slices.Clone(questions)
	if i < 0 || i >= len(out) {
		return out
	}
	return slices.Delete(out, i, i+1)
}

// EditSettings returns draft with the known keys present in values replaced.
// Keys outside botapi.SettingKeys are ignored so a form cannot add settings
// the bot does not know.
func EditSettings(draft botapi.Settings, values map[string]string) botapi.Settings {
	out := draft.Clone()
	if out == nil {
		out = make(botapi.Settings, len(botapi.SettingKeys))
	}
	for _, key := range botapi.SettingKeys {
		if v, ok := values[key]; ok {
			out[key] = v
		}
	}
	return out
}
