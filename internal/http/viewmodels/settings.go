package viewmodels

type SettingField struct {
	Key       string
	Label     string
	Value     string
	Multiline bool
	// Changed is true when the draft differs from the saved value.
	Changed bool
}

type SettingsViewData struct {
	Fields []SettingField
	Dirty  bool
}

type QuestionList struct {
	Type      string
	Label     string
	Questions []string
	Dirty     bool
	Action    string
}

type QuestionsViewData struct {
	Lists []QuestionList
}
