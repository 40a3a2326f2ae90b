package viewmodels

type LayoutData struct {
	Title      string
	CSRFToken  string
	UserID     string
	IsAdmin    bool
	Toast      *ToastViewData
	ActivePath string

	Tabs      []TabLink
	ActiveTab string

	// Loaded is false until the first refresh cycle has settled.
	Loaded       bool
	RefreshedAt  string
	RefreshAlert *AlertBanner
	// PollSeconds is how often read-only tabs re-render. Zero means 10.
	PollSeconds int
}

type TabLink struct {
	Key    string
	Label  string
	Href   string
	Active bool
	// Badge is an optional count shown next to the label.
	Badge string
}

type AlertBanner struct {
	Title   string
	Message string
	Items   []string
}
