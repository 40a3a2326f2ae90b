package views

import (
	"net/url"
	"strings"
)

// TabURL is the dashboard URL for a tab.
func TabURL(tab string) string {
	tab = strings.TrimSpace(tab)
	if tab == "" || tab == "overview" {
		return "/"
	}
	return "/?tab=" + url.QueryEscape(tab)
}

// OrDash returns "-" for blank values.
func OrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func badgeClass(class string) string {
	switch class {
	case "success", "danger", "warning", "muted":
		return "badge badge-" + class
	default:
		return "badge"
	}
}
