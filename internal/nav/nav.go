package nav

import "strings"

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/cart"
	LabelKey string // i18n key, e.g. "nav.cart"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Main is the primary navigation definition. The checkout and payment pages
// are reachable only through the flow and stay out of the header.
var Main = []Item{
	{Path: "/", LabelKey: "nav.request"},
	{Path: "/cart", LabelKey: "nav.cart"},
	{Path: "/order-history", LabelKey: "nav.history"},
}

// Build renders navigation items with active state given the current path.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}
