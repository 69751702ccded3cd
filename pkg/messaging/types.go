package messaging

type ChangeTopic string

const (
	// CatalogChanged is announced by the catalog when products change.
	CatalogChanged ChangeTopic = "catalog_changed"
	// Tracking carries session and search events.
	Tracking ChangeTopic = "tracking"
)
