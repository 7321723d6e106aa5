package domain

// Effect tells the host what to do with the platform event it just delivered.
type Effect struct {
	// Consumed asks the host to suppress the platform default behaviour
	// (text selection, page scroll, link activation, context menu).
	Consumed bool `json:"consumed"`

	// ShowContextMenu asks the host to display the context menu now. It is set
	// on the release that ends a plain right click whose menu event was held
	// back while the button was down.
	ShowContextMenu bool `json:"show_context_menu,omitempty"`
}
