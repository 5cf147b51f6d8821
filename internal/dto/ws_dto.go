package dto

// WebSocketAction names for text frames.
type WebSocketAction = string

const (
	// ItemsChanged notifies clients that the metadata set changed and a
	// re-fetch is due.
	ItemsChanged WebSocketAction = "ItemsChanged"
)

// Change event kinds carried in ItemsChangedPayload.
const (
	ChangeEventCreate = "create"
	ChangeEventUpdate = "update"
	ChangeEventDelete = "delete"
)

// Changed resource kinds.
const (
	ChangeResourceFiles   = "files"
	ChangeResourceFolders = "folders"
)

// ItemsChangedPayload tells the client which resource changed. Clients
// re-fetch their current view rather than patching state from this.
type ItemsChangedPayload struct {
	Resource string `json:"resource"`
	Event    string `json:"event"`
	Path     string `json:"path,omitempty"`
}
