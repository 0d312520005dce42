package webhook

// Mapping is the desired state of a webhook mapping as submitted to the
// remote API. Project and Package identify the build target; OBS names
// the build service instance the mapping belongs to.
type Mapping struct {
	OBS     string `json:"obs"`
	User    string `json:"user"`
	RepoURL string `json:"repourl"`
	Branch  string `json:"branch"`
	Project string `json:"project"`
	Package string `json:"package"`
	Token   string `json:"token"`
	Debian  bool   `json:"debian"`
	Dumb    bool   `json:"dumb"`
	Notify  bool   `json:"notify"`
	Build   bool   `json:"build"`
	Comment string `json:"comment"`
}

// RemoteMapping is a mapping as stored by the remote API, identified by
// an opaque numeric ID once it exists.
type RemoteMapping struct {
	ID int64 `json:"id"`
	Mapping
}

// MappingList is the response of a filtered list query against the
// mapping collection.
type MappingList struct {
	Count   int             `json:"count"`
	Results []RemoteMapping `json:"results"`
}

// TriggerResult is the response of the remote trigger action.
type TriggerResult struct {
	ID     int64  `json:"id,omitempty"`
	Detail string `json:"detail,omitempty"`
}
