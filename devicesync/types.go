// Package devicesync reconciles offline batches pushed by mobile POS
// clients into the server store. Records are upserted by client-assigned
// identifiers so a retried batch never duplicates rows.
package devicesync

// CollectionResult carries per-collection reconciliation counters.
type CollectionResult struct {
	Success int `json:"success"`
	Error   int `json:"error"`
}

// BusinessResult reports what happened to the batch's business record.
type BusinessResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
	Updated bool   `json:"updated"`
}

// SyncResults maps collection names to their counters, plus the "business"
// key which holds a *BusinessResult or nil.
type SyncResults map[string]interface{}

type SyncResponse struct {
	Message string      `json:"message"`
	Results SyncResults `json:"results"`
}
