package dto

// ResetResponse reports the store contents after a reset to the demo data.
type ResetResponse struct {
	Reset  bool           `json:"reset"`
	Counts map[string]int `json:"counts"`
}

// HealthResponse is served by the readiness probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
