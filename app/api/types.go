package api

type Handler struct {
	publicDir string
	version   string
}

type HealthResponse struct {
	Status  string `json:"status"`
	LastRun string `json:"last_run,omitempty"`
	Version string `json:"version"`
}
