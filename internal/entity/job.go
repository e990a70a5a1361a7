package entity

// JobStatus is the run-state record for one (tenant, job) pair. Running must
// be reset on both success and failure; LastSuccess changes only on success.
type JobStatus struct {
	Running     bool  `json:"running"`
	LastRun     int64 `json:"lastRun,omitempty"`
	LastSuccess int64 `json:"lastSuccess,omitempty"`
}
