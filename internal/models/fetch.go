package models

type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeQuarantined    Outcome = "quarantined"
	OutcomeDryRunSkipped  Outcome = "dry_run"
	OutcomeTransferFailed Outcome = "transfer_failed"
)

type FetchItem struct {
	Name            string  `json:"name"`
	RemotePath      string  `json:"remote_path"`
	LocalPath       string  `json:"local_path,omitempty"`
	Outcome         Outcome `json:"outcome"`
	DurationSeconds int64   `json:"duration_seconds"`
	DeleteFailed    bool    `json:"delete_failed,omitempty"`
	Error           string  `json:"error,omitempty"`
}

type FetchResult struct {
	Source          string      `json:"source"`
	Destination     string      `json:"destination"`
	Quarantine      string      `json:"quarantine"`
	DryRun          bool        `json:"dry_run"`
	Items           []FetchItem `json:"items"`
	AcceptedFiles   int         `json:"accepted_files"`
	TargetSeconds   int64       `json:"target_seconds"`
	TotalSeconds    int64       `json:"total_seconds"`
	TotalDuration   string      `json:"total_duration"`
	TargetDuration  string      `json:"target_duration"`
	OperationTime   string      `json:"operation_time"`
	ElapsedDuration string      `json:"elapsed_duration"`
}

// Count returns how many items ended with the given outcome.
func (r *FetchResult) Count(o Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == o {
			n++
		}
	}
	return n
}
