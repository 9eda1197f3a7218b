package models

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

// Candidate is a remote audio file eligible for fetching.
type Candidate struct {
	Location   string `json:"location"`
	RelPath    string `json:"rel_path"`
	Name       string `json:"name"`
	RemotePath string `json:"remote_path"`
	Size       int64  `json:"size"`
}

// DisplayName is the candidate path relative to the remote location.
func (c Candidate) DisplayName() string {
	if c.RelPath != "" {
		return c.RelPath
	}
	return c.Name
}

type ListResult struct {
	Source     string      `json:"source"`
	Backend    string      `json:"backend"`
	Candidates []Candidate `json:"candidates"`
	TotalFiles int         `json:"total_files"`
	TotalSize  string      `json:"total_size_human"`
}
