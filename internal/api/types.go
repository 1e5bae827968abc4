package api

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Request describes one remote query. Empty fields disable their filters.
type Request struct {
	Source string
	Folder bool // Source names a directory on the server
	Filter string
	Level  string
	Start  string
	End    string
}

const (
	pathLogs       = "/api/logs"
	pathFolderLogs = "/api/folder-logs"
	pathHealth     = "/health"
)
