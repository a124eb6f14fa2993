package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external binary stt shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// UVX is the launcher requirement shared by model loading and preflight.
func UVX(command string) Requirement {
	return Requirement{
		Name:        "uvx",
		Command:     command,
		Description: "Runs parakeet-mlx and the Hugging Face downloader",
	}
}

// Status is the lookup result for one Requirement. Path is the resolved
// executable when Available.
type Status struct {
	Requirement
	Available bool
	Path      string
	Detail    string
}

// CheckBinaries resolves every requirement against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		results = append(results, lookup(req))
	}
	return results
}

func lookup(req Requirement) Status {
	status := Status{Requirement: req}
	if req.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(req.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}

// FirstMissing returns the first unavailable required binary. Optional
// requirements never count as missing.
func FirstMissing(statuses []Status) (Status, bool) {
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			return status, true
		}
	}
	return Status{}, false
}
