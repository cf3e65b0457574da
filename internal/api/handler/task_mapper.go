package handler

import (
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toTaskResponse(d *ports.TaskDetail) taskResponse {
	return taskResponse{
		ID:          d.Task.ID,
		Title:       d.Task.Title,
		Description: d.Task.Description,
		Status:      string(d.Task.Status),
		Priority:    string(d.Task.Priority),
		AssignedTo:  d.Assignee,
		Deadline:    d.Task.Deadline,
		CreatedAt:   d.Task.CreatedAt,
		UpdatedAt:   d.Task.UpdatedAt,
	}
}

func toTaskResponses(details []*ports.TaskDetail) []taskResponse {
	out := make([]taskResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toTaskResponse(d))
	}
	return out
}

// --- Request → Service input ---

func toCreateTaskInput(req createTaskRequest) (ports.CreateTaskInput, error) {
	deadline, _, err := parseDeadline(req.Deadline)
	if err != nil {
		return ports.CreateTaskInput{}, err
	}
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		Deadline:    deadline,
	}, nil
}

func toUpdateTaskInput(req updateTaskRequest) (ports.UpdateTaskInput, error) {
	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}
	if req.Deadline != nil {
		deadline, cleared, err := parseDeadline(req.Deadline)
		if err != nil {
			return ports.UpdateTaskInput{}, err
		}
		in.Deadline = deadline
		in.ClearDeadline = cleared
	}
	return in, nil
}

// parseDeadline accepts RFC 3339 timestamps and plain dates. An explicit
// empty string clears the deadline.
func parseDeadline(raw *string) (deadline *time.Time, cleared bool, err error) {
	if raw == nil {
		return nil, false, nil
	}
	if *raw == "" {
		return nil, true, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, parseErr := time.Parse(layout, *raw); parseErr == nil {
			t = t.UTC()
			return &t, false, nil
		}
	}
	return nil, false, domain.ErrValidation
}
