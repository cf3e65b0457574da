package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

type stubTaskService struct {
	lastListInput    ports.ListTasksInput
	lastCreateInput  ports.CreateTaskInput
	lastUpdateInput  ports.UpdateTaskInput
	lastStatusCaller ports.Caller
	lastStatus       domain.TaskStatus
	detail           *ports.TaskDetail
	details          []*ports.TaskDetail
	err              error
}

func (s *stubTaskService) List(_ context.Context, in ports.ListTasksInput) ([]*ports.TaskDetail, error) {
	s.lastListInput = in
	return s.details, s.err
}

func (s *stubTaskService) Get(context.Context, string) (*ports.TaskDetail, error) {
	return s.detail, s.err
}

func (s *stubTaskService) Create(_ context.Context, in ports.CreateTaskInput) (*ports.TaskDetail, error) {
	s.lastCreateInput = in
	return s.detail, s.err
}

func (s *stubTaskService) Update(_ context.Context, _ string, in ports.UpdateTaskInput) (*ports.TaskDetail, error) {
	s.lastUpdateInput = in
	return s.detail, s.err
}

func (s *stubTaskService) UpdateStatus(_ context.Context, caller ports.Caller, _ string, status domain.TaskStatus) (*ports.TaskDetail, error) {
	s.lastStatusCaller = caller
	s.lastStatus = status
	return s.detail, s.err
}

func (s *stubTaskService) Delete(context.Context, string) error {
	return s.err
}

func sampleDetail() *ports.TaskDetail {
	return &ports.TaskDetail{
		Task: &domain.Task{
			ID:       "task_1",
			Title:    "Ship it",
			Status:   domain.StatusToDo,
			Priority: domain.PriorityMedium,
		},
	}
}

func TestTaskHandler_List_PassesFiltersAndCaller(t *testing.T) {
	stub := &stubTaskService{details: []*ports.TaskDetail{sampleDetail()}}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/tasks?status=In+Progress&priority=High&assigned_to=unassigned&search=deploy", "")
	c.Set("user_id", "user_1")
	c.Set("role", "admin")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	in := stub.lastListInput
	if in.Caller.UserID != "user_1" || in.Caller.Role != "admin" {
		t.Errorf("caller not forwarded: %+v", in.Caller)
	}
	if in.Status != "In Progress" || in.Priority != "High" || in.Search != "deploy" {
		t.Errorf("filters not forwarded: %+v", in)
	}
	if in.AssignedTo != "unassigned" {
		t.Errorf("assigned_to not forwarded: %q", in.AssignedTo)
	}

	resp := decodeEnvelope(t, rec)
	if resp["count"] != float64(1) {
		t.Errorf("expected count=1, got %v", resp["count"])
	}
}

func TestTaskHandler_List_MissingClaims(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/tasks", "")

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create_Success(t *testing.T) {
	detail := sampleDetail()
	detail.Task.AssignedTo = "emp_1"
	detail.Assignee = &ports.EmployeeSummary{ID: "emp_1", Name: "Alice"}
	stub := &stubTaskService{detail: detail}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Ship it","priority":"High","assigned_to":"emp_1","deadline":"2026-09-15"}`)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	in := stub.lastCreateInput
	if in.Title != "Ship it" || in.AssignedTo != "emp_1" {
		t.Errorf("input not forwarded: %+v", in)
	}
	if in.Deadline == nil || !in.Deadline.Equal(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("deadline not parsed: %v", in.Deadline)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	assignee, ok := data["assigned_to"].(map[string]any)
	if !ok || assignee["id"] != "emp_1" {
		t.Errorf("assigned_to must be the populated object, got %v", data["assigned_to"])
	}
}

func TestTaskHandler_Create_UnassignedRendersNull(t *testing.T) {
	stub := &stubTaskService{detail: sampleDetail()}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"Ship it"}`)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	if v, present := data["assigned_to"]; !present || v != nil {
		t.Errorf("unassigned task must render assigned_to as explicit null, got %v", v)
	}
}

func TestTaskHandler_Create_BadDeadline(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Ship it","deadline":"next tuesday"}`)

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Create_InvalidStatus(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/tasks",
		`{"title":"Ship it","status":"Done"}`)

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Update_ClearsDeadlineOnEmptyString(t *testing.T) {
	stub := &stubTaskService{detail: sampleDetail()}
	handler := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/task_1", `{"deadline":""}`)

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !stub.lastUpdateInput.ClearDeadline {
		t.Error("empty deadline string must clear the deadline")
	}
	if stub.lastUpdateInput.Deadline != nil {
		t.Errorf("cleared deadline must be nil, got %v", stub.lastUpdateInput.Deadline)
	}
}

func TestTaskHandler_UpdateStatus_Success(t *testing.T) {
	stub := &stubTaskService{detail: sampleDetail()}
	handler := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/api/tasks/task_1/status",
		`{"status":"In Progress"}`)
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastStatus != domain.StatusInProgress {
		t.Errorf("status not forwarded: %q", stub.lastStatus)
	}
	if stub.lastStatusCaller.UserID != "user_1" {
		t.Errorf("caller not forwarded: %+v", stub.lastStatusCaller)
	}
}

func TestTaskHandler_UpdateStatus_InvalidValue(t *testing.T) {
	handler := NewTaskHandler(&stubTaskService{})

	c, rec := newTestContext(t, http.MethodPatch, "/api/tasks/task_1/status",
		`{"status":"Done"}`)
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	_ = handler.UpdateStatus(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	msg, _ := resp["message"].(string)
	if !strings.Contains(msg, "To Do, In Progress, or Completed") {
		t.Errorf("expected the allowed statuses in the message, got %q", msg)
	}
}

func TestTaskHandler_UpdateStatus_ForbiddenPropagates(t *testing.T) {
	stub := &stubTaskService{err: domain.ErrForbidden}
	handler := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/api/tasks/task_1/status",
		`{"status":"Completed"}`)
	c.Set("user_id", "user_1")
	c.Set("role", "user")

	err := handler.UpdateStatus(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
