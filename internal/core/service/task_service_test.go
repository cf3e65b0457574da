package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

func adminCaller() ports.Caller {
	return ports.Caller{UserID: "user_admin", Role: domain.RoleAdmin}
}

func userCaller() ports.Caller {
	return ports.Caller{UserID: "user_1", Role: domain.RoleUser}
}

// ---------------------------------------------------------------------------
// List scoping
// ---------------------------------------------------------------------------

func TestTaskService_List_AdminFiltersPassVerbatim(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Caller:     adminCaller(),
		Status:     "In Progress",
		Priority:   "High",
		AssignedTo: "emp_42",
		Search:     "deploy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := tasks.lastFilter
	if f.Status != "In Progress" || f.Priority != "High" || f.Search != "deploy" {
		t.Errorf("admin filters must pass through, got %+v", f)
	}
	if f.AssignedTo != "emp_42" {
		t.Errorf("admin assigned_to must pass through, got %q", f.AssignedTo)
	}
	if f.Unassigned {
		t.Error("unassigned must not be set for an id filter")
	}
}

func TestTaskService_List_AdminUnassignedSentinel(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Caller:     adminCaller(),
		AssignedTo: ports.AssignedToUnassigned,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !tasks.lastFilter.Unassigned {
		t.Error("'unassigned' must translate to the null-assignee filter")
	}
	if tasks.lastFilter.AssignedTo != "" {
		t.Errorf("assigned_to must be empty for the sentinel, got %q", tasks.lastFilter.AssignedTo)
	}
}

func TestTaskService_List_UserPinnedToOwnEmployee(t *testing.T) {
	tasks := newStubTaskRepo()
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	// The request asks for someone else's tasks; the filter must be
	// overridden, not merged.
	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Caller:     userCaller(),
		AssignedTo: "emp_other",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tasks.lastFilter.AssignedTo != "emp_own" {
		t.Errorf("user must be pinned to own employee, got %q", tasks.lastFilter.AssignedTo)
	}
	if identity.calls != 1 {
		t.Errorf("expected 1 identity resolution, got %d", identity.calls)
	}
}

func TestTaskService_List_UserUnassignedSentinelIgnored(t *testing.T) {
	tasks := newStubTaskRepo()
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Caller:     userCaller(),
		AssignedTo: ports.AssignedToUnassigned,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tasks.lastFilter.Unassigned {
		t.Error("user must never see the unassigned pool")
	}
	if tasks.lastFilter.AssignedTo != "emp_own" {
		t.Errorf("user must be pinned to own employee, got %q", tasks.lastFilter.AssignedTo)
	}
}

func TestTaskService_List_UserKeepsNonScopeFilters(t *testing.T) {
	tasks := newStubTaskRepo()
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Caller:   userCaller(),
		Status:   "Completed",
		Priority: "Low",
		Search:   "report",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := tasks.lastFilter
	if f.Status != "Completed" || f.Priority != "Low" || f.Search != "report" {
		t.Errorf("status/priority/search must still apply for users, got %+v", f)
	}
}

func TestTaskService_List_IdentityFailureBlocksUser(t *testing.T) {
	identity := &stubIdentity{err: domain.ErrUserNotFound}
	svc := NewTaskService(newStubTaskRepo(), newStubEmployeeRepo(), identity, discardLogger)

	_, err := svc.List(context.Background(), ports.ListTasksInput{Caller: userCaller()})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected identity error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_AppliesDefaults(t *testing.T) {
	tasks := newStubTaskRepo()
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	detail, err := svc.Create(context.Background(), ports.CreateTaskInput{Title: "Ship it"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.Task.Status != domain.StatusToDo {
		t.Errorf("default status: want %q, got %q", domain.StatusToDo, detail.Task.Status)
	}
	if detail.Task.Priority != domain.PriorityMedium {
		t.Errorf("default priority: want %q, got %q", domain.PriorityMedium, detail.Task.Priority)
	}
	if detail.Assignee != nil {
		t.Error("unassigned task must have nil assignee")
	}
}

func TestTaskService_Create_UnknownAssigneeRejected(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:      "Ship it",
		AssignedTo: "emp_ghost",
	})
	if !errors.Is(err, domain.ErrInvalidAssignee) {
		t.Fatalf("expected ErrInvalidAssignee, got %v", err)
	}
}

func TestTaskService_Create_PopulatesAssignee(t *testing.T) {
	employees := newStubEmployeeRepo()
	emp := employees.seedEmployee(domain.Employee{
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       domain.RoleDeveloper,
		Department: domain.DeptEngineering,
	})
	svc := NewTaskService(newStubTaskRepo(), employees, &stubIdentity{}, discardLogger)

	detail, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:      "Ship it",
		AssignedTo: emp.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Assignee == nil {
		t.Fatal("expected populated assignee")
	}
	if detail.Assignee.ID != emp.ID || detail.Assignee.Name != "Alice" {
		t.Errorf("unexpected assignee: %+v", detail.Assignee)
	}
	if detail.Task.AssignedTo != emp.ID {
		t.Errorf("internal reference must stay an id, got %q", detail.Task.AssignedTo)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialFields(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{
		Title:    "Old title",
		Status:   domain.StatusToDo,
		Priority: domain.PriorityLow,
	})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	newTitle := "New title"
	newStatus := domain.StatusInProgress
	detail, err := svc.Update(context.Background(), seeded.ID, ports.UpdateTaskInput{
		Title:  &newTitle,
		Status: &newStatus,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.Task.Title != "New title" {
		t.Errorf("title not updated: %q", detail.Task.Title)
	}
	if detail.Task.Status != domain.StatusInProgress {
		t.Errorf("status not updated: %q", detail.Task.Status)
	}
	if detail.Task.Priority != domain.PriorityLow {
		t.Errorf("untouched field changed: %q", detail.Task.Priority)
	}
}

func TestTaskService_Update_ClearDeadline(t *testing.T) {
	tasks := newStubTaskRepo()
	deadline := time.Now().UTC().AddDate(0, 0, 7)
	seeded := tasks.seedTask(domain.Task{Title: "With deadline", Deadline: &deadline})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	detail, err := svc.Update(context.Background(), seeded.ID, ports.UpdateTaskInput{ClearDeadline: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Task.Deadline != nil {
		t.Errorf("deadline must be cleared, got %v", detail.Task.Deadline)
	}
}

func TestTaskService_Update_UnknownAssigneeRejected(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T"})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	ghost := "emp_ghost"
	_, err := svc.Update(context.Background(), seeded.ID, ports.UpdateTaskInput{AssignedTo: &ghost})
	if !errors.Is(err, domain.ErrInvalidAssignee) {
		t.Fatalf("expected ErrInvalidAssignee, got %v", err)
	}
}

func TestTaskService_Update_UnassignByEmptyString(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", AssignedTo: "emp_1"})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	empty := ""
	detail, err := svc.Update(context.Background(), seeded.ID, ports.UpdateTaskInput{AssignedTo: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Task.AssignedTo != "" {
		t.Errorf("task must be unassigned, got %q", detail.Task.AssignedTo)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus authorization
// ---------------------------------------------------------------------------

func TestTaskService_UpdateStatus_AdminTouchesAnyTask(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", AssignedTo: "emp_other", Status: domain.StatusToDo})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	detail, err := svc.UpdateStatus(context.Background(), adminCaller(), seeded.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Task.Status != domain.StatusCompleted {
		t.Errorf("status not updated: %q", detail.Task.Status)
	}
}

func TestTaskService_UpdateStatus_OwnerAllowed(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", AssignedTo: "emp_own", Status: domain.StatusToDo})
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	detail, err := svc.UpdateStatus(context.Background(), userCaller(), seeded.ID, domain.StatusInProgress)
	if err != nil {
		t.Fatalf("owner must be allowed, got %v", err)
	}
	if detail.Task.Status != domain.StatusInProgress {
		t.Errorf("status not updated: %q", detail.Task.Status)
	}
}

func TestTaskService_UpdateStatus_NonOwnerForbidden(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", AssignedTo: "emp_other", Status: domain.StatusToDo})
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	_, err := svc.UpdateStatus(context.Background(), userCaller(), seeded.ID, domain.StatusCompleted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := tasks.FindByID(context.Background(), seeded.ID)
	if stored.Status != domain.StatusToDo {
		t.Errorf("forbidden update must not change the task, got %q", stored.Status)
	}
}

func TestTaskService_UpdateStatus_UnassignedForbiddenForUser(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", Status: domain.StatusToDo})
	identity := &stubIdentity{emp: &domain.Employee{ID: "emp_own"}}
	svc := NewTaskService(tasks, newStubEmployeeRepo(), identity, discardLogger)

	_, err := svc.UpdateStatus(context.Background(), userCaller(), seeded.ID, domain.StatusCompleted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unassigned task, got %v", err)
	}
}

func TestTaskService_UpdateStatus_TaskNotFound(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	_, err := svc.UpdateStatus(context.Background(), adminCaller(), "task_ghost", domain.StatusCompleted)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Read model
// ---------------------------------------------------------------------------

func TestTaskService_Get_DanglingAssigneeRendersUnassigned(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T", AssignedTo: "emp_deleted"})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	detail, err := svc.Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("dangling assignee must not fail the read, got %v", err)
	}
	if detail.Assignee != nil {
		t.Errorf("dangling assignee must render as unassigned, got %+v", detail.Assignee)
	}
}

func TestTaskService_Delete(t *testing.T) {
	tasks := newStubTaskRepo()
	seeded := tasks.seedTask(domain.Task{Title: "T"})
	svc := NewTaskService(tasks, newStubEmployeeRepo(), &stubIdentity{}, discardLogger)

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tasks.FindByID(context.Background(), seeded.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("task must be gone, got %v", err)
	}

	if err := svc.Delete(context.Background(), "task_ghost"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
