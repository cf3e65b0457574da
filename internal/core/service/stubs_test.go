package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	updateErr error
	updates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.updates++
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

// seedUser stores a user directly and returns its id.
func (r *stubUserRepo) seedUser(u domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.byID[u.ID] = &u
	return &u
}

type stubEmployeeRepo struct {
	byID    map[string]*domain.Employee
	nextID  int
	creates int
	deleted []string

	// createRaceWinner, when set, makes the next Create fail with
	// ErrEmployeeExists after inserting the winner record, simulating a
	// concurrent insert hitting the unique email index first.
	createRaceWinner *domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.creates++
	if r.createRaceWinner != nil {
		winner := r.createRaceWinner
		r.createRaceWinner = nil
		r.byID[winner.ID] = winner
		return nil, domain.ErrEmployeeExists
	}
	for _, existing := range r.byID {
		if existing.Email == e.Email {
			return nil, domain.ErrEmployeeExists
		}
	}
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("emp_%d", r.nextID)
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.byID {
		if e.Email == email {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) List(_ context.Context, f ports.ListEmployeesFilter) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.byID {
		if f.Department != "" && string(e.Department) != f.Department {
			continue
		}
		if f.Role != "" && string(e.Role) != f.Role {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(e.Name), s) && !strings.Contains(strings.ToLower(e.Email), s) {
				continue
			}
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.byID[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubEmployeeRepo) seedEmployee(e domain.Employee) *domain.Employee {
	if e.ID == "" {
		r.nextID++
		e.ID = fmt.Sprintf("emp_%d", r.nextID)
	}
	r.byID[e.ID] = &e
	return &e
}

type stubTaskRepo struct {
	byID       map[string]*domain.Task
	nextID     int
	lastFilter ports.ListTasksFilter
	listErr    error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *t
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []*domain.Task
	for _, t := range r.byID {
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		if f.Unassigned && t.AssignedTo != "" {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title), s) && !strings.Contains(strings.ToLower(t.Description), s) {
				continue
			}
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) FindByAssignee(_ context.Context, employeeID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.AssignedTo == employeeID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.byID[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTaskRepo) seedTask(t domain.Task) *domain.Task {
	if t.ID == "" {
		r.nextID++
		t.ID = fmt.Sprintf("task_%d", r.nextID)
	}
	r.byID[t.ID] = &t
	return &t
}

// stubIdentity pins EnsureEmployeeLink to a fixed employee or error.
type stubIdentity struct {
	emp   *domain.Employee
	err   error
	calls int
}

func (s *stubIdentity) EnsureEmployeeLink(_ context.Context, _ string) (*domain.Employee, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.emp, nil
}
