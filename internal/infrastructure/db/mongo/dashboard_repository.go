package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// DashboardRepository implements the aggregation queries backing the
// dashboard. All queries are global; the dashboard is not role-scoped.
type DashboardRepository struct {
	db *mongo.Database
}

func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Overview(ctx context.Context) (*ports.Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	employees := r.db.Collection(collectionEmployees)
	tasks := r.db.Collection(collectionTasks)

	totalEmployees, err := employees.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}
	totalTasks, err := tasks.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	completed, err := tasks.CountDocuments(ctx, bson.M{"status": string(domain.StatusCompleted)})
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	pending, err := tasks.CountDocuments(ctx, bson.M{
		"status": bson.M{"$in": bson.A{string(domain.StatusToDo), string(domain.StatusInProgress)}},
	})
	if err != nil {
		return nil, fmt.Errorf("count pending tasks: %w", err)
	}

	return &ports.Overview{
		TotalEmployees: totalEmployees,
		TotalTasks:     totalTasks,
		CompletedTasks: completed,
		PendingTasks:   pending,
	}, nil
}

func (r *DashboardRepository) TasksByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	buckets, err := r.groupTasksBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	out := make([]ports.StatusCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ports.StatusCount{Status: domain.TaskStatus(b.Key), Count: b.Count})
	}
	return out, nil
}

func (r *DashboardRepository) TasksByPriority(ctx context.Context) ([]ports.PriorityCount, error) {
	buckets, err := r.groupTasksBy(ctx, "priority")
	if err != nil {
		return nil, err
	}
	out := make([]ports.PriorityCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ports.PriorityCount{Priority: domain.TaskPriority(b.Key), Count: b.Count})
	}
	return out, nil
}

type groupBucket struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *DashboardRepository) groupTasksBy(ctx context.Context, field string) ([]groupBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.db.Collection(collectionTasks).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group tasks by %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var buckets []groupBucket
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode %s buckets: %w", field, err)
	}
	return buckets, nil
}

// RecentTasks returns the newest tasks with their assignees resolved in a
// single follow-up query.
func (r *DashboardRepository) RecentTasks(ctx context.Context, limit int) ([]*ports.TaskDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.db.Collection(collectionTasks).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recent tasks: %w", err)
	}

	assigneeIDs := make([]primitive.ObjectID, 0, len(docs))
	seen := make(map[primitive.ObjectID]struct{})
	for _, d := range docs {
		if d.AssignedTo == nil {
			continue
		}
		if _, ok := seen[*d.AssignedTo]; ok {
			continue
		}
		seen[*d.AssignedTo] = struct{}{}
		assigneeIDs = append(assigneeIDs, *d.AssignedTo)
	}

	summaries, err := r.assigneeSummaries(ctx, assigneeIDs)
	if err != nil {
		return nil, err
	}

	details := make([]*ports.TaskDetail, 0, len(docs))
	for i := range docs {
		d := &ports.TaskDetail{Task: docs[i].toDomain()}
		if docs[i].AssignedTo != nil {
			d.Assignee = summaries[*docs[i].AssignedTo]
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *DashboardRepository) assigneeSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*ports.EmployeeSummary, error) {
	out := make(map[primitive.ObjectID]*ports.EmployeeSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.db.Collection(collectionEmployees).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("load assignees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEmployee
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode assignees: %w", err)
	}
	for _, e := range docs {
		out[e.ID] = &ports.EmployeeSummary{
			ID:         e.ID.Hex(),
			Name:       e.Name,
			Email:      e.Email,
			Role:       domain.EmployeeRole(e.Role),
			Department: domain.Department(e.Department),
			AvatarURL:  e.AvatarURL,
		}
	}
	return out, nil
}

// Workload aggregates assigned-task counts per employee via $group +
// $lookup, then unions in employees with no assigned tasks.
func (r *DashboardRepository) Workload(ctx context.Context) ([]ports.EmployeeWorkload, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"assigned_to": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$assigned_to",
			"taskCount": bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionEmployees,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "employee",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$employee",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.M{"taskCount": -1}}},
	}

	cur, err := r.db.Collection(collectionTasks).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("workload aggregate: %w", err)
	}
	defer cur.Close(ctx)

	type workloadRow struct {
		ID        primitive.ObjectID `bson:"_id"`
		TaskCount int64              `bson:"taskCount"`
		Employee  *mongoEmployee     `bson:"employee"`
	}
	var rows []workloadRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode workload: %w", err)
	}

	out := make([]ports.EmployeeWorkload, 0, len(rows))
	withTasks := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		withTasks = append(withTasks, row.ID)
		w := ports.EmployeeWorkload{ID: row.ID.Hex(), TaskCount: row.TaskCount}
		if row.Employee != nil {
			w.Name = row.Employee.Name
			w.Email = row.Employee.Email
			w.Role = domain.EmployeeRole(row.Employee.Role)
			w.Department = domain.Department(row.Employee.Department)
			w.AvatarURL = row.Employee.AvatarURL
		}
		out = append(out, w)
	}

	// Employees with zero assigned tasks still appear in the report.
	idle, err := r.db.Collection(collectionEmployees).Find(ctx, bson.M{"_id": bson.M{"$nin": withTasks}})
	if err != nil {
		return nil, fmt.Errorf("idle employees: %w", err)
	}
	defer idle.Close(ctx)

	var idleDocs []mongoEmployee
	if err := idle.All(ctx, &idleDocs); err != nil {
		return nil, fmt.Errorf("decode idle employees: %w", err)
	}
	for _, e := range idleDocs {
		out = append(out, ports.EmployeeWorkload{
			ID:         e.ID.Hex(),
			Name:       e.Name,
			Email:      e.Email,
			Role:       domain.EmployeeRole(e.Role),
			Department: domain.Department(e.Department),
			AvatarURL:  e.AvatarURL,
			TaskCount:  0,
		})
	}
	return out, nil
}
