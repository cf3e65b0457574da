package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// EmployeeRepository implements ports.EmployeeRepository using MongoDB.
// It holds the database handle rather than a single collection because
// Delete touches both employees and tasks.
type EmployeeRepository struct {
	db *mongo.Database
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type mongoEmployee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Role       string             `bson:"role"`
	Department string             `bson:"department"`
	Phone      string             `bson:"phone,omitempty"`
	AvatarURL  string             `bson:"avatar_url,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (r *EmployeeRepository) coll() *mongo.Collection {
	return r.db.Collection(collectionEmployees)
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoEmployee{
		Name:       e.Name,
		Email:      e.Email,
		Role:       string(e.Role),
		Department: string(e.Department),
		Phone:      e.Phone,
		AvatarURL:  e.AvatarURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := r.coll().InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}

	created := *e
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) List(ctx context.Context, filter ports.ListEmployeesFilter) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"email": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Employee
	for cur.Next(ctx) {
		var me mongoEmployee
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		out = append(out, me.toDomain())
	}
	return out, cur.Err()
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := parseID(e.ID)
	if err != nil {
		return err
	}

	set := bson.M{
		"name":       e.Name,
		"email":      e.Email,
		"role":       string(e.Role),
		"department": string(e.Department),
		"phone":      e.Phone,
		"avatar_url": e.AvatarURL,
		"updated_at": time.Now().UTC(),
	}

	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmployeeExists
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete removes the employee and nulls out assigned_to on all of its
// tasks. Both writes run inside a transaction when the deployment supports
// one (replica set); on standalone servers it falls back to sequential
// writes, which leaves a small delete-then-reference window.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return r.deleteSequential(ctx, oid)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, r.cascadeDelete(sc, oid)
	})
	if err != nil {
		if isTransactionUnsupported(err) {
			return r.deleteSequential(ctx, oid)
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) deleteSequential(ctx context.Context, oid primitive.ObjectID) error {
	return r.cascadeDelete(ctx, oid)
}

func (r *EmployeeRepository) cascadeDelete(ctx context.Context, oid primitive.ObjectID) error {
	if _, err := r.db.Collection(collectionTasks).UpdateMany(ctx,
		bson.M{"assigned_to": oid},
		bson.M{"$set": bson.M{"assigned_to": nil, "updated_at": time.Now().UTC()}},
	); err != nil {
		return fmt.Errorf("unassign tasks: %w", err)
	}

	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// isTransactionUnsupported matches the server error raised when starting a
// transaction against a standalone deployment.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 || cmdErr.HasErrorLabel("TransientTransactionError") && cmdErr.Code == 263
	}
	return false
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEmployee
	if err := r.coll().FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return me.toDomain(), nil
}

func (me *mongoEmployee) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:         me.ID.Hex(),
		Name:       me.Name,
		Email:      me.Email,
		Role:       domain.EmployeeRole(me.Role),
		Department: domain.Department(me.Department),
		Phone:      me.Phone,
		AvatarURL:  me.AvatarURL,
		CreatedAt:  me.CreatedAt,
		UpdatedAt:  me.UpdatedAt,
	}
}
