package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

const taskCollection = "tasks"

type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(taskCollection)}
}

type mongoTask struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Description       string             `bson:"description"`
	ResponsiblePerson string             `bson:"responsible_person"`
	Status            string             `bson:"status"`
	Priority          string             `bson:"priority"`
	AssigneeIDs       []string           `bson:"assignee_ids"`
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	doc := mongoTask{
		Name:              task.Name,
		Description:       task.Description,
		ResponsiblePerson: task.ResponsiblePerson,
		Status:            string(task.Status),
		Priority:          string(task.Priority),
		AssigneeIDs:       task.AssigneeIDs,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTaskName
		}
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoTaskRepository) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

// Update applies only the fields set in update; the assignee list, when
// present, replaces the stored set in a single statement.
func (r *MongoTaskRepository) Update(ctx context.Context, id string, update ports.TaskUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ResponsiblePerson != nil {
		set["responsible_person"] = *update.ResponsiblePerson
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Priority != nil {
		set["priority"] = string(*update.Priority)
	}
	if update.AssigneeIDs != nil {
		set["assignee_ids"] = update.AssigneeIDs
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTaskName
		}
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) findOne(ctx context.Context, filter bson.M) (*domain.Task, error) {
	var mt mongoTask
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	return &domain.Task{
		ID:                mt.ID.Hex(),
		Name:              mt.Name,
		Description:       mt.Description,
		ResponsiblePerson: mt.ResponsiblePerson,
		Status:            domain.TaskStatus(mt.Status),
		Priority:          domain.TaskPriority(mt.Priority),
		AssigneeIDs:       mt.AssigneeIDs,
	}, nil
}
