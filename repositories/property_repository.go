package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

var ErrPropertyNotFound = errors.New("property not found")

// ListQuery holds the equality filters the store evaluates itself. Empty
// fields are not filtered on.
type ListQuery struct {
	Status       models.PropertyStatus
	PropertyType models.PropertyType
	PriceType    models.PriceType
}

type PropertyRepository interface {
	// Create stores p under a new id and fills p.ID, p.CreatedAt and p.UpdatedAt
	// from the server.
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	// List returns matching listings newest first.
	List(ctx context.Context, q ListQuery) ([]models.Property, error)
	// Update sets the given top-level fields and refreshes updatedAt.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type propertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(collection *mongo.Collection) PropertyRepository {
	return &propertyRepository{collection: collection}
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) error {
	doc, err := toDocument(p, "_id", "createdAt", "updatedAt")
	if err != nil {
		return err
	}
	id := newID()

	// An upsert lets $currentDate stamp both timestamps with the server clock.
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": doc,
			"$currentDate": bson.M{"createdAt": true, "updatedAt": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*p = *stored
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context, q ListQuery) ([]models.Property, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.PropertyType != "" {
		filter["propertyType"] = q.PropertyType
	}
	if q.PriceType != "" {
		filter["priceType"] = q.PriceType
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(createdAtDesc))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	update := bson.M{"$currentDate": bson.M{"updatedAt": true}}
	if len(fields) > 0 {
		update["$set"] = bson.M(fields)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
