package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error
	Delete(ctx context.Context, id string) error
}

type inquiryRepository struct {
	collection *mongo.Collection
}

func NewInquiryRepository(collection *mongo.Collection) InquiryRepository {
	return &inquiryRepository{collection: collection}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	doc, err := toDocument(inquiry, "_id", "createdAt")
	if err != nil {
		return err
	}
	id := newID()

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": doc,
			"$currentDate": bson.M{"createdAt": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	var stored models.Inquiry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stored); err != nil {
		return err
	}
	*inquiry = stored
	return nil
}

func (r *inquiryRepository) List(ctx context.Context) ([]models.Inquiry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(createdAtDesc))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	inquiries := []models.Inquiry{}
	if err := cursor.All(ctx, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrInquiryNotFound
	}
	return nil
}
