package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/UShishir5355t/real-estate-mvp/utils"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// ConnectDB opens the MongoDB connection used by GetCollection.
func ConnectDB(ctx context.Context, uri, database string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return err
	}

	client = c
	db = c.Database(database)
	utils.Logger.WithField("database", database).Info("connected to MongoDB")
	return nil
}

func GetCollection(name string) *mongo.Collection {
	return db.Collection(name)
}

func DisconnectDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
