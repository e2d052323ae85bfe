package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

func InitDB() {
	mongoURI := os.Getenv("MONGODB_URL")
	if mongoURI == "" {
		log.Fatal("❌ MONGODB_URL not found in environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(60 * time.Second).
		SetConnectTimeout(60 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ [InitDB] Error connecting to MongoDB: %v", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ [InitDB] MongoDB ping failed: %v", err)
	}

	log.Println("✅ [InitDB] MongoDB connected successfully")
	Client = client
}

// OpenCollection returns a collection from the videotube database.
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ [OpenCollection] MongoDB Client is not initialized. Call InitDB() first.")
	}
	return client.Database("videotube").Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the application relies on: username
// and email on users, and one relation row per (actor, target) for likes and
// subscriptions. Toggle handlers are check-then-act; these constraints are what
// keeps concurrent duplicate toggles from inserting two rows.
func EnsureIndexes(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	users := OpenCollection(client, "users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] users indexes: %v", err)
	}

	likes := OpenCollection(client, "likes")
	likeTargets := []string{"video", "comment", "tweet"}
	likeIndexes := make([]mongo.IndexModel, 0, len(likeTargets))
	for _, target := range likeTargets {
		likeIndexes = append(likeIndexes, mongo.IndexModel{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: target, Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{target: bson.M{"$exists": true}}),
		})
	}
	if _, err = likes.Indexes().CreateMany(ctx, likeIndexes); err != nil {
		log.Fatalf("❌ [EnsureIndexes] likes indexes: %v", err)
	}

	subscriptions := OpenCollection(client, "subscriptions")
	_, err = subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("❌ [EnsureIndexes] subscriptions index: %v", err)
	}

	log.Println("✅ [EnsureIndexes] indexes are in place")
}
