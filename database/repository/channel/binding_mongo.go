package channelRepo

import (
	"context"
	"fmt"
	"time"

	"bookline/config"
	"bookline/database"
	"bookline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBindingRepo implements BindingRepository using MongoDB.
type MongoBindingRepo struct {
	coll *mongo.Collection
}

// NewMongoBindingRepo creates a new instance of BindingRepository using MongoDB.
func NewMongoBindingRepo() BindingRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("channel_bindings")
	repo := &MongoBindingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBindingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "botId", Value: 1}, {Key: "chatId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert stores or replaces a binding.
func (r *MongoBindingRepo) Upsert(ctx context.Context, binding *models.ChannelBinding) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"botId": binding.BotID, "chatId": binding.ChatID}
	update := bson.M{"$set": binding}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting channel binding: %w", err)
	}
	return nil
}

// Resolve looks up the chat-level binding first, then the bot-level one.
func (r *MongoBindingRepo) Resolve(ctx context.Context, botID string, chatID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var binding models.ChannelBinding
	err := r.coll.FindOne(ctx, bson.M{"botId": botID, "chatId": chatID}).Decode(&binding)
	if err == nil {
		return binding.BusinessID, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", fmt.Errorf("failed to resolve channel binding: %w", err)
	}

	err = r.coll.FindOne(ctx, bson.M{"botId": botID, "chatId": int64(0)}).Decode(&binding)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve channel binding: %w", err)
	}
	return binding.BusinessID, nil
}
