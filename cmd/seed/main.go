package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"avatarsurvey/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "avatarsurvey"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	surveyColl := client.Database(dbName).Collection("surveys")

	survey := model.Survey{
		Title: "B2B SaaS Customer Research Survey",
		PersonaConfig: model.PersonaConfig{
			Name:     "Jordan",
			AvatarID: "default-researcher-avatar",
			VoiceID:  "default-researcher-voice",
		},
		Questions: []model.Question{
			{
				ID:       "Q1",
				Type:     model.QuestionTypeOpen,
				Text:     "What does your company use our product for day to day?",
				Required: true,
				Probes: []string{
					"Which teams rely on it the most?",
					"Can you walk me through a typical workflow?",
				},
			},
			{
				ID:       "Q2",
				Type:     model.QuestionTypeNumeric,
				Text:     "On a scale from 1 to 10, how likely are you to recommend us to a colleague?",
				Required: true,
			},
			{
				ID:       "Q3",
				Type:     model.QuestionTypeChoice,
				Text:     "Which plan are you currently on?",
				Required: true,
				Choices:  []string{"Starter", "Growth", "Enterprise"},
			},
			{
				ID:       "Q4",
				Type:     model.QuestionTypeOpen,
				Text:     "If you could change one thing about the product, what would it be?",
				Required: false,
				Probes: []string{
					"What problem would that solve for you?",
				},
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := surveyColl.InsertOne(ctx, &survey)
	if err != nil {
		log.Fatalf("Failed to insert survey: %v", err)
	}

	fmt.Printf("Seeded survey %v (%s) with %d questions\n", result.InsertedID, survey.Title, len(survey.Questions))
}
