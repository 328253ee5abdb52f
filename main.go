package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/virtuwear/wardrobe-backend/api"
	"github.com/virtuwear/wardrobe-backend/config"
	"github.com/virtuwear/wardrobe-backend/imagetool"
	"github.com/virtuwear/wardrobe-backend/mailer"
	"github.com/virtuwear/wardrobe-backend/service"
	"github.com/virtuwear/wardrobe-backend/storage"
	"github.com/virtuwear/wardrobe-backend/store"
	"github.com/virtuwear/wardrobe-backend/sweeper"
)

func main() {
	config.LoadConfig()

	client, err := store.ConnectMongo(config.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	stores := store.NewMongo(client, config.MongoDBName)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := stores.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	objects, err := storage.NewS3Store(context.Background(), config.AWSRegion, config.AWSBucketName)
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	auth := service.NewAuth(stores.Users, []byte(config.JWTSecret), config.TokenTTL)
	catalog := service.NewCatalog(stores.Users, stores.Clothing, stores.Outfits)
	composer := service.NewComposer(stores.Users, stores.Clothing, stores.Outfits)

	mail := mailer.NewSendGrid(config.SendGridAPIKey, config.MailFromName, config.MailFromAddress)
	sweep := sweeper.New(stores.Users, stores.Clothing, mail, config.StaleAfterDays)
	if err := sweep.Start(config.SweepSchedule); err != nil {
		log.Fatalf("Failed to start staleness sweeper: %v", err)
	}
	defer sweep.Stop()

	server := &api.Server{
		Auth:          auth,
		Catalog:       catalog,
		Composer:      composer,
		Objects:       objects,
		RemoveBg:      imagetool.NewClient(config.RemoveBgAPIKey, config.RemoveBgURL),
		AllowedOrigin: config.CORSAllowedOrigin,
	}

	fmt.Printf("Server starting on port %s...\n", config.Port)
	if err := http.ListenAndServe(":"+config.Port, server.Routes()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
