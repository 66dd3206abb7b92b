package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hafilati/hafilati-be/config"
	"github.com/hafilati/hafilati-be/controllers"
	"github.com/hafilati/hafilati-be/db/mysqldb"
	"github.com/hafilati/hafilati-be/routes"
	"github.com/hafilati/hafilati-be/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	db, err := mysqldb.GetDatabase(cfg)
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer db.Close()

	err = configureFirebaseCredentials()
	if err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	postImageBucket, err := services.NewStorageBucket(context.Background(), app, cfg.BucketName)
	if err != nil {
		log.Fatal("An error occurred while connecting to the post images bucket", err)
	}

	dashboardController, err := controllers.NewDashboardController(context.Background(), db)
	if err != nil {
		log.Fatal("An error occurred while initializing the dashboard controller", err)
	}

	scheduledPublisher := controllers.NewScheduledPublisher(context.Background(), db)
	defer scheduledPublisher.Stop()

	routes.AddHealthCheckRoutes(&r.RouterGroup, db)
	routes.AddAwarenessRoutes(&r.RouterGroup, db, authClient, postImageBucket, dashboardController)
	routes.AddDashboardRoutes(&r.RouterGroup, db, dashboardController, authClient)
	routes.AddSchoolRoutes(&r.RouterGroup, db, authClient)
	routes.AddGuardianRoutes(&r.RouterGroup, db, authClient)
	routes.AddStudentRoutes(&r.RouterGroup, db, authClient)
	routes.AddVanRoutes(&r.RouterGroup, db, authClient)
	routes.AddDriverRoutes(&r.RouterGroup, db, authClient)
	routes.AddUserRoutes(&r.RouterGroup, db, authClient)

	if err := r.Run(); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentails to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
