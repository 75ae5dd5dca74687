package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/handler"
	apimiddleware "github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/middleware"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/api/router"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/adapter/repository"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/firebase"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/policy"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/storage"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/websocket"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}
	authClient := firebase.NewAuthClient(fbAuth)

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		time.Duration(cfg.SignedURLExpiry)*time.Second,
		cfg.CredentialsPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	adminPolicy := policy.NewAdminPolicy(cfg.AdminPolicyPath)

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	threadRepo := repository.NewFirestoreThreadRepository(firestoreClient)
	saveRepo := repository.NewFirestoreSaveRepository(firestoreClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	threadUseCase := usecase.NewThreadUseCase(threadRepo, userRepo, wsManager)
	listingUseCase := usecase.NewListingUseCase(listingRepo, threadRepo)
	saveUseCase := usecase.NewSaveUseCase(saveRepo, listingRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	adminUseCase := usecase.NewAdminUseCase(listingRepo)

	handler.Setup(threadUseCase, listingUseCase, saveUseCase, userUseCase, adminUseCase, adminPolicy)
	handler.SetupFileHandler(storageClient)
	handler.SetupWebSocketHandler(wsManager)
	handler.SetupHealthHandler(adminPolicy)
	handler.SetupDevTokenHandler(authClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(adminPolicy)

	router.Setup(e, authMiddleware, adminMiddleware)

	if cfg.Environment == "development" {
		router.SetupDevRouter(e)
	}

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
