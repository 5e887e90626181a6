package app

import (
	"fmt"
	"log"
	"os"

	"github.com/NBNEORIGIN/signmaker/app/controller"
	"github.com/NBNEORIGIN/signmaker/app/router"
	"github.com/NBNEORIGIN/signmaker/db"
	"github.com/NBNEORIGIN/signmaker/jobs"
	"github.com/NBNEORIGIN/signmaker/render"
	"github.com/NBNEORIGIN/signmaker/repository"
	"github.com/NBNEORIGIN/signmaker/service"
)

// Shutdown holds the resources Initialize started, so main can stop them
// in order on exit.
type Shutdown struct {
	Rasterizer *render.Rasterizer
	Jobs       *jobs.Manager
}

// Initialize initializes the application
func Initialize() (*Shutdown, error) {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	assetsDir := os.Getenv("ASSETS_DIR")
	if assetsDir == "" {
		assetsDir = "assets"
	}
	iconsDir := os.Getenv("ICONS_DIR")
	if iconsDir == "" {
		iconsDir = "icons"
	}

	// Rasterizer starts its browser lazily on first render
	rasterizer := render.NewRasterizer()

	// Core services
	imageService := service.NewImageService(assetsDir, iconsDir, rasterizer)
	exportService := service.NewExportService(imageService)

	// Drive is optional: without credentials the app still renders and
	// exports locally, it just cannot upload or sync icons.
	var driveService service.DriveServiceInterface
	var iconSyncService service.IconSyncServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return nil, err
		}
		driveService = ds
		iconSyncService = service.NewIconSyncService(ds, iconsDir)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive upload and icon sync disabled")
	}

	// Background job manager
	jobManager := jobs.NewManager()

	// Initialize repository
	productRepo := repository.NewProductRepository()

	// Create controllers
	controllers := &router.Controllers{
		Product: controller.NewProductController(productRepo),
		Image:   controller.NewImageController(productRepo, imageService, driveService, jobManager, os.Getenv("DRIVE_IMAGES_FOLDER_ID")),
		Export:  controller.NewExportController(productRepo, exportService),
		Job:     controller.NewJobController(jobManager),
		Icon:    controller.NewIconController(iconSyncService, jobManager, os.Getenv("DRIVE_ICONS_FOLDER_ID")),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return &Shutdown{Rasterizer: rasterizer, Jobs: jobManager}, nil
}
