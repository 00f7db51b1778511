package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-tracker/config"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/task"
	"github.com/example/task-tracker/store"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

func main() {
	log.Println("=== Task Tracker ===")

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	if cfg.ErrorLogsOnly() {
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	// Create mono application with embedded NATS JetStream
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.JetStreamDir),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if cfg.StoreDriver == store.DriverBucket {
		// The framework calls SetPlugin("storage", ...) on the task module.
		storagePlugin, err := fsjetstream.New(fsjetstream.Config{
			Buckets: []fsjetstream.BucketConfig{
				{
					Name:        cfg.BucketName,
					Description: "Task collection document",
					MaxBytes:    64 * 1024 * 1024,
					Storage:     fsjetstream.FileStorage,
				},
			},
		})
		if err != nil {
			log.Fatalf("Failed to create storage plugin: %v", err)
		}
		if err := app.RegisterPlugin(storagePlugin, "storage"); err != nil {
			log.Fatalf("Failed to register storage plugin: %v", err)
		}
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(activity.NewModule(cfg.ActivityLimit, app.Logger()))               // Event consumer (subscribes to task events)
	app.Register(task.NewModule(cfg, app.Logger()))                                 // Core domain (owns the record store, emits events)
	app.Register(api.NewModule(cfg.HTTPAddr, cfg.CORSAllowedOrigins, app.Logger())) // Driving adapter (depends on task, activity)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Store driver: %s", cfg.StoreDriver)
	switch cfg.StoreDriver {
	case store.DriverFile:
		log.Printf("Data file: %s", cfg.DataFile)
	case store.DriverSQLite:
		log.Printf("SQLite database: %s", cfg.SQLitePath)
	case store.DriverBucket:
		log.Printf("Bucket: %s (JetStream dir %s)", cfg.BucketName, cfg.JetStreamDir)
	}
	log.Println("")
	log.Printf("REST API Endpoints (%s):", cfg.HTTPAddr)
	log.Println("  GET    /tasks              - List tasks (?status=, ?sort=)")
	log.Println("  POST   /tasks              - Create a task")
	log.Println("  GET    /tasks/stats        - Task counts by status")
	log.Println("  GET    /tasks/:id          - Get a task by ID")
	log.Println("  PUT    /tasks/:id          - Update a task")
	log.Println("  DELETE /tasks/:id          - Delete a task")
	log.Println("  GET    /activity           - Recent task activity")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
