package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/Ramsey-B/fern/config"
	contentvaluerepo "github.com/Ramsey-B/fern/internal/repositories/contentvalue"
	fieldrepo "github.com/Ramsey-B/fern/internal/repositories/field"
	schemarepo "github.com/Ramsey-B/fern/internal/repositories/schema"
	fieldsvc "github.com/Ramsey-B/fern/internal/services/field"
	formsvc "github.com/Ramsey-B/fern/internal/services/form"
	schemasvc "github.com/Ramsey-B/fern/internal/services/schema"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/fieldtypes"
	"github.com/Ramsey-B/fern/pkg/inspector"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/mapper"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/registry"
	"github.com/Ramsey-B/fern/pkg/resources"
	fieldroutes "github.com/Ramsey-B/fern/pkg/routes/field"
	fieldtyperoutes "github.com/Ramsey-B/fern/pkg/routes/fieldtypes"
	formroutes "github.com/Ramsey-B/fern/pkg/routes/form"
	schemaroutes "github.com/Ramsey-B/fern/pkg/routes/schema"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/Ramsey-B/fern/pkg/tracing/exporters"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	logger.WithField("app", cfg.AppName).Info("Starting fern API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing := configureTracing(ctx, cfg, logger)
	defer shutdownTracing()

	app := &application{cfg: cfg, logger: logger}

	boot := startup.NewStartup(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(&postgresDependency{app: app})
	boot.AddDependency(&redisDependency{app: app})
	boot.AddDependency(&kafkaDependency{app: app})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}

	if err := app.wire(); err != nil {
		logger.WithError(err).Error("Failed to wire dependencies")
		os.Exit(1)
	}

	e, err := app.newServer()
	if err != nil {
		logger.WithError(err).Error("Failed to build HTTP server")
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(address); err != nil {
			logger.WithError(err).Info("HTTP server stopped")
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		logger.Info("Shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down HTTP server cleanly")
	}
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to stop dependencies cleanly")
	}
	logger.Info("Shutdown complete")
}

// application carries the stateful infrastructure built during startup so the
// dependency wiring step can assemble services on top of it.
type application struct {
	cfg    config.Config
	logger ectologger.Logger

	sqlDB        *sqlx.DB
	db           database.DB
	optionsCache *cache.OptionsCache
	producer     *kafka.Producer
}

// wire assembles the object graph and registers the request-scoped services in
// the DI container consumed by route handlers.
func (a *application) wire() error {
	resourceRegistry := resources.NewRegistry()
	optionsResolver := fieldtypes.NewOptionsResolver(resourceRegistry, a.optionsCache, a.logger)

	fieldRegistry := registry.New(registry.Deps{
		Options: optionsResolver,
	})

	insp := inspector.New(fieldRegistry)
	if err := insp.Verify(); err != nil {
		return err
	}

	fieldRepository := fieldrepo.NewRepository(a.db, a.logger)
	schemaRepository := schemarepo.NewRepository(a.db, a.logger)
	valueRepository := contentvaluerepo.NewRepository(a.db, a.logger)

	fieldService := fieldsvc.NewService(fieldRepository, fieldRegistry, a.logger)
	schemaService := schemasvc.NewService(schemaRepository, fieldRepository, a.logger)

	formMapper := mapper.New(fieldRegistry, a.logger)
	persister := mapper.NewPersister(valueRepository, a.logger)

	var publisher formsvc.EventPublisher
	if a.producer != nil {
		publisher = a.producer
	}
	formService := formsvc.NewService(fieldService, schemaService, valueRepository, fieldRegistry, formMapper, persister, publisher, a.logger)

	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return err
	}

	if err := ectoinject.RegisterInstance[ectologger.Logger](container, a.logger); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[database.DB](container, a.db); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[fieldsvc.FieldService](container, fieldService); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[schemasvc.SchemaService](container, schemaService); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[formsvc.FormService](container, formService); err != nil {
		return err
	}
	return ectoinject.RegisterInstance[*inspector.Inspector](container, insp)
}

func (a *application) newServer() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = false

	e.Server.ReadTimeout = time.Duration(a.cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(a.cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(a.cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(a.cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = a.cfg.MaxHeaderBytes

	e.HTTPErrorHandler = middleware.Error(a.logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: a.cfg.AllowOrigins,
		AllowMethods: a.cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(a.cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(a.logger))

	if a.cfg.AuthEnabled {
		auth, err := middleware.Authentication(a.logger, a.cfg.AuthIssuerURL, a.cfg.AuthClientID)
		if err != nil {
			return nil, err
		}
		e.Use(auth)
	} else {
		e.Use(middleware.TestAuth())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e.POST("/fields", fieldroutes.CreateField)
	e.PUT("/fields/:ulid", fieldroutes.UpdateField)
	e.GET("/fields/:ulid", fieldroutes.GetField)
	e.DELETE("/fields/:ulid", fieldroutes.DeleteField)
	e.GET("/fields/:model_type/:model_key", fieldroutes.ListFields)
	e.PUT("/fields/reorder", fieldroutes.ReorderFields)

	e.POST("/schemas", schemaroutes.CreateSchema)
	e.PUT("/schemas/:ulid", schemaroutes.UpdateSchema)
	e.DELETE("/schemas/:ulid", schemaroutes.DeleteSchema)
	e.GET("/schemas/:model_type/:model_key", schemaroutes.ListSchemas)
	e.PUT("/schemas/reorder", schemaroutes.ReorderSchemas)

	e.GET("/field-types", fieldtyperoutes.ListFieldTypes)
	e.GET("/field-types/:key", fieldtyperoutes.GetFieldType)

	e.GET("/forms/:model_type/:model_key/:record_key", formroutes.BuildForm)
	e.POST("/forms/:model_type/:model_key/:record_key", formroutes.SubmitForm)

	return e, nil
}

// postgresDependency connects to postgres and runs migrations.
type postgresDependency struct {
	app *application
}

func (d *postgresDependency) GetName() string {
	return "postgres"
}

func (d *postgresDependency) DependsOn() []string {
	return nil
}

func (d *postgresDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, cfg.DatabaseDriver, dsn)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	migrations := database.NewMigrationService(d.app.logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})
	if err := migrations.Migrate(cfg.DatabaseName, driver); err != nil {
		return err
	}

	d.app.sqlDB = db
	d.app.db = database.NewDatabaseInstance(db, d.app.logger)
	return nil
}

func (d *postgresDependency) Stop(ctx context.Context) error {
	if d.app.sqlDB == nil {
		return nil
	}
	return d.app.sqlDB.Close()
}

// redisDependency builds the options cache. Redis being unavailable is not
// fatal; relationship option lookups just skip the cache.
type redisDependency struct {
	app *application
}

func (d *redisDependency) GetName() string {
	return "redis"
}

func (d *redisDependency) DependsOn() []string {
	return nil
}

func (d *redisDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg
	optionsCache, err := cache.NewOptionsCache(cache.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      time.Duration(cfg.OptionsCacheTTLSeconds) * time.Second,
	}, d.app.logger)
	if err != nil {
		d.app.logger.WithError(err).Warn("Options cache unavailable, continuing without it")
		return nil
	}

	d.app.optionsCache = optionsCache
	return nil
}

func (d *redisDependency) Stop(ctx context.Context) error {
	if d.app.optionsCache == nil {
		return nil
	}
	return d.app.optionsCache.Close()
}

// kafkaDependency builds the content-update event producer when enabled.
type kafkaDependency struct {
	app *application
}

func (d *kafkaDependency) GetName() string {
	return "kafka"
}

func (d *kafkaDependency) DependsOn() []string {
	return nil
}

func (d *kafkaDependency) Start(ctx context.Context) error {
	cfg := d.app.cfg
	if !cfg.KafkaProducerEnabled {
		d.app.logger.Info("Kafka producer disabled")
		return nil
	}

	producerConfig := kafka.DefaultProducerConfig()
	producerConfig.Brokers = cfg.KafkaBrokers
	producerConfig.Topic = cfg.KafkaContentTopic
	producerConfig.BatchSize = cfg.KafkaBatchSize
	producerConfig.BatchTimeout = time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond
	producerConfig.RequiredAcks = cfg.KafkaRequiredAcks
	producerConfig.Compression = cfg.KafkaCompression

	producer, err := kafka.NewProducer(producerConfig, d.app.logger)
	if err != nil {
		return err
	}

	d.app.producer = producer
	return nil
}

func (d *kafkaDependency) Stop(ctx context.Context) error {
	if d.app.producer == nil {
		return nil
	}
	return d.app.producer.Close()
}

// newLogger builds the process logger. Log lines are JSON, pretty-printed when
// PRETTY_LOGS is set for local development.
func newLogger(cfg config.Config) ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		var line []byte
		if cfg.PrettyLogs {
			line, _ = json.MarshalIndent(msg, "", "  ")
		} else {
			line, _ = json.Marshal(msg)
		}
		fmt.Fprintln(os.Stdout, string(line))
	})
}

// configureTracing installs the tracer provider and returns its shutdown func.
func configureTracing(ctx context.Context, cfg config.Config, logger ectologger.Logger) func() {
	if !cfg.TracingEnabled {
		return func() {}
	}

	var exporter sdktrace.SpanExporter
	if strings.EqualFold(cfg.TracingExporter, "otlp") {
		otlpExporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
			Endpoint: cfg.OTLPEndpoint,
			Protocol: cfg.OTLPProtocol,
			Insecure: cfg.OTLPInsecure,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			logger.WithError(err).Warn("OTLP exporter unavailable, falling back to console")
			exporter = &exporters.ConsoleExporter{}
		} else {
			exporter = otlpExporter
		}
	} else {
		exporter = &exporters.ConsoleExporter{}
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	tracing.SetTracer(provider.Tracer(cfg.AppName))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to shut down tracer provider")
		}
	}
}
