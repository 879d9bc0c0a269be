package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"transit/cmd"
	httpin "transit/internal/adapters/in/http"
	"transit/internal/adapters/out/postgres/departurerepo"
	"transit/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:     goDotEnvVariable("JWT_SECRET"),
		RedisAddr:     goDotEnvVariable("REDIS_ADDR"),
		RedisPassword: goDotEnvVariable("REDIS_PASSWORD"),
		DocumentDir:   goDotEnvVariable("DOCUMENT_DIR"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&departurerepo.DepartureDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(app.CreateHTTPHandlers())
	server.RegisterRoutes(e, app.CreateAuthMiddleware())

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
