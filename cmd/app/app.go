package main

import (
	"os"

	"github.com/DRSN-tech/price-compare/internal/app"
	config "github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title						Price Compare API
//	@version					1.0
//	@description				Сравнение цен на продукты в магазинах Великобритании
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	envErr := godotenv.Load()

	log := logger.NewSlogLogger()
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warnf("failed to read .env: %v", envErr)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
