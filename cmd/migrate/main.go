package main

import (
	"context"
	"flag"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/repository"

	"github.com/sirupsen/logrus"
)

func main() {
	seed := flag.Bool("seed", false, "добавить типы оборудования по умолчанию, если таблица пуста")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to read config: %v", err)
	}

	repo, err := repository.New(cfg.Store)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	logrus.Info("Connected to database successfully")

	// Миграция всех моделей
	if err := repo.Migrate(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("Database migration completed successfully")

	if *seed {
		n, err := repo.SeedEquipmentTypes(context.Background(), repository.DefaultEquipmentTypes)
		if err != nil {
			logrus.Fatalf("Failed to seed equipment types: %v", err)
		}
		logrus.Infof("Seeded %d equipment types", n)
	}
}
