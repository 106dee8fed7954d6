package app

import (
	"log"

	"github.com/Mirap9615/owowclub-sub000/internal/config"
	"github.com/Mirap9615/owowclub-sub000/internal/database"
	"github.com/Mirap9615/owowclub-sub000/internal/mailer"
	"github.com/Mirap9615/owowclub-sub000/internal/repository"
	"github.com/Mirap9615/owowclub-sub000/internal/service"
	"github.com/Mirap9615/owowclub-sub000/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	mail := mailer.NewSMTPMailer(cfg)

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}
