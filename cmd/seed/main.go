package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthmon/internal/config"
	"healthmon/internal/db"
	"healthmon/internal/model"
	"healthmon/internal/repository"
)

const (
	seedUsername = "testuser"
	seedPassword = "password"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.HealthMetric{}, &model.Goal{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	if existing, err := userRepo.FindByUsername(ctx, seedUsername); err == nil && existing != nil {
		log.Printf("User %q already exists (id=%d), nothing to do", seedUsername, existing.ID)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user := &model.User{Username: seedUsername, PasswordHash: string(hashed)}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %q with password %q", seedUsername, seedPassword)

	metricRepo := repository.NewMetricRepository(gormDB)
	today := model.Day(time.Now())
	for i := 6; i >= 0; i-- {
		metric := &model.HealthMetric{
			UserID:    user.ID,
			Date:      today.AddDate(0, 0, -i),
			Steps:     4000 + i*800,
			Calories:  1800 + float64(i)*120,
			HeartRate: 62 + i,
		}
		if err := metricRepo.Create(ctx, metric); err != nil {
			log.Fatalf("Failed to create metric: %v", err)
		}
	}
	log.Println("Created a week of sample metrics")

	goalRepo := repository.NewGoalRepository(gormDB)
	goals := []*model.Goal{
		{UserID: user.ID, MetricType: model.MetricTypeSteps, TargetValue: 8000},
		{UserID: user.ID, MetricType: model.MetricTypeCalories, TargetValue: 2200},
	}
	for _, goal := range goals {
		if err := goalRepo.Upsert(ctx, goal); err != nil {
			log.Fatalf("Failed to upsert goal: %v", err)
		}
	}
	log.Println("Created steps and calories goals")
	log.Println("Database initialized and seeded!")
}
