package database

import (
	"fmt"
	"log"
	"time"

	"ctfapi/config"
	"ctfapi/models"
	"ctfapi/utils"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultAdminEmail = "admin@admin.com"
var DefaultPassword = "admin"

// InitDB initializes the database connection, migrates the models and populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get underlying sql.DB: ", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = DB.AutoMigrate(
		&models.User{},
		&models.ChallengeConfig{},
		&models.Challenge{},
		&models.Progress{},
		&models.Submission{},
		&models.Report{},
		&models.PasswordReset{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Populate populates the database with default values if needed
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser == 0 {
		// Create default admin with a password either from the .env file or the DefaultPassword constant
		password := DefaultPassword
		if config.DefaultPassword != "" {
			password = config.DefaultPassword
		}

		password, err := utils.HashPassword(password)
		if err != nil {
			panic(err)
		}

		admin := models.User{
			Email:      DefaultAdminEmail,
			Name:       "Admin",
			Password:   password,
			IsAdmin:    true,
			IsApproved: true,
		}
		DB.Create(&admin)
		log.Println("Default admin user created")
	}

	// The singleton challenge config row is created lazily here
	var countConfig int64
	DB.Model(&models.ChallengeConfig{}).Count(&countConfig)
	if countConfig == 0 {
		cfg := models.ChallengeConfig{
			TotalTimeLimitMinutes: 60,
			MaxLevels:             5,
			ChallengeActive:       true,
			RegistrationOpen:      true,
			AllowHints:            true,
			MaxAttempts:           -1,
		}
		DB.Create(&cfg)
		log.Println("Default challenge config created")
	}

	if config.SeedDemo == "true" {
		seedDemoData()
	}
}

// seedDemoData loads a small demo catalog and a handful of fake approved users
func seedDemoData() {
	var countChallenge int64
	DB.Model(&models.Challenge{}).Count(&countChallenge)
	if countChallenge == 0 {
		difficulties := []string{"EASY", "EASY", "MEDIUM", "MEDIUM", "HARD"}
		for i, difficulty := range difficulties {
			challenge := models.Challenge{
				Level:       i + 1,
				Title:       fmt.Sprintf("Level %d: %s", i+1, gofakeit.HackerPhrase()),
				Description: gofakeit.Sentence(12),
				Hint:        gofakeit.Sentence(8),
				Flag:        fmt.Sprintf("CTF{%s}", gofakeit.UUID()),
				IsActive:    true,
				Difficulty:  difficulty,
				Category:    gofakeit.RandomString([]string{"web", "crypto", "forensics", "misc"}),
				Points:      (i + 1) * 100,
			}
			DB.Create(&challenge)
		}
		log.Println("Demo challenge catalog seeded")
	}

	var countUser int64
	DB.Model(&models.User{}).Where("is_admin = false").Count(&countUser)
	if countUser == 0 {
		for i := 0; i < 5; i++ {
			password, err := utils.CreateRandomPassword()
			if err != nil {
				continue
			}
			user := models.User{
				Email:      gofakeit.Email(),
				Name:       gofakeit.Name(),
				Password:   password,
				IsApproved: true,
			}
			DB.Create(&user)
		}
		log.Println("Demo users seeded")
	}
}
