package database

import (
	"fmt"
	"log"

	"judgeapi/config"
	"judgeapi/models"
	"judgeapi/utils"

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

	err = DB.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.JudgingGroup{},
		&models.Judge{},
		&models.Criterion{},
		&models.GroupSubmission{},
		&models.Score{},
		&models.SubmissionStatus{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	NormalizeAccessPolicies(DB)
	Populate()
}

// Populate populates the database with default values if needed
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser != 0 {
		return
	}

	// Create default admin with a hashed password either from the .env file or the DefaultPassword constant
	password := DefaultPassword
	if config.DefaultPassword != "" {
		password = config.DefaultPassword
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}

	user := models.User{
		Email:    DefaultAdminEmail,
		Name:     "Admin",
		Password: hashed,
		IsAdmin:  true,
	}
	DB.Create(&user)
	log.Println("Default admin user created")
}
