package config

import (
	"fmt"
	"log"
	"os"

	"planhub/internal/entity"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Printf("error load env %s", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		log.Printf("error connect to database %s", err)
	}

	fmt.Println("success connect to db")
	return db
}

// Migrate keeps the schema in sync with the entities. Order matters for
// foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.VerificationToken{},
		&entity.Profile{},
		&entity.Organization{},
		&entity.Member{},
		&entity.Project{},
		&entity.Sprint{},
		&entity.Task{},
		&entity.ActivityLog{},
	)
}
