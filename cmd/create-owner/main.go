package main

import (
	"flag"
	"log"

	"github.com/shariarfaisal/snapshop-backend/internal/model"
	"github.com/shariarfaisal/snapshop-backend/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Creates (or resets the password of) a store owner account directly in the
// database, for bootstrapping an environment without going through the API.
func main() {
	name := flag.String("name", "Store Owner", "owner display name")
	email := flag.String("email", "", "owner email (required)")
	password := flag.String("password", "", "owner password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("❌ Both -email and -password are required")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	// 3. Create or update
	var user model.User
	err := db.Where("email = ?", *email).First(&user).Error
	switch {
	case err == nil:
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("❌ Failed to hash password: %v", err)
		}
		if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
			log.Fatalf("❌ Failed to update password in DB: %v", err)
		}
		log.Printf("✅ Password for %s has been reset", *email)
	case err == gorm.ErrRecordNotFound:
		user = model.User{Name: *name, Email: *email}
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("❌ Failed to hash password: %v", err)
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ Failed to create owner: %v", err)
		}
		log.Printf("✅ Owner created: %s (%s)", *email, user.ID)
	default:
		log.Fatalf("❌ Database error: %v", err)
	}
}
