package main

import (
	"log"
	"os"
	"time"

	"ai-blogcms-be/internal/model"
	"ai-blogcms-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedAdmin(db)
	seedAuthorWithPost(db)

	log.Println("✅ Seeding completed.")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Printf("Admin %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash admin password: %v", err)
	}

	admin := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Site Admin",
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error: Failed to seed admin: %v", err)
	}
	log.Printf("Seeded admin user %s", email)
}

func seedAuthorWithPost(db *gorm.DB) {
	var count int64
	db.Model(&model.BlogAuthor{}).Count(&count)
	if count > 0 {
		log.Println("Authors already exist, skipping author seed")
		return
	}

	author := model.BlogAuthor{
		Id:          uuid.New(),
		Name:        "Editorial Team",
		Title:       "Staff Writer",
		Bio:         "Writes and curates articles for the blog.",
		SocialLinks: datatypes.JSON([]byte(`{}`)),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&author).Error; err != nil {
		log.Fatalf("Error: Failed to seed author: %v", err)
	}

	now := time.Now()
	post := model.BlogPost{
		Id:          uuid.New(),
		Title:       "Welcome to the Blog",
		Slug:        "welcome-to-the-blog",
		Content:     "# Welcome to the Blog\n\nThis starter post confirms the blog is wired up end to end.\n\n## What's next\n\nOpen the admin editor, ask the assistant for changes, and approve the diff.",
		Excerpt:     "This starter post confirms the blog is wired up end to end.",
		IsPublished: true,
		PublishedAt: &now,
		AuthorId:    author.Id,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&post).Error; err != nil {
		log.Fatalf("Error: Failed to seed post: %v", err)
	}
	log.Printf("Seeded author %q with post %q", author.Name, post.Slug)
}
