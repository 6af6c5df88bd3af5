package main

import (
	"flag"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheVinit/GFM-record-management-app-sub000/config"
	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

// Seeds the first admin account:
//
//	go run ./scripts -email admin@college.edu -name "Site Admin" -password secret123
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Admin", "full name")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: create_admin -email <email> -password <password> [-name <name>]")
	}

	cfg := config.Load()
	database.Connect(cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	p := models.Profile{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(*email)),
		Password:   string(hash),
		Role:       "admin",
		FullName:   *name,
		FirstLogin: true,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("admin %s created (id %s)", p.Email, p.ID)
}
