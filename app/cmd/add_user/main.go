package main

import (
	"flag"
	"fmt"
	"log"

	"meridian-schools/app/config"
	"meridian-schools/app/database"
	"meridian-schools/app/models"
	"meridian-schools/app/routes/auth"
)

func main() {
	tenantID := flag.String("tenant", "", "tenant id (UUID)")
	campusID := flag.String("campus", "", "campus id (UUID)")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", models.RoleAdmin, "role name")
	flag.Parse()

	if *tenantID == "" || *campusID == "" || *email == "" || *password == "" {
		log.Fatal("tenant, campus, email and password are required")
	}

	config.Load()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	user := &models.User{
		TenantID:  *tenantID,
		CampusID:  *campusID,
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		log.Fatal("Error creating user: ", err)
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
