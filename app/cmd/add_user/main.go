package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/config"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/database"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/routes/auth"
)

// Seeds a chapter user and assigns them a role. Used to bootstrap the first
// admin account after migrations.
func main() {
	email := flag.String("email", "", "email address (required)")
	password := flag.String("password", "", "initial password (required)")
	firstName := flag.String("first-name", "Chapter", "first name")
	lastName := flag.String("last-name", "Admin", "last name")
	chapter := flag.String("chapter", "", "chapter name")
	role := flag.String("role", "admin", "role to assign")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		Chapter:   *chapter,
	}
	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	roleID, err := database.EnsureRole(db, *role)
	if err != nil {
		fmt.Printf("Error ensuring role %q: %v\n", *role, err)
		os.Exit(1)
	}
	if err := database.AssignRole(db, user.ID, roleID); err != nil {
		fmt.Printf("Error assigning role: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created: %s %s (%s) with role %s\n", user.FirstName, user.LastName, user.Email, *role)
}
