// Command create-admin creates an admin account.
//
//	create-admin [email] [password] [name]
package main

import (
	"fmt"
	"os"

	"cinemarathi_backend/internal/app"
	"cinemarathi_backend/internal/config"
)

func main() {
	email := arg(1, app.DefaultAdminEmail)
	password := arg(2, app.DefaultAdminPassword)
	name := arg(3, app.DefaultAdminName)

	config.LoadConfig()
	db, err := app.OpenDatabase(config.AppConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	user, created, err := app.EnsureAdmin(db, email, password, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating admin:", err)
		os.Exit(1)
	}
	if !created {
		fmt.Printf("User with email %s already exists (id %d, type %s)\n", email, user.ID, user.UserType)
		return
	}

	fmt.Println("Admin user created successfully")
	fmt.Println("  ID:      ", user.ID)
	fmt.Println("  Email:   ", user.Email)
	fmt.Println("  Password:", password)
	fmt.Println("  Name:    ", user.Name)
}

func arg(i int, fallback string) string {
	if len(os.Args) > i && os.Args[i] != "" {
		return os.Args[i]
	}
	return fallback
}
