// Command check-admin lists admin accounts and whether they can sign in.
package main

import (
	"fmt"
	"os"

	"cinemarathi_backend/internal/app"
	"cinemarathi_backend/internal/config"
	"cinemarathi_backend/internal/repositories"
)

func main() {
	config.LoadConfig()
	db, err := app.OpenDatabase(config.AppConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	admins, err := repositories.NewUserRepository().ListAdmins(db)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error listing admins:", err)
		os.Exit(1)
	}

	if len(admins) == 0 {
		fmt.Println("No admin users found. Run create-admin to add one.")
		return
	}

	fmt.Printf("Found %d admin user(s):\n", len(admins))
	for _, a := range admins {
		status := "can log in"
		if !a.IsVerified {
			status = "NOT verified, cannot log in"
		}
		fmt.Printf("  #%d %s <%s>: %s\n", a.ID, a.Name, a.Email, status)
	}
}
