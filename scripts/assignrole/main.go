// scripts/assignrole/main.go
//
// Assigns a role to an existing user account.
//
// Usage:
//
//	go run scripts/assignrole/main.go -email staff@example.com -role staff
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/your-org/cafe-backend/internal/config"
	"github.com/your-org/cafe-backend/internal/domain/user"
	"github.com/your-org/cafe-backend/internal/infrastructure/database/postgres"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", "", "role to assign (customer, staff or admin)")
	flag.Parse()

	if *email == "" || *role == "" {
		fmt.Fprintln(os.Stderr, "usage: assignrole -email <email> -role <customer|staff|admin>")
		os.Exit(2)
	}

	if !user.ValidRole(*role) {
		log.Fatalf("Invalid role %q: must be customer, staff or admin", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userService := user.NewService(db.GetDB(), cfg)
	updated, err := userService.SetRoleByEmail(*email, *role)
	if err != nil {
		log.Fatalf("Failed to assign role: %v", err)
	}

	log.Printf("✅ User %s (ID %d) is now %s", updated.Email, updated.ID, updated.Role)
}
