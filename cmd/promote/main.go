package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"coursebay/contexts/identity-access/identity-service/adapters/postgres"
	"coursebay/contexts/identity-access/identity-service/application"
	"coursebay/contexts/identity-access/identity-service/domain/entities"
	"coursebay/internal/platform/config"
	"coursebay/internal/platform/db"
)

// One-off role promotion utility.
// Usage:
//
//	promote -list
//	promote -email learner@example.com -role admin
func main() {
	email := flag.String("email", "", "email of the account to promote")
	role := flag.String("role", string(entities.RoleAdmin), "target role (learner, instructor, admin)")
	list := flag.Bool("list", false, "list directory accounts and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer func() {
		_ = pg.Close()
	}()

	ctx := context.Background()
	repo := postgresadapter.NewRepository(pg.DB, nil)

	if *list {
		users, err := repo.List(ctx)
		if err != nil {
			log.Fatalf("list users: %v", err)
		}
		for _, user := range users {
			fmt.Printf("%s\t%s\t%s\n", user.UserID, user.Email, user.Role)
		}
		return
	}

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	identity, err := repo.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("find %s: %v", *email, err)
	}

	promote := application.PromoteRoleUseCase{
		Users: repo,
		Clock: postgresadapter.SystemClock{},
	}
	updated, err := promote.Execute(ctx, application.PromoteRoleCommand{
		UserID: identity.UserID,
		Role:   entities.Role(*role),
	})
	if err != nil {
		log.Fatalf("promote %s: %v", *email, err)
	}
	fmt.Printf("%s is now %s\n", updated.Email, updated.Role)
}
