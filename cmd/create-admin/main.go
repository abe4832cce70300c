// Command create-admin seeds a login account, typically the first ADMIN.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
	"github.com/noah-isme/tk-admin-api/internal/service"
	"github.com/noah-isme/tk-admin-api/pkg/config"
	"github.com/noah-isme/tk-admin-api/pkg/database"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
	"github.com/noah-isme/tk-admin-api/pkg/logger"
)

func main() {
	name := flag.String("name", "Administrator", "display name")
	email := flag.StringP("email", "e", "", "login email (required)")
	password := flag.StringP("password", "p", os.Getenv("ADMIN_PASSWORD"), "password, defaults to $ADMIN_PASSWORD")
	role := flag.String("role", string(models.RoleAdmin), "ADMIN or TEACHER")
	migrate := flag.Bool("migrate", false, "apply database migrations first")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *migrate || cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	users := service.NewUserService(repository.NewUserRepository(db), validator.New(), logr)
	user, err := users.Create(ctx, service.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     models.UserRole(*role),
	}, "", models.LoginRequest{UserAgent: "create-admin"})
	if err != nil {
		if errors.Is(err, appErrors.ErrConflict) {
			fmt.Fprintf(os.Stderr, "user %s already exists\n", *email)
			os.Exit(1)
		}
		logr.Fatal("failed to create user", zap.Error(err))
	}
	fmt.Printf("created %s %s (%s)\n", user.Role, user.Email, user.ID)
}
