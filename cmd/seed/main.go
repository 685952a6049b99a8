// Command seed creates user accounts. The API surface has no registration
// endpoint; accounts are provisioned with this tool.
package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"comic-catalog/internal/config"
	"comic-catalog/internal/domain"
	"comic-catalog/internal/repository/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var (
		username  = flag.String("username", "", "username for the new account")
		password  = flag.String("password", "", "password for the new account")
		firstName = flag.String("first-name", "", "first name")
		lastName  = flag.String("last-name", "", "last name")
		email     = flag.String("email", "", "email address")
		staff     = flag.Bool("staff", false, "grant staff role")
		superuser = flag.Bool("superuser", false, "grant superuser role")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		logger.Fatal("both -username and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("hash password: %v", err)
	}

	user := domain.User{
		Username:     *username,
		PasswordHash: string(hash),
		FirstName:    *firstName,
		LastName:     *lastName,
		Email:        *email,
		IsStaff:      *staff,
		IsSuperuser:  *superuser,
		IsActive:     true,
	}
	id, err := userRepo.Create(ctx, &user)
	if err != nil {
		logger.Fatalf("create user: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"id":       id,
		"username": user.Username,
		"staff":    user.IsStaff,
	}).Info("user created")
}
