package main

import (
	"context"
	"flag"
	"os"

	"merchops/internal/config"
	"merchops/internal/domain"
	"merchops/internal/infrastructure/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Creates a dashboard account. Logins are not self-service, so this is
// how the first admin (and any later account) gets provisioned.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "display name")
	role := flag.String("role", string(domain.RoleViewer), "role: admin, manager, sales, designer, manufacturer or viewer")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *email == "" || *password == "" {
		logger.Fatal().Msg("-email and -password are required")
	}
	switch domain.Role(*role) {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleSales, domain.RoleDesigner, domain.RoleManufacturer, domain.RoleViewer:
	default:
		logger.Fatal().Str("role", *role).Msg("Unknown role")
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to hash password")
	}

	user := &domain.User{
		Email:        *email,
		Name:         *name,
		Role:         domain.Role(*role),
		PasswordHash: string(hash),
	}

	users := repository.NewMongoUserRepository(client.Database(cfg.MongoDatabase))
	if err := users.Create(context.Background(), user); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create user")
	}

	logger.Info().Str("userId", user.ID).Str("email", user.Email).Str("role", *role).Msg("User created")
}
