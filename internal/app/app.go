package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/config"
	"github.com/pttracker/pttracker/internal/db"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/pttracker/pttracker/internal/service"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	AuthService   *service.AuthService
	ClientService *service.ClientService
	GoalService   *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	coachRepository := repository.NewCoachRepository(database)
	clientRepository := repository.NewClientRepository(database)
	goalRepository := repository.NewGoalRepository(database)

	// Services
	authService := service.NewAuthService(
		coachRepository,
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.IsProduction(),
	)
	clientService := service.NewClientService(clientRepository, cfg.PageSize)
	goalService := service.NewGoalService(goalRepository, cfg.PageSize)

	return &App{
		Cfg:           cfg,
		DB:            database,
		AuthService:   authService,
		ClientService: clientService,
		GoalService:   goalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
