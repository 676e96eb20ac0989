// Package devapi assembles the reference presence API used for local
// development and by the client's end-to-end tests.
package devapi

import (
	"context"
	"fmt"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/fixtures"
	appHTTP "github.com/didacticiel/Gpresence/internal/handler/http"
	"github.com/didacticiel/Gpresence/internal/pkg/cron"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/pkg/jwt"
	"github.com/didacticiel/Gpresence/internal/repository/memory"
	"github.com/didacticiel/Gpresence/internal/repository/postgresql"
	"github.com/didacticiel/Gpresence/internal/service/account"
	"github.com/didacticiel/Gpresence/internal/service/directory"
	"github.com/didacticiel/Gpresence/internal/service/reporting"
	"github.com/didacticiel/Gpresence/internal/service/timeclock"
	"github.com/go-chi/chi/v5"
)

// Repositories is one storage backend.
type Repositories struct {
	Tx        database.Transactor
	Users     user.UserRepository
	Employees employee.EmployeeRepository
	Presences presence.Repository
	Reports   report.ReportRepository
}

func MemoryRepositories(db *memory.DB) Repositories {
	return Repositories{
		Tx:        db,
		Users:     memory.NewUserRepository(db),
		Employees: memory.NewEmployeeRepository(db),
		Presences: memory.NewPresenceRepository(db),
		Reports:   memory.NewReportRepository(db),
	}
}

func PostgresRepositories(db *database.DB) Repositories {
	return Repositories{
		Tx:        postgresql.NewTransactor(db),
		Users:     postgresql.NewUserRepository(db),
		Employees: postgresql.NewEmployeeRepository(db),
		Presences: postgresql.NewPresenceRepository(db),
		Reports:   postgresql.NewReportRepository(db),
	}
}

type Options struct {
	JWTSecret        string
	AccessExpiration string
	Router           appHTTP.RouterOptions
	// Now is the server clock. Defaults to time.Now.
	Now func() time.Time
}

// Server is the wired API.
type Server struct {
	Router    *chi.Mux
	TimeClock presence.TimeClock
	JWT       *jwt.JWTService
	Repos     Repositories
	Scheduler *cron.Scheduler
}

func New(repos Repositories, opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	JWTService := jwt.NewJWTService(opts.JWTSecret, opts.AccessExpiration)

	authService := account.NewAccountService(repos.Tx, repos.Users, repos.Employees, JWTService)
	timeClock := timeclock.NewTimeClockService(repos.Tx, repos.Presences, repos.Employees, now)
	employeeService := directory.NewDirectoryService(repos.Employees)
	reportService := reporting.NewReportingService(repos.Reports, repos.Employees)

	scheduler := cron.NewScheduler()
	cron.NewPresenceJobs(timeClock, now).RegisterJobs(scheduler)

	router := appHTTP.NewRouter(JWTService, opts.Router, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authService),
		Presence: appHTTP.NewPresenceHandler(timeClock),
		Employee: appHTTP.NewEmployeeHandler(employeeService),
		Report:   appHTTP.NewReportHandler(reportService),
	})

	return &Server{
		Router:    router,
		TimeClock: timeClock,
		JWT:       JWTService,
		Repos:     repos,
		Scheduler: scheduler,
	}
}

// Seed creates the demo accounts. cost is the bcrypt cost.
func (s *Server) Seed(ctx context.Context, cost int) (fixtures.SeededUsers, error) {
	seeded, err := fixtures.SeedDemo(ctx, s.Repos.Tx, s.Repos.Users, s.Repos.Employees, cost)
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}
	return seeded, nil
}

// NewDemo returns a seeded in-memory server.
func NewDemo(ctx context.Context, opts Options, cost int) (*Server, fixtures.SeededUsers, error) {
	db := memory.NewDB()
	if opts.Now != nil {
		db.SetClock(opts.Now)
	}
	s := New(MemoryRepositories(db), opts)
	seeded, err := s.Seed(ctx, cost)
	if err != nil {
		return nil, nil, err
	}
	return s, seeded, nil
}
