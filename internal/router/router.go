package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	_ "pet-care-tasks/internal/docs"

	mem "pet-care-tasks/internal/adapters/storage/memory"
	pg "pet-care-tasks/internal/adapters/storage/postgres"
	"pet-care-tasks/internal/domain/pets"
	"pet-care-tasks/internal/domain/reminders"
	"pet-care-tasks/internal/middleware"
	"pet-care-tasks/internal/platform/logger"
	"pet-care-tasks/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

// NewRouter arma el server de desarrollo que implementa el contrato remoto
// que consume el cliente (reminders + directorio de mascotas).
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.Middleware(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo      pets.Repository
		reminderRepo reminders.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Warn("postgres unavailable, using in-memory storage", map[string]any{"error": err.Error()})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		if err := pg.Migrate(context.Background(), db); err != nil {
			log.Error("postgres migrate failed", map[string]any{"error": err.Error()})
		}
		petRepo = pg.NewPetsRepo(db)
		reminderRepo = pg.NewRemindersRepo(db)
		log.Info("storage ready", map[string]any{"driver": "postgres"})
	} else {
		petRepo = mem.NewPetRepo()
		reminderRepo = mem.NewReminderRepo()
		log.Info("storage ready", map[string]any{"driver": "memory"})
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	remindersSvc := reminders.NewService(reminderRepo, petsSvc)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	reminders.RegisterRoutes(r, remindersSvc)

	return r
}
