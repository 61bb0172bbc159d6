package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pixel-pet/internal/adapters/storage/memory"
	pg "pixel-pet/internal/adapters/storage/postgres"
	"pixel-pet/internal/domain/games"
	"pixel-pet/internal/domain/items"
	"pixel-pet/internal/domain/pets"
	"pixel-pet/internal/middleware"
	"pixel-pet/internal/platform/logger"
	"pixel-pet/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, loguea cada request.
	Logger logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	// Límite por usuario sobre todo el API: los cooldowns de dominio
	// frenan el spam por acción, esto frena el martilleo del endpoint.
	r.Use(middleware.RateLimit(5, 10))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		petRepo     pets.Repository
		gamesRepo   games.Repository
		catalogRepo items.CatalogRepository
		invRepo     items.InventoryRepository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		gamesRepo = pg.NewGamesRepo(db)
		catalogRepo = pg.NewCatalogRepo(db)
		invRepo = pg.NewInventoryRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		gamesRepo = mem.NewGamesRepo()
		catalogRepo = mem.NewCatalogRepo()
		invRepo = mem.NewInventoryRepo()
	}

	// Services por módulo
	itemsSvc := items.NewService(catalogRepo, invRepo)
	petsSvc := pets.NewService(petRepo, itemsSvc)
	gamesSvc := games.NewService(gamesRepo, petsSvc)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	games.RegisterRoutes(r, gamesSvc, petsSvc)
	items.RegisterRoutes(r, itemsSvc, petsSvc)

	return r
}
