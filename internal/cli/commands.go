// Package cli es el front-end de terminal: consume el engine de tareas igual
// que lo haría la pantalla de "hoy" de la app.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pet-care-tasks/internal/adapters/remote/api"
	"pet-care-tasks/internal/adapters/storage/diskcache"
	"pet-care-tasks/internal/platform/config"
	"pet-care-tasks/internal/platform/logger"
	"pet-care-tasks/internal/ports/remote"
	"pet-care-tasks/internal/tasks"
)

// Version se pisa con -ldflags en el build.
var Version = "dev"

func New() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:           "petcare",
		Short:         "Today's pet-care tasks from the command line.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "pet-care API base url")
	flags.String("user", "", "user id sent as X-Debug-User-ID (dev servers)")
	flags.String("token", "", "bearer token")
	flags.String("log-level", "", "debug|info|warn|error")
	flags.Bool("no-color", false, "disable colored output")
	_ = v.BindPFlag(config.KeyAPIURL, flags.Lookup("api-url"))
	_ = v.BindPFlag(config.KeyUserID, flags.Lookup("user"))
	_ = v.BindPFlag(config.KeyToken, flags.Lookup("token"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if off, _ := cmd.Flags().GetBool("no-color"); off {
			color.NoColor = true
		}
	}

	AddCommands(cmd, v)
	return cmd
}

func AddCommands(topLevel *cobra.Command, v *viper.Viper) {
	addToday(topLevel, v)
	addToggle(topLevel, v)
	addAdd(topLevel, v)
	addPets(topLevel, v)
	addVersion(topLevel)
}

// session es lo que vive mientras corre un comando: equivale a una pantalla activa.
type session struct {
	cfg     config.Config
	log     logger.Logger
	client  *api.Client
	cache   *diskcache.Cache
	engine  *tasks.Engine
	printer *Printer
}

func newSession(v *viper.Viper, out io.Writer) (*session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "petcare",
		Output: os.Stderr,
	})

	client, err := api.NewClient(api.Config{
		BaseURL:     cfg.APIURL,
		Token:       cfg.Token,
		DebugUserID: cfg.UserID,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		log:     log,
		client:  client,
		printer: &Printer{Out: out},
	}

	var gateway remote.ReminderGateway = client
	if cfg.CacheDir != "" {
		cache, err := diskcache.New(cfg.CacheDir, cfg.UserID)
		if err != nil {
			log.Warn("offline cache disabled", map[string]any{"error": err.Error()})
		} else {
			s.cache = cache
			gateway = diskcache.NewCachingGateway(client, cache, log)
		}
	}

	s.engine = tasks.NewEngine(tasks.NewStore(), gateway, tasks.Options{
		Logger: log,
		OnCelebrate: func() {
			s.printer.Celebrate()
			// en la terminal el efecto termina al imprimirse
			s.engine.EffectDone()
		},
	})
	return s, nil
}

// petsByID trae el directorio; si falla se sigue sin nombres.
func (s *session) petsByID(ctx context.Context) ([]remote.Pet, map[string]remote.Pet) {
	list, err := s.client.ListPets(ctx)
	if err != nil {
		s.log.Warn("pet directory unavailable", map[string]any{"error": remote.ServerMessage(err)})
		return nil, map[string]remote.Pet{}
	}
	byID := make(map[string]remote.Pet, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	return list, byID
}

// showOffline imprime la copia en disco cuando el refresh falló.
func (s *session) showOffline(ctx context.Context, refreshErr error) error {
	s.printer.Error("could not refresh: " + remote.ServerMessage(refreshErr))
	if s.cache == nil {
		return refreshErr
	}
	items, savedAt, err := s.cache.Load()
	if err != nil {
		if !errors.Is(err, diskcache.ErrEmpty) {
			s.log.Warn("offline copy unreadable", map[string]any{"error": err.Error()})
		}
		return refreshErr
	}
	s.printer.Stale(savedAt)
	now := s.engine.Projection().At
	s.printer.Projection(tasks.Project(items, now), map[string]remote.Pet{}, now)
	return refreshErr
}

// sortedPetIDs respeta el orden del directorio; los desconocidos van al final por id.
func sortedPetIDs(stats map[string]tasks.PetStats, pets map[string]remote.Pet) []string {
	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, iok := pets[ids[i]]
		pj, jok := pets[ids[j]]
		switch {
		case iok && jok && pi.Name != pj.Name:
			return pi.Name < pj.Name
		case iok != jok:
			return iok
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
