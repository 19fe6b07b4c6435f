package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/api"
	"github.com/ihoflaz/opca-admin-dashboard/internal/config"
	"github.com/ihoflaz/opca-admin-dashboard/internal/crypto"
	"github.com/ihoflaz/opca-admin-dashboard/internal/platform/correlation"
	"github.com/ihoflaz/opca-admin-dashboard/internal/platform/logging"
	"github.com/ihoflaz/opca-admin-dashboard/internal/session"
	"github.com/ihoflaz/opca-admin-dashboard/internal/token"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

var (
	cfg        *config.Config
	store      tokenstore.Store
	client     *api.Client
	controller *session.Controller
	rootCtx    context.Context
)

// consoleNavigator prints where the session controller routes, standing in
// for the dashboard's router.
type consoleNavigator struct{}

func (consoleNavigator) Replace(path string) { fmt.Printf("-> %s\n", path) }
func (consoleNavigator) Push(path string)    { fmt.Printf("-> %s\n", path) }

func Execute() error {
	root := &cobra.Command{
		Use:           "opcactl",
		Short:         "Admin client for the OPCA veterinary diagnostics API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
			rootCtx = correlation.WithID(context.Background(), correlation.NewID())

			store, err = buildStore(cfg)
			if err != nil {
				return err
			}

			validator := token.NewValidator(store, clockwork.NewRealClock())
			client = api.NewClient(cfg.APIBaseURL, store, api.WithTimeout(cfg.HTTPTimeout))
			controller = session.NewController(client, store, validator, consoleNavigator{})
			return nil
		},
	}

	root.AddCommand(
		loginCmd(),
		registerCmd(),
		refreshCmd(),
		logoutCmd(),
		whoamiCmd(),
		analysisCmd(),
		parasitesCmd(),
		digitsCmd(),
		modelsCmd(),
		usersCmd(),
		uploadCmd(),
		versionCmd(),
	)
	return root.Execute()
}

func buildStore(cfg *config.Config) (tokenstore.Store, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing OPCA_REDIS_URL: %w", err)
		}
		return tokenstore.NewRedisStore(redis.NewClient(opts), "opca"), nil
	}

	var cipher crypto.Service = crypto.NoopService{}
	if cfg.CredentialsKey != "" {
		svc, err := crypto.NewAesGcmService(cfg.CredentialsKey)
		if err != nil {
			return nil, err
		}
		cipher = svc
	}
	return tokenstore.NewFileStore(cfg.CredentialsFile, cipher), nil
}

// requireSession restores the stored session and fails the command when
// nobody is logged in.
func requireSession() error {
	controller.Bootstrap()
	if controller.CurrentUser() == nil {
		return fmt.Errorf("not logged in; run 'opcactl login' first")
	}
	return nil
}

// apiError rewraps a client error with its user-facing message.
func apiError(err error) error {
	return fmt.Errorf("%s", api.UserMessage(err))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
