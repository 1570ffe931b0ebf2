package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerlens/internal/api"
	"github.com/abhisek/careerlens/internal/config"
	"github.com/abhisek/careerlens/internal/logger"
	"github.com/abhisek/careerlens/internal/session"
	"github.com/abhisek/careerlens/internal/store"
)

// env is everything a command needs: configuration, the log, the local
// store, the API client, and a hydrated session.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	client  *api.Client
	session *session.Session
}

// loadConfig reads configuration with the persistent flags as overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	apiURL, _ := cmd.Flags().GetString("api-url")
	db, _ := cmd.Flags().GetString("db")
	return config.Load(config.Options{ConfigFile: file, APIURL: apiURL, DBPath: db})
}

// openStore opens the local database named by the config.
func openStore(cfg config.Config) (*store.Store, error) {
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// setup builds the env and restores any saved login. Call close when done.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.Timeout,
		Recorder: st.RequestRepo(),
		Logger:   log.With("component", "api"),
	})
	if err != nil {
		st.Close()
		log.Sync()
		return nil, fmt.Errorf("create api client: %w", err)
	}

	sess := session.New(client, st.CredentialRepo(), log.With("component", "session"))
	client.SetTokenSource(sess)

	e := &env{cfg: cfg, log: log, store: st, client: client, session: sess}
	if err := sess.Hydrate(ctxOf(cmd)); err != nil {
		e.close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	log.Debug("session restored", "logged_in", sess.LoggedIn(), "api_url", cfg.APIURL)
	return e, nil
}

func (e *env) close() {
	e.store.Close()
	e.log.Sync()
}

// requireUser fails with a hint when nobody is logged in.
func (e *env) requireUser() error {
	if err := e.session.RequireUser(); err != nil {
		return fmt.Errorf("%w (run: careerlens login)", err)
	}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
