package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smarttodo/smarttodo/internal/api"
	"github.com/smarttodo/smarttodo/internal/auth"
	"github.com/smarttodo/smarttodo/internal/config"
	"github.com/smarttodo/smarttodo/internal/gateway"
	"github.com/smarttodo/smarttodo/internal/mirror"
	"github.com/smarttodo/smarttodo/internal/model"
	"github.com/smarttodo/smarttodo/internal/reminder"
	"github.com/smarttodo/smarttodo/internal/update"
)

var rootCmd = &cobra.Command{
	Use:   "smarttodo",
	Short: "Task manager with goals, focus sessions and offline sync",
	Long: `smarttodo is a terminal task manager backed by a remote API.
When the server is unreachable it keeps working against a local mirror
and stays offline for the rest of the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func nowFn() time.Time { return time.Now().UTC() }

// loadRuntime wires the shared stack: config, mirror, credentials, api
// client, session and services. Every subcommand starts here.
type runtime struct {
	cfg      config.RuntimeConfig
	store    *mirror.Store
	creds    *auth.Store
	client   *api.Client
	session  *gateway.Session
	services update.Services
	cred     *model.Credential
}

func loadRuntime() (*runtime, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()
	cfg := config.RuntimeConfigFromEnv(config.DefaultRuntimeConfig())

	if err := os.MkdirAll(filepath.Dir(cfg.MirrorPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := mirror.Open(cfg.MirrorPath)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	// The offline flag is session scoped; each process starts fresh.
	if err := store.ResetSession(); err != nil {
		store.Close()
		return nil, fmt.Errorf("reset session state: %w", err)
	}

	creds := auth.NewStore(cfg.CredentialPath)
	cred, err := creds.Load()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	token := ""
	if cred != nil {
		if auth.TokenExpired(cred.Token, nowFn()) {
			_ = creds.Clear()
			cred = nil
		} else {
			token = cred.Token
		}
	}

	client := api.New(cfg.APIBaseURL, token)
	session, err := gateway.NewSession(store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}
	session.UnauthorizedHook = func() {
		_ = creds.Clear()
	}

	rt := &runtime{
		cfg:     cfg,
		store:   store,
		creds:   creds,
		client:  client,
		session: session,
		cred:    cred,
	}
	rt.services = update.Services{
		Tasks:      gateway.NewTaskService(client, store, session, nowFn),
		Goals:      gateway.NewGoalService(client, store, session, nowFn),
		Categories: gateway.NewCategoryService(client, store, session),
		Users:      gateway.NewUserService(client, creds, session, nowFn),
		AI:         gateway.NewAIService(client, session),
	}
	return rt, nil
}

func (rt *runtime) close() {
	rt.store.Close()
}

func runApp() error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	engine := reminder.NewEngine(rt.cfg.ReminderBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(rt.services, engine, rt.cfg)
	if rt.cred != nil {
		m.SetCredential(*rt.cred)
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("smarttodo failed: %w", err)
	}
	return nil
}
