// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/infra/config"
	"github.com/runoshun/jira-attach/internal/infra/draftstore"
	"github.com/runoshun/jira-attach/internal/infra/executor"
	"github.com/runoshun/jira-attach/internal/infra/history"
	"github.com/runoshun/jira-attach/internal/infra/jira"
	"github.com/runoshun/jira-attach/internal/infra/logging"
	"github.com/runoshun/jira-attach/internal/infra/staging"
	"github.com/runoshun/jira-attach/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ConfigPath  string // Path to config.toml (the profile)
	KeyPath     string // Path to the key sealing saved passwords
	DataDir     string // Root of logs, history, drafts and staging
	HistoryPath string // Path to the change log database
	DraftsPath  string // Path to drafts.json
	StagingDir  string // Path to the upload staging directory
}

// NewConfig derives all paths. An empty configPath selects the default
// profile under $XDG_CONFIG_HOME.
func NewConfig(configPath, dataDir string) Config {
	if configPath == "" {
		configPath = filepath.Join(domain.ConfigDir(domain.DefaultConfigHome()), domain.ConfigFileName)
	}
	if dataDir == "" {
		dataDir = domain.DataDir(domain.DefaultDataHome())
	}
	return Config{
		ConfigPath:  configPath,
		KeyPath:     domain.KeyPath(filepath.Dir(configPath)),
		DataDir:     dataDir,
		HistoryPath: domain.HistoryPath(dataDir),
		DraftsPath:  domain.DraftsPath(dataDir),
		StagingDir:  domain.StagingDir(dataDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Trackers      domain.TrackerFactory
	History       domain.ChangeLog
	Drafts        domain.DraftRepository
	Stagers       domain.StagerFactory
	Viewer        domain.Viewer
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	OpLog         domain.Logger

	// Pointer fields
	Session   *domain.Session
	Logger    *slog.Logger
	AppConfig *domain.Config
	LoadErr   error // Set when the config file could not be loaded; defaults are used

	// Configuration
	Config Config

	closers []io.Closer
}

// New creates a new Container for the given profile file.
// version is reported in the User-Agent header.
func New(configPath, version string) (*Container, error) {
	cfg := NewConfig(configPath, "")

	// Load app config; on error keep defaults so that "config" commands still work
	configLoader := config.NewLoader(cfg.ConfigPath, cfg.KeyPath)
	appConfig, loadErr := configLoader.Load()
	if loadErr != nil {
		appConfig = domain.NewDefaultConfig()
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	historyStore, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}

	opLog := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Trackers:      jira.NewFactory(domain.AppName + "/" + version),
		History:       historyStore,
		Drafts:        draftstore.New(cfg.DraftsPath),
		Stagers:       staging.NewFactory(cfg.StagingDir),
		Viewer:        executor.NewViewer(executor.NewClient(), appConfig.Viewer.Command),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.ConfigPath, cfg.KeyPath),
		OpLog:         opLog,
		Session:       domain.NewSession(),
		Logger:        logger,
		AppConfig:     appConfig,
		LoadErr:       loadErr,
		Config:        cfg,
		closers:       []io.Closer{historyStore, opLog},
	}, nil
}

// Deps holds the dependencies accepted by NewWithDeps.
type Deps struct {
	Trackers      domain.TrackerFactory
	History       domain.ChangeLog
	Drafts        domain.DraftRepository
	Stagers       domain.StagerFactory
	Viewer        domain.Viewer
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	OpLog         domain.Logger
	AppConfig     *domain.Config
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	appConfig := deps.AppConfig
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	opLog := deps.OpLog
	if opLog == nil {
		opLog = domain.NopLogger{}
	}
	return &Container{
		Trackers:      deps.Trackers,
		History:       deps.History,
		Drafts:        deps.Drafts,
		Stagers:       deps.Stagers,
		Viewer:        deps.Viewer,
		Clock:         deps.Clock,
		ConfigLoader:  deps.ConfigLoader,
		ConfigManager: deps.ConfigManager,
		OpLog:         opLog,
		Session:       domain.NewSession(),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		AppConfig:     appConfig,
		Config:        cfg,
	}
}

// Close releases the change log database and open log files.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Trackers, c.Session, c.ConfigManager, c.OpLog)
}

// FetchIssueUseCase returns a new FetchIssue use case.
func (c *Container) FetchIssueUseCase() *usecase.FetchIssue {
	return usecase.NewFetchIssue(c.Session, c.Drafts, c.OpLog)
}

// RenameAttachmentUseCase returns a new RenameAttachment use case.
func (c *Container) RenameAttachmentUseCase() *usecase.RenameAttachment {
	return usecase.NewRenameAttachment(c.Drafts, c.Clock, c.OpLog)
}

// PlanRenamesUseCase returns a new PlanRenames use case.
func (c *Container) PlanRenamesUseCase() *usecase.PlanRenames {
	return usecase.NewPlanRenames(c.Drafts, c.Clock)
}

// ApplyRenamesUseCase returns a new ApplyRenames use case.
func (c *Container) ApplyRenamesUseCase() *usecase.ApplyRenames {
	return usecase.NewApplyRenames(c.Session, c.Stagers, c.History, c.Drafts, c.Clock, c.OpLog)
}

// ShowAttachmentUseCase returns a new ShowAttachment use case.
func (c *Container) ShowAttachmentUseCase() *usecase.ShowAttachment {
	return usecase.NewShowAttachment(c.Session, c.Stagers, c.Viewer, c.OpLog, c.Config.DataDir)
}

// DownloadAttachmentsUseCase returns a new DownloadAttachments use case.
func (c *Container) DownloadAttachmentsUseCase() *usecase.DownloadAttachments {
	return usecase.NewDownloadAttachments(c.Session, c.Stagers, c.OpLog)
}

// ListChangesUseCase returns a new ListChanges use case.
func (c *Container) ListChangesUseCase() *usecase.ListChanges {
	return usecase.NewListChanges(c.History)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.DataDir)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// DiscardDraftUseCase returns a new DiscardDraft use case.
func (c *Container) DiscardDraftUseCase() *usecase.DiscardDraft {
	return usecase.NewDiscardDraft(c.Drafts, c.OpLog)
}

// ListDraftsUseCase returns a new ListDrafts use case.
func (c *Container) ListDraftsUseCase() *usecase.ListDrafts {
	return usecase.NewListDrafts(c.Drafts)
}
