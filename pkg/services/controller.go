package services

import (
	"context"
	"errors"
	"time"

	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/sources"
	"github.com/sirupsen/logrus"
)

type ControllerConfig struct {
	DBPath       string
	MenuURL      string
	FetchTimeout time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	Logger       logrus.FieldLogger
}

// MenuController ties the store, the remote source, the syncer and the
// session together for the TUI and the CLI.
type MenuController struct {
	source   sources.Source
	repo     Repository
	store    *data.Repository
	syncer   *Syncer
	sessions *SessionService
	log      logrus.FieldLogger
}

func NewMenuController(config ControllerConfig) (*MenuController, error) {
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	source, err := sources.NewLittleLemon(sources.Options{
		MenuURL:      config.MenuURL,
		FetchTimeout: config.FetchTimeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	store, err := data.NewDuckDBRepository(config.DBPath)
	if err != nil {
		return nil, err
	}

	c := newMenuController(source, store, log)
	c.store = store
	return c, nil
}

func newMenuController(source sources.Source, repo Repository, log logrus.FieldLogger) *MenuController {
	return &MenuController{
		source:   source,
		repo:     repo,
		syncer:   NewSyncer(source, repo, log),
		sessions: NewSessionService(repo, log),
		log:      log,
	}
}

func (c *MenuController) Sessions() *SessionService {
	return c.sessions
}

func (c *MenuController) Syncer() *Syncer {
	return c.syncer
}

// Menu returns every cached menu item.
func (c *MenuController) Menu() ([]*data.MenuItem, error) {
	return c.repo.ListMenuItems()
}

// SearchMenu returns the cached items matching term and category.
func (c *MenuController) SearchMenu(term, category string) ([]*data.MenuItem, error) {
	items, err := c.repo.ListMenuItems()
	if err != nil {
		return nil, err
	}
	return FilterMenu(items, term, category), nil
}

func (c *MenuController) SyncState() (*data.SyncState, error) {
	return c.syncer.State()
}

// EnsureSynced starts a background sync unless the store is already synced
// or a sync is running. It returns nil when nothing was started.
func (c *MenuController) EnsureSynced(ctx context.Context) (*SyncTask, error) {
	state, err := c.syncer.State()
	if err != nil {
		return nil, err
	}
	if !state.NeedsSync() {
		return nil, nil
	}
	task, err := c.syncer.Start(ctx)
	if errors.Is(err, ErrSyncInProgress) {
		return nil, nil
	}
	return task, err
}

// Close stops any running sync and releases the database.
func (c *MenuController) Close() {
	c.syncer.Close()
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.log.WithError(err).Warn("failed to close database")
		}
	}
}
