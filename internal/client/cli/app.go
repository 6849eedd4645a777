package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/qrcontacts/internal/client/auth"
	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/config"
	"github.com/dmitrijs2005/qrcontacts/internal/client/pictures"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/users"
	"github.com/dmitrijs2005/qrcontacts/internal/client/services"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
	"github.com/dmitrijs2005/qrcontacts/internal/taskx"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "local"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          io.Closer
	store       *cache.Store
	authService services.AuthService
	remote      client.Client
	uploader    pictures.Uploader
	tasks       *taskx.Group

	identity auth.Identity
	session  *services.Session

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	remote, err := client.New(c.RemoteDSN, c.RemoteTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := cache.NewStore(cache.NewSQLiteRepository(db), log)
	as := services.NewAuthService(users.NewSQLiteRepository(db), store, []byte(c.SessionSecret), c.SessionTTL, log)

	return &App{
		config:      c,
		log:         log,
		db:          db,
		store:       store,
		authService: as,
		remote:      remote,
		uploader:    pictures.New(c.S3, pictures.DefaultLocalDir),
		tasks:       taskx.NewGroup(log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run resumes the stored session, starts the connectivity watcher and
// blocks in the REPL. Pending remote writes are awaited before returning.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.close()
	}()

	id, _ := a.authService.Current(ctx)
	a.openSession(ctx, id)

	if a.remoteConfigured() {
		a.setMode(ModeOffline)
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	} else {
		a.setMode(ModeDisabled)
	}

	fmt.Fprintln(a.out, "Welcome to QR Contacts CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.tasks.Wait()
	if err := a.remote.Close(); err != nil {
		a.log.Warn(context.Background(), "closing remote", "err", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// openSession switches the records shown by the REPL to id's. A zero
// identity opens the local-only session.
func (a *App) openSession(ctx context.Context, id auth.Identity) {
	a.identity = id
	a.session = services.NewSession(id.UserID, a.store, a.remote, a.tasks, a.log)
	a.session.Load(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.identity.UserID != ""
}

func (a *App) remoteConfigured() bool {
	_, offline := a.remote.(client.OfflineClient)
	return !offline
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.identity.Email != "" {
		s = a.identity.Email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
