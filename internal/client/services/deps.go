package services

import (
	"errors"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
	"github.com/dmitrijs2005/qrcontacts/internal/taskx"
)

// ErrSignedOut is returned by Sync when there is no user to sync for.
var ErrSignedOut = errors.New("not signed in")

// Deps are the collaborators shared by the record stores of one user context.
type Deps struct {
	// UserID is empty when nobody is signed in; the stores then never
	// touch the remote.
	UserID string
	// Store must already be scoped to UserID.
	Store  *cache.Store
	Remote client.Client
	Tasks  *taskx.Group
	Log    logging.Logger
}
