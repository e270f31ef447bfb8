package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/senseandsay/internal/dbx"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/phrases"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/senseandsay/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Phrases(db dbx.DBTX) phrases.Repository
}
