// Package repomanager vends repositories bound to a connection or transaction
// and owns the schema migration step.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shiftjournal/internal/dbx"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/archives"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/assignments"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/engineers"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Entries(db dbx.DBTX) entries.Repository
	Assignments(db dbx.DBTX) assignments.Repository
	Engineers(db dbx.DBTX) engineers.Repository
	Archives(db dbx.DBTX) archives.Repository
}
