// Package database connects the viewer to its content store.
//
// The content store holds albums, their settings and the ordered images of
// each album. It is read-only from the viewer's point of view; the tables
// are expected to be filled by whatever tool manages the albums.
//
// # Supported Backends
//
//   - PostgreSQL: pgx connection pool
//   - SQLite: modernc.org/sqlite, suitable for single-node deployments
//
// # Usage
//
//	cfg := database.Config{
//	    Type:     "sqlite",
//	    DSN:      "showoff.db",
//	    Tables:   showoff.DefaultTables(),
//	    PageSize: 20,
//	}
//
//	db, err := database.Open(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	albums := db.GetRepo()
//
// Open runs migrations and validates the schema before returning.
//
// # Subpackages
//
//   - database/postgres: PostgreSQL implementation using pgx
//   - database/sqlite: SQLite implementation using modernc.org/sqlite
package database
