// Package pg wires PostgreSQL through pgx/v5: a pooled Connect with retry,
// goose migrations from an fs.FS, a readiness probe and error classifiers.
//
//	pool, err := pg.Connect(ctx, cfg.PG)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, db.Migrations(), cfg.PG, log); err != nil {
//		return err
//	}
package pg
