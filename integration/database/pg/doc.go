// Package pg connects to PostgreSQL through pgx and stores client state in a
// key-value table, so a storefront session can be persisted server side.
//
// Connect parses the connection string, applies pool limits from Config and
// pings with exponential backoff. Migrate applies the embedded goose
// migrations through a database/sql handle opened on top of the pool.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	backend := pg.NewStorage(pool, cfg.Namespace)
//
// Storage joins a transaction attached with WithTx, which lets callers update
// several keys atomically:
//
//	tx, err := pool.Begin(ctx)
//	if err != nil {
//		return err
//	}
//	defer tx.Rollback(ctx)
//
//	txCtx := pg.WithTx(ctx, tx)
//	if err := backend.Set(txCtx, "token", token); err != nil {
//		return err
//	}
//	if err := backend.Set(txCtx, "email", email); err != nil {
//		return err
//	}
//	return tx.Commit(ctx)
package pg
