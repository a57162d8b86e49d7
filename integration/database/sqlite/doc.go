// Package sqlite persists client state in a local SQLite file using the pure
// Go modernc.org/sqlite driver, so the CLI keeps its cart, wishlist and
// session between runs without cgo.
//
//	db, err := sqlite.Open(ctx, sqlite.Config{Path: "storefront.db"})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	if err := sqlite.Migrate(ctx, db, log); err != nil {
//		return err
//	}
//	backend := sqlite.NewStorage(db, "")
package sqlite
