// Package session keeps the signed-in user's bearer token on the client and
// watches it expire.
//
// Three values are persisted through a storage.Storage backend: the token
// under "token", the user's email under "email" and the profile JSON under
// "user". A Store reads and writes them and classifies a token by the expiry
// claim embedded in it. Signatures are not verified on the client.
//
//	store, err := session.NewStore(backend)
//	if err != nil {
//		return err
//	}
//	switch store.Check(token, time.Now()) {
//	case session.StatusExpired:
//		// tear down
//	case session.StatusExpiringSoon:
//		// warn
//	}
//
// # Expiry rules
//
// A token counts as expired once its expiry is at or before now plus the
// expiry buffer (30 seconds by default). It is expiring soon when the expiry
// falls inside the warning window (5 minutes by default). A token without a
// readable exp claim is treated as expired.
//
// # Monitoring
//
// Manager ties a Store to a Monitor and to the user-facing notify.Notifier and
// notify.Navigator. Login saves the credentials and starts a background loop
// that checks the token every 30 seconds:
//
//	mgr, err := session.NewManager(backend, notifier, navigator,
//		session.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	if err := mgr.Login(ctx, session.Credentials{Token: tok, Email: email}); err != nil {
//		return err
//	}
//	defer mgr.Stop()
//
// On every tick an expiring token raises a warning banner (at most one at a
// time) and an expired token triggers Expire: the three keys are cleared, the
// loop stops, the banner is dismissed and, unless the user is already on the
// login view, a notice is shown and the navigator is sent to the login path.
//
// # Configuration
//
// Config carries env tags so it can be loaded with the config package:
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//	mgr, err := session.NewFromConfig(cfg, backend, notifier, navigator)
package session
