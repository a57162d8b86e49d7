// Package health runs readiness checks against the client's dependencies.
//
// A check is any func(context.Context) error, which matches the helpers
// exported by the database integrations:
//
//	report := health.Run(ctx, log,
//		health.Check{Name: "storage", Fn: pg.Healthcheck(pool)},
//		health.Check{Name: "api", Fn: client.Ping},
//	)
//	if !report.Ready() {
//		// at least one dependency is down
//	}
package health
