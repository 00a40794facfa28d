// Package bootstrap runs a service through a uniform lifecycle:
// configure, start hooks, ready hooks, wait for a shutdown signal, then stop
// hooks in reverse registration order under a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(srv.Start)
//	app.OnStop(srv.Stop)
//	err = app.Run(ctx)
package bootstrap
