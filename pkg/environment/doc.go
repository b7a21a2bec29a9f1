// Package environment carries the deployment environment through config,
// request contexts and log records.
//
//	var cfg struct {
//		Env environment.Environment `env:"APP_ENV" envDefault:"development"`
//	}
//
//	r.Use(environment.Middleware(cfg.Env))
//
//	if environment.IsProduction(ctx) {
//		// hide internal error details
//	}
package environment
