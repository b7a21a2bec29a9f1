// Package logger builds slog loggers with functional options and injects
// request-scoped attributes taken from the context.
//
// New picks a text or JSON handler and wraps it with LogHandlerDecorator,
// which runs every registered ContextExtractor on each record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "trusted user registered",
//		logger.FacebookID(u.FacebookID),
//		logger.MAC(u.MACAddress),
//	)
//
// Attribute helpers keep key names consistent across packages. Helpers for
// optional values return an empty slog.Attr, which handlers skip, so callers
// never need a nil check:
//
//	log.Info("saved", logger.Error(err))
package logger
