package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var _ fxevent.Logger = (*FxXLogger)(nil)

// FxXLogger routes the fx lifecycle events into the xlogger under the
// "Fx" component name.
type FxXLogger struct {
	logger XLogger
}

func moduleField(name string) []zap.Field {
	if name == "" {
		return nil
	}
	return []zap.Field{zap.String("module", name)}
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug("HOOK OnStart",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStartExecuted:
		fields := []zap.Field{
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
			zap.Duration("in", e.Runtime),
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "HOOK OnStart failed", fields...)
			return
		}
		l.logger.Debug("HOOK OnStart successfully", fields...)
	case *fxevent.OnStopExecuting:
		l.logger.Debug("HOOK OnStop executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStopExecuted:
		fields := []zap.Field{
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
			zap.Duration("in", e.Runtime),
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "HOOK OnStop failed", fields...)
			return
		}
		l.logger.Debug("HOOK OnStop successfully", fields...)
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "SUPPLY failed",
				zap.String("type", e.TypeName),
				zap.Strings("stacktrace", e.StackTrace),
			)
			return
		}
		l.logger.Debug("SUPPLY", append(moduleField(e.ModuleName), zap.String("type", e.TypeName))...)
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("PROVIDE", append(moduleField(e.ModuleName),
				zap.Bool("private", e.Private),
				zap.String("rtype", rtype),
				zap.String("constructor", e.ConstructorName),
			)...)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "PROVIDE failed", zap.Strings("stacktrace", e.StackTrace))
		}
	case *fxevent.Replaced:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("REPLACE", append(moduleField(e.ModuleName), zap.String("rtype", rtype))...)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "REPLACE failed", zap.Strings("stacktrace", e.StackTrace))
		}
	case *fxevent.Decorated:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("DECORATE", append(moduleField(e.ModuleName),
				zap.String("rtype", rtype),
				zap.String("decorator", e.DecoratorName),
			)...)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "DECORATE failed", zap.Strings("stacktrace", e.StackTrace))
		}
	case *fxevent.Invoking:
		l.logger.Debug("INVOKING", append(moduleField(e.ModuleName), zap.String("function", e.FunctionName))...)
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "INVOKE failed",
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
			)
		}
	case *fxevent.Stopping:
		l.logger.Info("STOPPING", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "STOP failed")
		}
	case *fxevent.RollingBack:
		l.logger.Error(e.StartErr, "START failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "ROLLBACK failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "START failed")
			return
		}
		l.logger.Debug("RUNNING")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "LOGGER initialization failed")
			return
		}
		l.logger.Debug("LOGGER initialized", zap.String("constructor", e.ConstructorName))
	}
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	l := &xLogger{}
	l.logger.Store(logger.
		zap().
		Named("Fx").
		WithOptions(zap.WrapCore(wrapComponentCore)),
	)
	return &FxXLogger{logger: l}
}
