// Package zapadapter wires go.uber.org/zap into clog.LogProvider so a
// client can route handshake, chunking and subscription tracing into
// whatever structured-logging pipeline the host application already
// runs.
package zapadapter

import "go.uber.org/zap"

// Adapter implements clog.LogProvider over a *zap.SugaredLogger.
type Adapter struct {
	log *zap.SugaredLogger
}

// New wraps l. A nil l falls back to zap.NewNop().
func New(l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{log: l.Sugar()}
}

func (a *Adapter) Critical(format string, v ...interface{}) { a.log.Errorf("CRITICAL: "+format, v...) }
func (a *Adapter) Error(format string, v ...interface{})    { a.log.Errorf(format, v...) }
func (a *Adapter) Warn(format string, v ...interface{})     { a.log.Warnf(format, v...) }
func (a *Adapter) Debug(format string, v ...interface{})    { a.log.Debugf(format, v...) }
func (a *Adapter) Trace(format string, v ...interface{})    { a.log.Debugf("TRACE: "+format, v...) }
