/*
Package app signal handling. SIGHUP requests a rescan of the root. The first
SIGINT or SIGTERM cancels the running operation and lets the application
shut down on its own, a second one exits immediately.
*/
package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/sonemaro/insights/pkg/insights"
	"github.com/sonemaro/insights/pkg/logger"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// setupSignalHandling starts listening for system signals
func (a *App) setupSignalHandling() {
	a.log.Debug("Initializing signal handlers")

	signals := make(chan os.Signal, 1)
	signal.Notify(signals,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	a.mu.Lock()
	a.signals = signals
	a.mu.Unlock()

	go a.handleSignals(signals, &signalState{})
}

func (a *App) stopSignalHandling() {
	if a.signals != nil {
		signal.Stop(a.signals)
	}
}

// handleSignals processes incoming system signals until shutdown
func (a *App) handleSignals(sigChan <-chan os.Signal, state *signalState) {
	for {
		select {
		case <-a.done:
			return
		case sig := <-sigChan:
			a.log.WithFields(logger.Fields{
				"signal": sig.String(),
			}).Debug("Received system signal")

			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				if !state.shutdownInitiated.CompareAndSwap(false, true) {
					a.handleForcedShutdown()
					return
				}
				a.handleGracefulShutdown()

			case syscall.SIGHUP:
				a.handleHangup()
			}
		}
	}
}

// handleGracefulShutdown stops the running operation
func (a *App) handleGracefulShutdown() {
	a.log.Info("Initiating graceful shutdown")

	if service := a.currentService(); service != nil {
		service.CancelScan()
	}
	a.cancel()
}

// handleForcedShutdown performs an immediate shutdown
func (a *App) handleForcedShutdown() {
	a.log.Warn("Received second interrupt, forcing shutdown")

	a.mu.Lock()
	bar := a.bar
	a.mu.Unlock()
	if bar != nil {
		bar.Hide()
	}
	a.exit(1)
}

// handleHangup requests a full rescan
func (a *App) handleHangup() {
	a.log.Info("Received SIGHUP signal, rescanning")

	if service := a.currentService(); service != nil {
		service.Trigger()
	}
}

func (a *App) currentService() *insights.Service {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.service
}
