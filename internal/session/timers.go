package session

import (
	"time"

	"go.uber.org/zap"
)

// The inactivity monitor and the grace-period callback share one registry;
// clearTimersLocked empties it atomically so a transition out of ACTIVE by
// any path leaves nothing behind to fire into a finished session.

func (a *Agent) startInactivityMonitorLocked() {
	a.clearInactivityLocked()

	ticker := time.NewTicker(a.cfg.InactivityPoll)
	done := make(chan struct{})
	a.inactivityTicker = ticker
	a.inactivityDone = done

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				a.checkInactivity()
			}
		}
	}()
}

func (a *Agent) checkInactivity() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusActive {
		return
	}
	idle := a.now().Sub(a.lastActivity)
	if idle <= a.cfg.InactivityTimeout {
		return
	}
	a.logger.Info("Inactivity timeout reached, ending call",
		zap.Duration("idle", idle),
		zap.String("session_id", a.cfg.SessionID))
	a.finishLocked(true)
}

// scheduleGraceTerminationLocked arms (or re-arms) the delayed termination
// that follows the user's answer to the final prepared question.
func (a *Agent) scheduleGraceTerminationLocked() {
	if a.graceTimer != nil {
		a.graceTimer.Stop()
	}
	a.logger.Info("All questions completed, scheduling end of call",
		zap.Duration("grace", a.cfg.GracePeriod),
		zap.String("session_id", a.cfg.SessionID))
	a.graceTimer = time.AfterFunc(a.cfg.GracePeriod, a.graceTerminate)
}

func (a *Agent) graceTerminate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusActive {
		return
	}
	a.finishLocked(true)
}

func (a *Agent) clearInactivityLocked() {
	if a.inactivityTicker != nil {
		a.inactivityTicker.Stop()
		a.inactivityTicker = nil
	}
	if a.inactivityDone != nil {
		close(a.inactivityDone)
		a.inactivityDone = nil
	}
}

func (a *Agent) clearTimersLocked() {
	a.clearInactivityLocked()
	if a.graceTimer != nil {
		a.graceTimer.Stop()
		a.graceTimer = nil
	}
}
