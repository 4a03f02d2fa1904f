package engine

import "time"

// SubmitFunc delivers a finished run to the external score store. The
// engine calls it at most once per session and never waits on it; the
// host wires it to whatever transport it has and reports the outcome
// back through SetOutcome.
type SubmitFunc func(score, elapsedSeconds int)

// ScoringSession accumulates score timing for one run and invokes the
// score submission collaborator exactly once per completed run.
type ScoringSession struct {
	playerID string
	submit   SubmitFunc
	started  time.Time
	fired    bool
	status   SubmissionStatus
}

// NewScoringSession creates a scoring session for a player. An empty
// player id means the host has no authenticated identity; scoring is
// then skipped entirely and no submission is attempted.
func NewScoringSession(playerID string, submit SubmitFunc) *ScoringSession {
	return &ScoringSession{playerID: playerID, submit: submit}
}

// Begin arms the run timer
func (sc *ScoringSession) Begin(now time.Time) {
	sc.started = now
}

// Elapsed returns whole seconds since Begin, floored
func (sc *ScoringSession) Elapsed(now time.Time) int {
	if sc.started.IsZero() {
		return 0
	}
	return int(now.Sub(sc.started).Seconds())
}

// Finish requests the one-shot score submission and returns the resulting
// status. Repeat calls are no-ops returning the recorded status; the
// session-level ended guard makes repeats unreachable in normal play.
func (sc *ScoringSession) Finish(score int, now time.Time) SubmissionStatus {
	if sc.fired {
		return sc.status
	}
	sc.fired = true

	if sc.playerID == "" || sc.submit == nil {
		sc.status = SubmissionSkipped
		return sc.status
	}

	sc.status = SubmissionPending
	sc.submit(score, sc.Elapsed(now))
	return sc.status
}

// SetOutcome records the submission result reported by the host. Failures
// are surfaced for display only; there is no retry.
func (sc *ScoringSession) SetOutcome(ok bool) SubmissionStatus {
	if sc.status != SubmissionPending {
		return sc.status
	}
	if ok {
		sc.status = SubmissionSucceeded
	} else {
		sc.status = SubmissionFailed
	}
	return sc.status
}

// Status returns the current submission status
func (sc *ScoringSession) Status() SubmissionStatus {
	return sc.status
}

// PlayerID returns the authenticated player id, empty when anonymous
func (sc *ScoringSession) PlayerID() string {
	return sc.playerID
}
