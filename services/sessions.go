// Copyright (c) 2024 The Metadata Wizard Project and its Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package services

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/esciencelab/mdw/config"
	"github.com/esciencelab/mdw/schemas"
	"github.com/esciencelab/mdw/translator"
	"github.com/esciencelab/mdw/wizard"
)

// A snapshot of a wizard session as reported to clients. The schema is nil
// and the result non-nil exactly when the session has reached its terminal
// step.
type Session struct {
	Id     uuid.UUID
	Step   wizard.Step
	Schema *schemas.Schema
	Result []translator.Document
}

// Starts processing wizard sessions, returning an informative error if
// anything prevents this.
func Start() error {
	if running {
		return &AlreadyRunningError{}
	}

	// if this is the first call to Start(), set up the session journal
	if firstCall {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		sessionJournal = slog.New(handler)
		firstCall = false
	}

	// allocate channels
	sessionChannels = channelsType{
		CreateSession: make(chan struct{}, 32),
		SubmitStep:    make(chan stepSubmission, 32),
		GoBack:        make(chan uuid.UUID, 32),
		ResetSession:  make(chan uuid.UUID, 32),
		GetSession:    make(chan uuid.UUID, 32),
		DeleteSession: make(chan uuid.UUID, 32),
		ReturnSession: make(chan Session, 32),
		Error:         make(chan error, 32),
		Poll:          make(chan struct{}),
		Stop:          make(chan struct{}),
	}

	// start processing sessions
	go processSessions()

	// start the polling heartbeat
	slog.Info(fmt.Sprintf("Idle sessions are purged every %d ms",
		config.Service.PollInterval))
	pollInterval := time.Duration(config.Service.PollInterval) * time.Millisecond
	go heartbeat(pollInterval, sessionChannels.Poll)

	// okay, we're running now
	running = true

	return nil
}

// Stops processing sessions. Creating sessions and submitting step data are
// disallowed in a stopped state.
func Stop() error {
	var err error
	if running {
		running = false
		sessionChannels.Stop <- struct{}{}
		err = <-sessionChannels.Error
	} else {
		err = &NotRunningError{}
	}
	return err
}

// Returns true if sessions are currently being processed, false if not.
func Running() bool {
	return running
}

// Creates a new wizard session at the dataset step, returning its snapshot.
func Create() (Session, error) {
	sessionChannels.CreateSession <- struct{}{}
	return awaitSession()
}

// Submits the data for the current step of the session with the given UUID
// and returns the successor snapshot. Submitting to a session that has
// already produced its documents is an error; clients reset or discard such
// a session instead.
func Submit(sessionId uuid.UUID, data any) (Session, error) {
	sessionChannels.SubmitStep <- stepSubmission{Id: sessionId, Data: data}
	return awaitSession()
}

// Navigates the session with the given UUID to its previous step.
func Back(sessionId uuid.UUID) (Session, error) {
	sessionChannels.GoBack <- sessionId
	return awaitSession()
}

// Discards all answers of the session with the given UUID, returning it to
// the dataset step.
func Reset(sessionId uuid.UUID) (Session, error) {
	sessionChannels.ResetSession <- sessionId
	return awaitSession()
}

// Given a session UUID, returns its current snapshot (or a non-nil error
// indicating any issues encountered).
func Get(sessionId uuid.UUID) (Session, error) {
	sessionChannels.GetSession <- sessionId
	return awaitSession()
}

// Discards the session with the given UUID.
func Delete(sessionId uuid.UUID) error {
	sessionChannels.DeleteSession <- sessionId
	_, err := awaitSession()
	return err
}

//-----------
// Internals
//-----------

// global variables for managing sessions
var firstCall = true              // indicates first call to Start()
var running bool                  // true if sessions are processing, false if not
var sessionChannels channelsType  // channels used for processing sessions

var sessionJournal *slog.Logger

// a session owned by the manager goroutine
type wizardSession struct {
	Id             uuid.UUID
	State          wizard.State
	LastAccessTime time.Time
}

// a step submission handed to the manager goroutine
type stepSubmission struct {
	Id   uuid.UUID
	Data any
}

// this type holds the various channels used by the session manager to
// communicate with its callers
type channelsType struct {
	CreateSession chan struct{}       // Create() called
	SubmitStep    chan stepSubmission // Submit() called
	GoBack        chan uuid.UUID      // Back() called
	ResetSession  chan uuid.UUID      // Reset() called
	GetSession    chan uuid.UUID      // Get() called
	DeleteSession chan uuid.UUID      // Delete() called
	ReturnSession chan Session        // returns session snapshots
	Error         chan error          // returns errors
	Poll          chan struct{}       // carries heartbeat signals
	Stop          chan struct{}       // used to stop processing sessions
}

// receives either a snapshot or an error from the manager goroutine
func awaitSession() (Session, error) {
	var session Session
	var err error
	select {
	case session = <-sessionChannels.ReturnSession:
	case err = <-sessionChannels.Error:
	}
	return session, err
}

// takes the client-facing snapshot of a session
func snapshot(session wizardSession) Session {
	return Session{
		Id:     session.Id,
		Step:   session.State.Step,
		Schema: session.State.Schema,
		Result: session.State.Result,
	}
}

// This goroutine implements the session manager. All wizard state lives in
// its local session table and every transition happens here, so no locking
// is needed anywhere in the wizard itself.
func processSessions() {
	sessions := make(map[uuid.UUID]wizardSession)

	// parse the session channels into directional types as needed
	var createChan <-chan struct{} = sessionChannels.CreateSession
	var submitChan <-chan stepSubmission = sessionChannels.SubmitStep
	var backChan <-chan uuid.UUID = sessionChannels.GoBack
	var resetChan <-chan uuid.UUID = sessionChannels.ResetSession
	var getChan <-chan uuid.UUID = sessionChannels.GetSession
	var deleteChan <-chan uuid.UUID = sessionChannels.DeleteSession
	var returnChan chan<- Session = sessionChannels.ReturnSession
	var errorChan chan<- error = sessionChannels.Error
	var pollChan <-chan struct{} = sessionChannels.Poll
	var stopChan <-chan struct{} = sessionChannels.Stop

	// the idle-session lifetime is specified in seconds
	purgeAfter := time.Duration(config.Service.SessionTtl) * time.Second

	running := true
	for running {
		select {
		case <-createChan: // Create() called
			session := wizardSession{
				Id:             uuid.New(),
				State:          wizard.New(),
				LastAccessTime: time.Now(),
			}
			sessions[session.Id] = session
			returnChan <- snapshot(session)
			sessionJournal.Info("session created", "session", session.Id.String())
		case submission := <-submitChan: // Submit() called
			if session, found := sessions[submission.Id]; found {
				if session.State.Step == wizard.StepEnd {
					errorChan <- &SessionCompletedError{Id: submission.Id}
					break
				}
				session.State = session.State.Advance(submission.Data)
				session.LastAccessTime = time.Now()
				sessions[session.Id] = session
				returnChan <- snapshot(session)
				if session.State.Step == wizard.StepEnd {
					sessionJournal.Info("session completed",
						"session", session.Id.String(),
						"documents", len(session.State.Result))
				}
			} else {
				errorChan <- &NotFoundError{Id: submission.Id}
			}
		case sessionId := <-backChan: // Back() called
			if session, found := sessions[sessionId]; found {
				session.State = session.State.Back()
				session.LastAccessTime = time.Now()
				sessions[sessionId] = session
				returnChan <- snapshot(session)
			} else {
				errorChan <- &NotFoundError{Id: sessionId}
			}
		case sessionId := <-resetChan: // Reset() called
			if session, found := sessions[sessionId]; found {
				session.State = session.State.Reset()
				session.LastAccessTime = time.Now()
				sessions[sessionId] = session
				returnChan <- snapshot(session)
			} else {
				errorChan <- &NotFoundError{Id: sessionId}
			}
		case sessionId := <-getChan: // Get() called
			if session, found := sessions[sessionId]; found {
				session.LastAccessTime = time.Now()
				sessions[sessionId] = session
				returnChan <- snapshot(session)
			} else {
				errorChan <- &NotFoundError{Id: sessionId}
			}
		case sessionId := <-deleteChan: // Delete() called
			if session, found := sessions[sessionId]; found {
				delete(sessions, sessionId)
				returnChan <- snapshot(session)
				sessionJournal.Info("session deleted", "session", sessionId.String())
			} else {
				errorChan <- &NotFoundError{Id: sessionId}
			}
		case <-pollChan: // time to purge idle sessions
			for sessionId, session := range sessions {
				if time.Since(session.LastAccessTime) > purgeAfter {
					slog.Debug(fmt.Sprintf("Session %s: purging idle session",
						sessionId.String()))
					delete(sessions, sessionId)
					sessionJournal.Info("session expired", "session", sessionId.String())
				}
			}
		case <-stopChan: // Stop() called
			errorChan <- nil
			running = false
		}
	}
}

// this function sends a regular pulse on its poll channel until the global
// variable running is found to be false
func heartbeat(pollInterval time.Duration, pollChan chan<- struct{}) {
	for running {
		time.Sleep(pollInterval)
		if running {
			select {
			case pollChan <- struct{}{}:
			default:
			}
		}
	}
}
