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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/esciencelab/mdw/config"
)

// Version numbers
var majorVersion = 0
var minorVersion = 1
var patchVersion = 0

// Version string
var version = fmt.Sprintf("%d.%d.%d", majorVersion, minorVersion, patchVersion)

// This type implements the WizardService interface, serving metadata entry
// sessions over a REST API.
type prototype struct {
	// name of the service
	Name string
	// service version identifier
	Version string
	// time which the service was started
	StartTime time.Time
	// port on which the service currently runs
	Port int
	// router for REST endpoints
	Router *mux.Router
	// API wrapper
	API huma.API
	// HTTP server.
	Server *http.Server
}

type ServiceInfoOutput struct {
	Body ServiceInfoResponse `doc:"information about the service itself"`
}

// handler method for root
func (service *prototype) getRoot(ctx context.Context,
	input *struct{}) (*ServiceInfoOutput, error) {

	slog.Info("Querying root endpoint...")
	return &ServiceInfoOutput{
		Body: ServiceInfoResponse{
			Name:          service.Name,
			Version:       service.Version,
			Uptime:        int(service.uptime()),
			Documentation: "/docs",
		},
	}, nil
}

type SessionOutput struct {
	Body   SessionResponse `doc:"The current state of the wizard session"`
	Status int
}

// maps a session manager error to the proper HTTP error
func asHttpError(err error) error {
	var notFound *NotFoundError
	var completed *SessionCompletedError
	switch {
	case errors.As(err, &notFound):
		return huma.Error404NotFound(err.Error())
	case errors.As(err, &completed):
		return huma.Error409Conflict(err.Error())
	default:
		return err
	}
}

// packs a session snapshot into a response body
func sessionResponse(session Session) SessionResponse {
	return SessionResponse{
		Id:     session.Id.String(),
		Step:   string(session.Step),
		Schema: session.Schema,
		Result: session.Result,
	}
}

// handler method for creating a new wizard session
func (service *prototype) createSession(ctx context.Context,
	input *struct{}) (*SessionOutput, error) {

	session, err := Create()
	if err != nil {
		return nil, asHttpError(err)
	}
	slog.Info(fmt.Sprintf("Created new wizard session %s", session.Id.String()))
	return &SessionOutput{
		Body:   sessionResponse(session),
		Status: http.StatusCreated,
	}, nil
}

// handler method for fetching the current state of a session
func (service *prototype) getSession(ctx context.Context,
	input *struct {
		Id uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the wizard session"`
	}) (*SessionOutput, error) {

	session, err := Get(input.Id)
	if err != nil {
		return nil, asHttpError(err)
	}
	return &SessionOutput{
		Body: sessionResponse(session),
	}, nil
}

// handler method for submitting the data of a session's current step
// NOTE: the body carries the submitted form data as an arbitrary JSON
// NOTE: value; its shape is validated downstream per the never-raise policy
func (service *prototype) submitStep(ctx context.Context,
	input *struct {
		Id          uuid.UUID       `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the wizard session"`
		Body        json.RawMessage `doc:"The form data submitted for the session's current step" contentType:"application/json"`
		ContentType string          `header:"Content-Type" doc:"Content-Type header (must be application/json)"`
	}) (*SessionOutput, error) {

	var data any
	if err := json.Unmarshal(input.Body, &data); err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	slog.Info(fmt.Sprintf("Session %s: received step data", input.Id.String()))
	session, err := Submit(input.Id, data)
	if err != nil {
		return nil, asHttpError(err)
	}
	return &SessionOutput{
		Body: sessionResponse(session),
	}, nil
}

// handler method for navigating a session to its previous step
func (service *prototype) goBack(ctx context.Context,
	input *struct {
		Id uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the wizard session"`
	}) (*SessionOutput, error) {

	session, err := Back(input.Id)
	if err != nil {
		return nil, asHttpError(err)
	}
	return &SessionOutput{
		Body: sessionResponse(session),
	}, nil
}

// handler method for resetting a session to the dataset step
func (service *prototype) resetSession(ctx context.Context,
	input *struct {
		Id uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the wizard session"`
	}) (*SessionOutput, error) {

	session, err := Reset(input.Id)
	if err != nil {
		return nil, asHttpError(err)
	}
	return &SessionOutput{
		Body: sessionResponse(session),
	}, nil
}

type SessionDeletionOutput struct {
	Status int
}

// handler method for discarding an existing session
func (service *prototype) deleteSession(ctx context.Context,
	input *struct {
		Id uuid.UUID `path:"id" example:"de9a2d6a-f5c9-4322-b8a7-8121d83fdfc2" doc:"the UUID for the wizard session"`
	}) (*SessionDeletionOutput, error) {

	err := Delete(input.Id)
	if err != nil {
		return nil, asHttpError(err)
	}
	return &SessionDeletionOutput{
		Status: http.StatusNoContent,
	}, nil
}

// returns the uptime for the service in seconds
func (service *prototype) uptime() float64 {
	return time.Since(service.StartTime).Seconds()
}

// constructs a prototype metadata wizard service given our configuration
func NewWizardPrototype() (WizardService, error) {
	service := new(prototype)
	service.Name = "Metadata wizard prototype"
	service.Version = version
	service.Port = -1

	// set up routing
	service.Router = mux.NewRouter()
	api := humamux.New(service.Router, huma.DefaultConfig(service.Name, service.Version))
	huma.Get(api, "/", service.getRoot)

	// API v1
	huma.Post(api, "/api/v1/sessions", service.createSession)
	huma.Get(api, "/api/v1/sessions/{id}", service.getSession)
	huma.Post(api, "/api/v1/sessions/{id}/submit", service.submitStep)
	huma.Post(api, "/api/v1/sessions/{id}/back", service.goBack)
	huma.Post(api, "/api/v1/sessions/{id}/reset", service.resetSession)
	huma.Delete(api, "/api/v1/sessions/{id}", service.deleteSession)

	return service, nil
}

// starts the prototype metadata wizard service
func (service *prototype) Start(port int) error {
	slog.Info(fmt.Sprintf("Starting %s service on port %d...", service.Name, port))
	slog.Info(fmt.Sprintf("(Accepting up to %d connections)", config.Service.MaxConnections))

	service.StartTime = time.Now()

	// create a listener that limits the number of incoming connections
	service.Port = port
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}
	defer listener.Close()
	listener = netutil.LimitListener(listener, config.Service.MaxConnections)

	// start session processing
	err = Start()
	if err != nil {
		return err
	}

	// start the server
	service.Server = &http.Server{
		Handler: service.Router}
	err = service.Server.Serve(listener)

	// we don't report the server closing as an error
	if err != http.ErrServerClosed {
		return err
	}
	return nil
}

// gracefully shuts down the service without interrupting active connections
func (service *prototype) Shutdown(ctx context.Context) error {
	Stop()
	if service.Server != nil {
		return service.Server.Shutdown(ctx)
	}
	return nil
}

// closes down the service abruptly, freeing all resources
func (service *prototype) Close() {
	Stop()
	if service.Server != nil {
		service.Server.Close()
	}
}
