package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"qa-triage-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Failure triage webhook
	failureHandler interface {
		HandleFailure(c *gin.Context)
	}

	// Slack interactivity
	interactHandler interface {
		HandleInteraction(c *gin.Context)
	}

	// PRD parsing
	prdHandler interface {
		HandleParse(c *gin.Context)
	}
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Failure triage webhook
	FailureHandler interface {
		HandleFailure(c *gin.Context)
	}

	// Slack interactivity
	InteractHandler interface {
		HandleInteraction(c *gin.Context)
	}

	// PRD parsing
	PRDHandler interface {
		HandleParse(c *gin.Context)
	}
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		failureHandler:  cfg.FailureHandler,
		interactHandler: cfg.InteractHandler,
		prdHandler:      cfg.PRDHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
