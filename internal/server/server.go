// Package server exposes the outfit analysis HTTP API.
package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/garb/internal/colour"
	"github.com/jmylchreest/garb/internal/config"
	garbimage "github.com/jmylchreest/garb/internal/image"
	"github.com/jmylchreest/garb/internal/rules"
	"github.com/jmylchreest/garb/internal/style"
)

// Options configures a Server.
type Options struct {
	// Config provides runtime settings; nil means config.Default().
	Config *config.Config

	// Logger receives request and error logs; nil means a null logger.
	Logger hclog.Logger

	// Recognizer identifies garment styles in uploaded images. When nil,
	// analysis runs without style recognition.
	Recognizer style.Recognizer
}

// Server hosts the REST API for uploads, analysis, recommendations and
// wardrobe management.
type Server struct {
	cfg        *config.Config
	logger     hclog.Logger
	loader     *garbimage.FileLoader
	extractor  colour.Extractor
	evaluator  *rules.Evaluator
	recognizer style.Recognizer
	methods    map[string]RestMethod
}

// New creates a Server, applying any rule overrides from the config.
func New(opts Options) (*Server, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	extractor, err := colour.NewExtractor(colour.AlgorithmKMeans)
	if err != nil {
		return nil, err
	}

	library := rules.NewLibrary()
	if err := cfg.ConfigureRules(library); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Wardrobe.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create wardrobe directory: %w", err)
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		loader:     garbimage.NewFileLoader(),
		extractor:  extractor,
		evaluator:  rules.NewEvaluator(library),
		recognizer: opts.Recognizer,
		methods:    make(map[string]RestMethod),
	}, nil
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() (*gin.Engine, error) {
	router := gin.New()
	router.Use(s.requestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		s.logger.Error("panic recovered", "error", err)
		errorResponse(c, http.StatusInternalServerError, "internal server error")
	}))

	// Register the REST methods served under /api/v1.
	if err := s.registerMethod(POST, "/upload", s.handleUpload); err != nil {
		return nil, err
	}
	if err := s.registerMethod(POST, "/analyze", s.handleAnalyze); err != nil {
		return nil, err
	}
	if err := s.registerMethod(GET, "/recommend", s.handleRecommend); err != nil {
		return nil, err
	}
	if err := s.registerMethod(GET, "/wardrobe", s.handleWardrobe); err != nil {
		return nil, err
	}
	if err := s.registerMethod(GET_ONE, "/wardrobe/export", s.handleWardrobeExport); err != nil {
		return nil, err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type"}

	v1 := router.Group("/api/v1")
	v1.Use(cors.New(corsConfig))
	{
		for _, rm := range s.restMethods() {
			switch rm.Verb {
			case GET:
				fallthrough
			case GET_ONE:
				v1.GET(rm.Path, rm.Handler)
			case DELETE:
				v1.DELETE(rm.Path, rm.Handler)
			case POST:
				v1.POST(rm.Path, rm.Handler)
			case PUT:
				v1.PUT(rm.Path, rm.Handler)
			case PATCH:
				v1.PATCH(rm.Path, rm.Handler)
			default:
				return nil, fmt.Errorf("HTTP verb %d not supported", rm.Verb)
			}
		}
	}

	// Uploaded images are served outside the API group.
	router.GET("/images/uploads/:filename", s.handleImage)
	router.GET("/healthz", s.handleHealthz)

	router.NoRoute(func(c *gin.Context) {
		errorResponse(c, http.StatusNotFound, "not found")
	})

	return router, nil
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	s.logger.Info("starting server", "addr", s.cfg.Addr(), "wardrobe", s.cfg.Wardrobe.Dir)
	return router.Run(s.cfg.Addr())
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
