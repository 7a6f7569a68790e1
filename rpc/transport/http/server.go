package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/serializer"
	"github.com/ValentinKolb/kvql/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/http")

// HeaderRequestID carries the id of a request. Clients may set it, the
// server generates one otherwise and always echoes it.
const HeaderRequestID = "X-Request-Id"

// shutdownTimeout is how long Listen waits for running requests once its
// context is canceled.
const shutdownTimeout = 5 * time.Second

func NewHttpServerTransport() transport.IRPCServerTransport {
	return &httpServerTransport{}
}

// NewHandler returns the handler served by the transport, for mounting the
// query api into another http server.
func NewHandler(handler transport.ServerHandleFunc, config common.ServerConfig) http.Handler {
	t := &httpServerTransport{handler: handler, config: config}
	return t.routes()
}

type httpServerTransport struct {
	handler transport.ServerHandleFunc
	config  common.ServerConfig
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	server := &http.Server{
		Addr:              config.Endpoint,
		Handler:           t.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shut down once the context is done
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			Logger.Errorf("failed to shut down HTTP server: %v", err)
		}
	}()

	Logger.Infof("Starting HTTP server on %s", config.Endpoint)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	Logger.Infof("HTTP server on %s stopped", config.Endpoint)
	return nil
}

// --------------------------------------------------------------------------
// Routes
// --------------------------------------------------------------------------

// routes builds the handler of the server:
//
//	POST /query    body: raw command line, answer: encoded result
//	GET  /metrics  prometheus text format
//	GET  /health   liveness probe
func (t *httpServerTransport) routes() http.Handler {
	mux := http.NewServeMux()

	query := requestIDMiddleware(t.handleQuery)
	if t.config.LogLevel == "debug" {
		query = loggerMiddleware(query)
	}
	mux.HandleFunc("POST /query", query)
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok\n")
	})

	return mux
}

// handleQuery executes the command line in the request body and writes the
// result encoded as requested by the Accept header
func (t *httpServerTransport) handleQuery(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get(HeaderRequestID)
	s := serializer.ForAccept(r.Header.Get("Accept"))

	// Read request body
	body := io.Reader(r.Body)
	if t.config.MaxQueryBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, t.config.MaxQueryBytes)
	}
	raw, err := io.ReadAll(body)
	defer r.Body.Close()

	// Check if body could be read
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			t.writeError(w, s, http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Kind: common.ErrKParse.String(), Error: "query too large", RequestID: requestID,
			})
			return
		}
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	if t.config.TimeoutSecond > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(t.config.TimeoutSecond)*time.Second)
		defer cancel()
	}

	// Execute the query
	res, err := t.handler(ctx, string(raw))
	if err != nil {
		resp := common.NewErrorResponse(err, requestID)
		t.writeError(w, s, StatusFor(common.ClassifyError(err)), resp)
		return
	}

	data, err := s.Serialize(res)
	if err != nil {
		Logger.Errorf("request %s: failed to encode result: %v", requestID, err)
		t.writeError(w, s, http.StatusInternalServerError, common.NewErrorResponse(err, requestID))
		return
	}
	t.write(w, s.ContentType(), http.StatusOK, data)
}

func (t *httpServerTransport) writeError(w http.ResponseWriter, s serializer.IResultSerializer, status int, resp common.ErrorResponse) {
	data, err := s.SerializeError(resp)
	if err != nil {
		http.Error(w, resp.Error, status)
		return
	}
	t.write(w, s.ContentType(), status, data)
}

func (t *httpServerTransport) write(w http.ResponseWriter, contentType string, status int, data []byte) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`kvql_http_responses_total{status="%d"}`, status)).Inc()
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		Logger.Warningf("failed to write response: %v", err)
	}
}

// StatusFor maps an error kind onto the HTTP status of the response.
func StatusFor(kind common.ErrorKind) int {
	switch kind {
	case common.ErrKParse:
		return http.StatusBadRequest
	case common.ErrKUnsupported, common.ErrKSyntax, common.ErrKCommand:
		return http.StatusUnprocessableEntity
	case common.ErrKTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// --------------------------------------------------------------------------
// Middleware (request ids, logging)
// --------------------------------------------------------------------------

// requestIDMiddleware makes sure every request has an id and echoes it
func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	}
}

// responseWriter is a custom ResponseWriter that captures status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create custom response writer to capture status code
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		// Process request
		next.ServeHTTP(rw, r)

		// Log the request
		duration := time.Since(start)
		Logger.Debugf("%s %s [%s] => %d took %s", r.Method, r.URL.Path, rw.Header().Get(HeaderRequestID), rw.statusCode, duration)
	}
}
