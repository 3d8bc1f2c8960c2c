package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crosswarped.com/hexword"
	"crosswarped.com/hexword/internal/puzzle"
)

type SolveCrosswordRequest struct {
	Builtin    string          `json:"builtin,omitempty"`
	Puzzle     json.RawMessage `json:"puzzle,omitempty"`
	PuzzleID   string          `json:"puzzleId,omitempty"`
	CrossCheck bool            `json:"crossCheck,omitempty"`
}

type SolveCrosswordResponse struct {
	Success bool                 `json:"success"`
	Outcome string               `json:"outcome,omitempty"`
	Lines   []hexword.LineResult `json:"lines,omitempty"`
	Grid    []string             `json:"grid,omitempty"`
	Error   string               `json:"error,omitempty"`
}

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

var errSource = errors.New("exactly one of builtin, puzzle and puzzleId must be set")

// getPuzzle loads a stored puzzle by id. Replaced in tests.
var getPuzzle = func(ctx context.Context, id string) (*puzzle.File, error) {
	store, err := puzzle.NewStore(ctx, os.Getenv("GOOGLE_CLOUD_PROJECT"), os.Getenv("HEXWORD_PUZZLE_TABLE"))
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Get(ctx, id)
}

func loadRequested(ctx context.Context, req SolveCrosswordRequest) (*puzzle.File, error) {
	sources := 0
	for _, set := range []bool{req.Builtin != "", len(req.Puzzle) > 0, req.PuzzleID != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, errSource
	}

	switch {
	case req.Builtin != "":
		return puzzle.Builtin(req.Builtin)
	case req.PuzzleID != "":
		f, err := getPuzzle(ctx, req.PuzzleID)
		if err != nil {
			return nil, fmt.Errorf("getPuzzle: %w", err)
		}
		return f, nil
	default:
		return puzzle.Parse(req.Puzzle, puzzle.JSON)
	}
}

func execute(ctx context.Context, req SolveCrosswordRequest) (*hexword.Result, error) {
	f, err := loadRequested(ctx, req)
	if err != nil {
		return nil, err
	}
	cw, err := f.Build()
	if err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		logger.Info("setting timeout", slog.Duration("timeout", timeout))
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	solver := hexword.NewSolver(hexword.WithLogger(logger.With(slog.String("puzzle", f.Name))))
	result, err := solver.Solve(ctx, cw)
	if err != nil {
		return nil, err
	}
	if req.CrossCheck {
		result = result.CrossCheck()
	}
	return result, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solveCrossword(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveCrosswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request body", slog.Any("error", err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveCrosswordResponse{
			Error: fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	result, err := execute(r.Context(), req)
	if err != nil {
		logger.Warn("solve failed", slog.Any("error", err))
		w.WriteHeader(statusFor(err))
		json.NewEncoder(w).Encode(SolveCrosswordResponse{Error: err.Error()})
		return
	}

	response := SolveCrosswordResponse{
		Success: true,
		Outcome: result.Outcome(),
		Lines:   slices.Collect(result.Lines()),
		Grid:    strings.Split(result.Repr(), "\n"),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("encode response", slog.Any("error", err))
	}
}

// statusFor maps request problems to 4xx and everything else, such as a
// failing puzzle store, to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, puzzle.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, errSource), errors.Is(err, puzzle.ErrInvalid), errors.Is(err, hexword.ErrConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func main() {
	funcframework.RegisterHTTPFunction("/solve-crossword", solveCrossword)
	funcframework.RegisterHTTPFunction("/metrics", promhttp.Handler().ServeHTTP)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
