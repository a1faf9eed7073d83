// Command huntglitch-demo runs a small web application with HuntGlitch
// error reporting wired in: a panic-recovery middleware on every route, a
// manual SendLog call and a wrapped function. Configuration is read from
// config.yaml when present, otherwise from the environment. Run
// huntglitch-devserver in another terminal to see the reports arrive.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	huntglitch "github.com/itpathsolutions/huntglitch-go"
)

func main() {
	logger, err := newLogger("config.yaml")
	if err != nil {
		log.Fatal("Error configuring HuntGlitch:", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(logger.Middleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Try /panic, /error or /event")
	})

	// Panics are caught by the middleware, reported and answered with 500.
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("demo panic from /panic")
	})

	// Errors returned from wrapped functions are reported and propagated.
	r.Get("/error", func(w http.ResponseWriter, r *http.Request) {
		fail := logger.WrapFunc(func() error {
			return errors.New("demo error from /error")
		})
		if err := fail(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintln(w, "no error")
	})

	// Manual event without an actual error.
	r.Get("/event", func(w http.ResponseWriter, r *http.Request) {
		out, err := logger.SendLog("CustomEvent", "user login attempt failed", "huntglitch-demo.go", 0,
			huntglitch.SeverityWarning,
			map[string]any{"username": "john_doe", "attempt_count": 3},
			map[string]string{"environment": "demo"})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, "delivered=%t attempts=%d\n", out.Delivered, out.Attempts)
	})

	fmt.Println("Demo app starting on :8312")
	fmt.Printf("Reporting to %s\n", logger.Config().Endpoint)
	log.Fatal(http.ListenAndServe(":8312", r))
}

// newLogger builds a Logger from config.yaml, falling back to the
// environment when the file is missing.
func newLogger(filename string) (*huntglitch.Logger, error) {
	if _, err := os.Stat(filename); err == nil {
		cfg, err := huntglitch.LoadConfig(filename)
		if err != nil {
			return nil, err
		}
		return huntglitch.New(*cfg)
	}
	return huntglitch.NewFromEnv()
}
