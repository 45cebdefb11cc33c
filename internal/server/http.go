package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tactics-sim/internal/network"
	"tactics-sim/internal/version"
	"tactics-sim/pkg/api"
	"tactics-sim/pkg/logger"
)

type Server struct {
	Match *Match
	Hub   *network.Broadcaster
	Port  string
}

func New(match *Match, hub *network.Broadcaster, port string) *Server {
	return &Server{
		Match: match,
		Hub:   hub,
		Port:  port,
	}
}

// Router собирает все роуты. Вынесен отдельно, чтобы тесты могли поднять httptest.Server.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/replay", s.handleReplay).Methods(http.MethodGet)

	debugHandler := NewDebugHandler(s.Match)
	debugHandler.RegisterRoutes(r.PathPrefix("/debug").Subrouter())

	return r
}

// Run запускает HTTP сервер и гасит его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Battle spectator server running on :%s", s.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Log.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next.ServeHTTP(w, r)
	})
}

// handleWS подключает зрителя
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Hub, conn)
	logger.Log.WithField("spectator", client.ID).Info("Spectator connected")

	// Текущее состояние, чтобы позднему зрителю было что рисовать
	snap := s.Match.Snapshot()
	state := api.ServerMessage{Type: api.MsgState, Stats: &snap.Stats, Winner: snap.Winner}
	state.Units = append(append(state.Units, snap.ArmyA...), snap.ArmyB...)
	s.Hub.SendTo(client.ID, state)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, version.Info())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Match.Snapshot().Stats)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Match.Export())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}
