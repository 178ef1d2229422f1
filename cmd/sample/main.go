// Command sample demonstrates ward on a chi router with a small users API.
//
// Run:
//
//	go run ./cmd/sample
//
// Then explore:
//
//	GET    http://localhost:8080/users                 — list users
//	POST   http://localhost:8080/users                 — create user (validated body)
//	GET    http://localhost:8080/users/{id}            — get user (validated UUID param)
//	DELETE http://localhost:8080/users/{id}            — delete user
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wardhttp/ward"
	"github.com/wardhttp/ward/chiward"
	"github.com/wardhttp/ward/playground"
	"github.com/wardhttp/ward/schema"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	r := chi.NewRouter()
	r.Use(ward.RequestID())
	r.Use(ward.Logger(logger))
	r.Use(ward.Recovery(logger))
	r.Use(ward.RateLimit(ward.RateLimitConfig{Rate: 50, Burst: 100}))

	// One template per validation engine; routes derive from these.
	base := ward.New(
		ward.WithParamSource(chiward.ParamSource()),
		ward.WithLogger(logger),
	)
	typed := ward.New(
		ward.WithParamSource(chiward.ParamSource()),
		ward.WithAdapter(playground.New()),
		ward.WithLogger(logger),
	)

	idParams := schema.Object(schema.Field("id", schema.UUID()).Required())
	listQuery := schema.Object(
		schema.Field("role", schema.String().Enum("admin", "member")),
		schema.Field("limit", schema.Int().Min(1).Max(100)).Default(int64(50)),
	)

	r.Get("/users", base.Query(listQuery).Handler(handleList))
	r.Post("/users", typed.Body(createUserBody{}).Use(requestMeta).Handler(handleCreate))
	r.Get("/users/{id}", base.Params(idParams).Handler(handleGet))
	r.Delete("/users/{id}", base.Params(idParams).Handler(handleDelete))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", srv.Addr).Msg("starting server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}

	logger.Info().Msg("server stopped")
}

// requestMeta records when the request entered the pipeline.
func requestMeta(_ context.Context, r *http.Request) (map[string]any, error) {
	return map[string]any{
		"received_at": time.Now().UTC(),
		"request_id":  ward.GetRequestID(r),
	}, nil
}

// createUserBody is validated by the playground adapter.
type createUserBody struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin member"`
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func handleList(_ context.Context, req *ward.Request) (any, error) {
	q := req.Query.(map[string]any)

	role, _ := q["role"].(string)
	limit := q["limit"].(int64)

	users := store.list(role, int(limit))
	return map[string]any{"users": users, "total": len(users)}, nil
}

func handleCreate(_ context.Context, req *ward.Request) (any, error) {
	body := req.Body.(*createUserBody)

	role := body.Role
	if role == "" {
		role = "member"
	}

	user := store.create(body.Name, body.Email, role)
	return &createdUser{User: user}, nil
}

func handleGet(_ context.Context, req *ward.Request) (any, error) {
	params := req.Params.(map[string]any)
	id := params["id"].(string)

	user, ok := store.get(id)
	if !ok {
		return nil, ward.Errorf(http.StatusNotFound, "user %s not found", id)
	}
	return user, nil
}

func handleDelete(_ context.Context, req *ward.Request) (any, error) {
	params := req.Params.(map[string]any)
	id := params["id"].(string)

	if !store.delete(id) {
		return nil, ward.Errorf(http.StatusNotFound, "user %s not found", id)
	}
	return nil, nil
}

// createdUser wraps a User to answer 201 instead of the default 200.
type createdUser struct {
	*User
}

func (*createdUser) StatusCode() int { return http.StatusCreated }

// ---------------------------------------------------------------------------
// In-memory store
// ---------------------------------------------------------------------------

// User is the demo domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

var store = &userStore{users: map[string]*User{}}

type userStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func (s *userStore) list(role string, limit int) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *userStore) create(name, email, role string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u

	cp := *u
	return &cp
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
