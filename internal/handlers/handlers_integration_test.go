package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"pokedex/internal/app"
	"pokedex/internal/database"
	"pokedex/internal/events"
	"pokedex/internal/repositories"
	"pokedex/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CatalogEvent
}

func (p *recordingPublisher) PublishCatalogEvent(_ context.Context, e events.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) actions(resource string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		if e.Resource == resource {
			out = append(out, e.Action)
		}
	}
	return out
}

type testEnv struct {
	app         *fiber.App
	db          *gorm.DB
	authService *services.AuthService
	publisher   *recordingPublisher
	// now overrides the token clock when non-zero.
	now time.Time
}

// setupApp builds the full application over a fresh in-memory SQLite database.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, database.DriverSQLite))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	seedCatalog(t, db)

	env := &testEnv{db: db, publisher: &recordingPublisher{}}
	env.authService = services.NewAuthService(repositories.NewGORMUserRepository(db), testJWTSecret, time.Hour).
		WithClock(func() time.Time {
			if env.now.IsZero() {
				return time.Now()
			}
			return env.now
		})
	env.app = app.New(db, env.authService, env.publisher, io.Discard)
	return env
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO pokemon (id, identifier, species_id, height, weight, base_experience, "order", is_default)
		 VALUES (1, 'bulbasaur', 1, 7, 69, 64, 1, 1), (2, 'ivysaur', 2, 10, 130, 142, 2, 1)`,
		`INSERT INTO types (id, identifier, generation_id, damage_class_id) VALUES (12, 'grass', 1, 3), (4, 'poison', 1, 2)`,
		`INSERT INTO pokemon_types (pokemon_id, type_id, slot) VALUES (1, 12, 1), (1, 4, 2)`,
		`INSERT INTO moves (id, identifier, generation_id, type_id, power, pp, accuracy, priority, target_id, damage_class_id, effect_id)
		 VALUES (22, 'vine-whip', 1, 12, 45, 25, 100, 0, 10, 2, 1), (33, 'tackle', 1, 1, 40, 35, 100, 0, 10, 2, 1)`,
		`INSERT INTO pokemon_moves (pokemon_id, move_id, level) VALUES (1, 33, 1), (1, 22, 3), (1, 22, 7)`,
		`INSERT INTO egg_groups (id, identifier) VALUES (1, 'monster'), (7, 'plant')`,
		`INSERT INTO pokemon_egg_groups (species_id, egg_group_id) VALUES (1, 1), (1, 7)`,
		`INSERT INTO items (id, identifier, category_id, cost, fling_power, fling_effect_id) VALUES (17, 'potion', 27, 200, 30, NULL)`,
	}
	for _, s := range stmts {
		require.NoError(t, db.Exec(s).Error)
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(data)
		}
		reader = bytes.NewReader([]byte(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func (env *testEnv) register(t *testing.T, username, email, password string) string {
	t.Helper()
	resp, data := env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": username, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	return decode(t, data)["token"].(string)
}

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestCreatureRoutesRequireToken(t *testing.T) {
	env := setupApp(t)

	for _, path := range []string{"/api/pokemons", "/api/pokemons/1", "/api/pokemons/1/types"} {
		resp, data := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Authentication token required", decode(t, data)["error"])
	}

	resp, data := env.do(t, http.MethodGet, "/api/pokemons", nil, "garbage")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", decode(t, data)["error"])

	// Catalog routes outside /pokemons stay public.
	resp, _ = env.do(t, http.MethodGet, "/api/moves", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreatureLookups(t *testing.T) {
	env := setupApp(t)
	token := env.register(t, "ash", "ash@example.com", "pikachu")

	resp, data := env.do(t, http.MethodGet, "/api/pokemons", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var creatures []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &creatures))
	assert.Len(t, creatures, 2)

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	creature := decode(t, data)
	assert.Equal(t, "bulbasaur", creature["identifier"])
	assert.Equal(t, float64(64), creature["base_experience"])

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/1/types", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":12,"identifier":"grass"},{"id":4,"identifier":"poison"}]`, string(data))

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/1/moves", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":22,"identifier":"vine-whip"},{"id":33,"identifier":"tackle"}]`, string(data))

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/1/egg-groups", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"identifier":"monster"},{"id":7,"identifier":"plant"}]`, string(data))

	// ivysaur exists but has no associations seeded.
	for _, path := range []string{"/api/pokemons/2/types", "/api/pokemons/2/moves", "/api/pokemons/2/egg-groups"} {
		resp, _ = env.do(t, http.MethodGet, path, nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/999", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Creature not found", decode(t, data)["error"])

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid ID", decode(t, data)["error"])

	resp, _ = env.do(t, http.MethodGet, "/api/pokemons/abc/types", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTokenExpiry(t *testing.T) {
	env := setupApp(t)
	issuedAt := time.Now().Add(-2 * time.Hour)

	env.now = issuedAt
	token := env.register(t, "ash", "ash@example.com", "pikachu")

	env.now = issuedAt.Add(59 * time.Minute)
	resp, _ := env.do(t, http.MethodGet, "/api/pokemons/1", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env.now = issuedAt.Add(61 * time.Minute)
	resp, data := env.do(t, http.MethodGet, "/api/pokemons/1", nil, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", decode(t, data)["error"])
}

func TestItemEndpoints(t *testing.T) {
	env := setupApp(t)

	resp, data := env.do(t, http.MethodGet, "/api/items/17", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":17,"identifier":"potion","category_id":27,"cost":200,"fling_power":30,"fling_effect_id":null}`, string(data))

	// Fling fields omitted are stored as NULL; a zero cost is allowed.
	resp, data = env.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"identifier": "poke-ball", "category_id": 34, "cost": 0,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decode(t, data)
	id := int64(created["id"].(float64))
	assert.NotZero(t, id)
	assert.Nil(t, created["fling_power"])
	assert.Nil(t, created["fling_effect_id"])
	assert.Contains(t, created, "fling_power")

	itemPath := fmt.Sprintf("/api/items/%d", id)
	resp, data = env.do(t, http.MethodGet, itemPath, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode(t, data)["fling_effect_id"])

	resp, data = env.do(t, http.MethodPut, itemPath, map[string]interface{}{
		"identifier": "great-ball", "category_id": 34, "cost": 600, "fling_power": 0,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"identifier":"great-ball","category_id":34,"cost":600,"fling_power":0,"fling_effect_id":null}`, id), string(data))

	resp, data = env.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"identifier": "broken", "category_id": 1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, data)
	assert.Equal(t, "Missing or invalid fields", body["error"])
	assert.Equal(t, map[string]interface{}{"cost": "required"}, body["fields"])

	resp, _ = env.do(t, http.MethodPost, "/api/items", `{"identifier": "x", "category_id": "one", "cost": 1}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = env.do(t, http.MethodDelete, itemPath, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, data)

	resp, _ = env.do(t, http.MethodGet, itemPath, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = env.do(t, http.MethodDelete, itemPath, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found", decode(t, data)["error"])

	resp, _ = env.do(t, http.MethodPut, itemPath, map[string]interface{}{
		"identifier": "ghost", "category_id": 1, "cost": 1,
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, []string{events.ActionCreated, events.ActionUpdated, events.ActionDeleted}, env.publisher.actions("items"))
}

func fullMove() map[string]interface{} {
	return map[string]interface{}{
		"identifier": "leech-seed", "generation_id": 1, "type_id": 12,
		"power": nil, "pp": 10, "accuracy": 90, "priority": 0,
		"target_id": 10, "damage_class_id": 1, "effect_id": 85,
		"effect_chance": nil, "contest_type_id": 5, "contest_effect_id": nil,
		"super_contest_effect_id": nil,
	}
}

func TestMoveEndpoints(t *testing.T) {
	env := setupApp(t)

	resp, data := env.do(t, http.MethodPost, "/api/moves", fullMove(), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decode(t, data)
	assert.Nil(t, created["power"])
	assert.Equal(t, float64(10), created["pp"])
	assert.Equal(t, float64(0), created["priority"])
	id := int64(created["id"].(float64))

	missing := fullMove()
	delete(missing, "power")
	delete(missing, "generation_id")
	resp, data = env.do(t, http.MethodPost, "/api/moves", missing, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"power": "required", "generation_id": "required"}, decode(t, data)["fields"])

	nullRequired := fullMove()
	nullRequired["effect_id"] = nil
	resp, data = env.do(t, http.MethodPost, "/api/moves", nullRequired, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"effect_id": "required"}, decode(t, data)["fields"])

	update := fullMove()
	update["power"] = 20
	resp, data = env.do(t, http.MethodPut, fmt.Sprintf("/api/moves/%d", id), update, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, float64(20), decode(t, data)["power"])

	resp, data = env.do(t, http.MethodPut, "/api/moves/4040", update, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Move not found", decode(t, data)["error"])

	resp, _ = env.do(t, http.MethodPut, "/api/moves/abc", update, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = env.do(t, http.MethodGet, "/api/moves", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moves []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &moves))
	assert.Len(t, moves, 3)
}

func TestTypeEndpoints(t *testing.T) {
	env := setupApp(t)

	resp, data := env.do(t, http.MethodPost, "/api/types", map[string]interface{}{
		"identifier": "fairy", "generation_id": 6, "damage_class_id": 3,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	id := int64(decode(t, data)["id"].(float64))

	resp, data = env.do(t, http.MethodPost, "/api/types", map[string]interface{}{
		"identifier": "", "generation_id": 0, "damage_class_id": 3,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"identifier": "required", "generation_id": "required"}, decode(t, data)["fields"])

	resp, data = env.do(t, http.MethodPut, fmt.Sprintf("/api/types/%d", id), map[string]interface{}{
		"identifier": "fae", "generation_id": 6, "damage_class_id": 3,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"identifier":"fae","generation_id":6,"damage_class_id":3}`, id), string(data))

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/types/%d", id), nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/types/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/types/x1", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserRegisterLoginAndMe(t *testing.T) {
	env := setupApp(t)

	resp, data := env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "ash", "email": "ash@example.com", "password": "pikachu",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decode(t, data)
	assert.Equal(t, "User registered successfully", registered["message"])
	assert.NotEmpty(t, registered["token"])
	user := registered["user"].(map[string]interface{})
	assert.Equal(t, "ash", user["username"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	resp, data = env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "ash2", "email": "ash@example.com", "password": "x",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already in use", decode(t, data)["error"])

	resp, data = env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "ash", "email": "other@example.com", "password": "x",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already taken", decode(t, data)["error"])

	resp, data = env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "brock", "email": "brock@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are required", decode(t, data)["error"])

	resp, data = env.do(t, http.MethodPost, "/api/users/login", map[string]string{"email": "ash@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email and password are required", decode(t, data)["error"])

	resp, wrongPassword := env.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "ash@example.com", "password": "raichu",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, unknownEmail := env.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "misty@example.com", "password": "pikachu",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, string(wrongPassword), string(unknownEmail))

	resp, data = env.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "ash@example.com", "password": "pikachu",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decode(t, data)
	assert.Equal(t, "Login successful", loggedIn["message"])
	token := loggedIn["token"].(string)

	claims, err := env.authService.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ash@example.com", claims.Email)

	resp, data = env.do(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode(t, data)
	assert.Equal(t, "ash", me["username"])
	assert.NotContains(t, me, "password_hash")

	resp, _ = env.do(t, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ok, err := repositories.NewGORMUserRepository(env.db).Delete(context.Background(), claims.UserID)
	require.NoError(t, err)
	require.True(t, ok)

	resp, data = env.do(t, http.MethodGet, "/api/users/me", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", decode(t, data)["error"])
}

func TestStorageFailureIsGeneric500(t *testing.T) {
	env := setupApp(t)
	token := env.register(t, "ash", "ash@example.com", "pikachu")
	const internal = `{"error":"Internal server error"}`

	require.NoError(t, env.db.Exec("DROP TABLE items").Error)

	resp, data := env.do(t, http.MethodGet, "/api/items", nil, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, internal, string(data))
	assert.NotContains(t, string(data), "no such table")

	resp, data = env.do(t, http.MethodPut, "/api/items/17", map[string]interface{}{
		"identifier": "potion", "category_id": 27, "cost": 200,
	}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, internal, string(data))

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, data = env.do(t, http.MethodGet, "/api/pokemons/1/types", nil, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, internal, string(data))

	resp, data = env.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "ash@example.com", "password": "pikachu",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, internal, string(data))

	resp, data = env.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "misty", "email": "misty@example.com", "password": "staryu",
	}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, internal, string(data))
}
