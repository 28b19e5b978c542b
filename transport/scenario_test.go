package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/softglass/calculator-backend/application/auth"
	orderapp "github.com/softglass/calculator-backend/application/order"
	"github.com/softglass/calculator-backend/application/token"
	userapp "github.com/softglass/calculator-backend/application/user"
	"github.com/softglass/calculator-backend/model"
	redisrepo "github.com/softglass/calculator-backend/repository/redis"
	"github.com/softglass/calculator-backend/utils/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the user, order and tx repositories for end-to-end tests.
type memStore struct {
	mu     sync.Mutex
	users  []model.UserEntity
	orders []model.OrderEntity
	clock  time.Time
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) BeginTx(ctx context.Context) (*sqlx.Tx, error) { return &sqlx.Tx{}, nil }
func (m *memStore) CommitTx(tx *sqlx.Tx) error                    { return nil }
func (m *memStore) RollbackTx(tx *sqlx.Tx) error                  { return nil }

func (m *memStore) CreateTx(ctx context.Context, tx *sqlx.Tx, req *model.UserEntity) (*model.UserEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *req
	u.ID = uint64(len(m.users) + 1)
	u.CreatedAt = m.tick()
	m.users = append(m.users, u)
	return &u, nil
}

func (m *memStore) GetTx(ctx context.Context, tx *sqlx.Tx, filter *model.UserFilter) (*model.UserEntity, error) {
	return m.Get(ctx, filter)
}

func (m *memStore) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if (filter.ID != 0 && u.ID == filter.ID) || (filter.Email != "" && u.Email == filter.Email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memStore) Insert(ctx context.Context, req *model.InsertOrderItem) (*model.InsertedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := model.OrderEntity{
		ID:         uint64(len(m.orders) + 1),
		UserID:     req.UserID,
		OrderData:  req.OrderData,
		TotalPrice: req.TotalPrice,
		Status:     req.Status,
		CreatedAt:  m.tick(),
	}
	m.orders = append(m.orders, o)
	return &model.InsertedOrder{ID: o.ID, CreatedAt: o.CreatedAt}, nil
}

func (m *memStore) ListByUser(ctx context.Context, userID uint64) ([]model.OrderEntity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.OrderEntity{}
	for _, o := range m.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func newScenarioHandler(t *testing.T) (http.Handler, *memStore) {
	t.Helper()
	store := &memStore{clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	tokens := token.NewTokenService(testSecret)
	cfg := testTransportConfig()

	h := NewTransport(cfg, &RestHandler{
		UserApp:  userapp.NewUserApp(cfg, store, store, redisrepo.NewRepository(nil), password.SHA256Hasher{}, tokens),
		OrderApp: orderapp.NewOrderApp(cfg, store, nil),
		Gateway:  auth.NewGateway(tokens),
	})
	return h, store
}

func TestScenario_RegisterCreateList(t *testing.T) {
	h, store := newScenarioHandler(t)

	rec := doRequest(h, http.MethodPost, "/auth", `{"action":"register","email":"a@x.com","password":"secret1234"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var registered model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, uint64(1), registered.User.ID)
	assert.Equal(t, "a@x.com", registered.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	authHeader := map[string]string{"X-Auth-Token": registered.Token}

	rec = doRequest(h, http.MethodPost, "/orders", `{"order_data":{"item":"window"},"total_price":150.5}`, authHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		OrderID   uint64 `json:"order_id"`
		CreatedAt string `json:"created_at"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "new", created.Status)
	_, err := time.Parse(time.RFC3339, created.CreatedAt)
	assert.NoError(t, err)

	rec = doRequest(h, http.MethodGet, "/orders", "", authHeader)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Orders []struct {
			ID         uint64          `json:"id"`
			OrderData  json.RawMessage `json:"order_data"`
			TotalPrice float64         `json:"total_price"`
			Status     string          `json:"status"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, 150.5, listed.Orders[0].TotalPrice)
	assert.JSONEq(t, `{"item":"window"}`, string(listed.Orders[0].OrderData))
	assert.Len(t, store.orders, 1)
}

func TestScenario_DuplicateRegistrationKeepsOriginal(t *testing.T) {
	h, store := newScenarioHandler(t)

	rec := doRequest(h, http.MethodPost, "/auth", `{"action":"register","email":"a@x.com","password":"first"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h, http.MethodPost, "/auth", `{"action":"register","email":"a@x.com","password":"second"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Пользователь с таким email уже существует", errorBody(t, rec))
	require.Len(t, store.users, 1)

	rec = doRequest(h, http.MethodPost, "/auth", `{"action":"login","email":"a@x.com","password":"first"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(h, http.MethodPost, "/auth", `{"action":"login","email":"a@x.com","password":"second"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestScenario_OrdersAreOwnerScoped(t *testing.T) {
	h, _ := newScenarioHandler(t)

	register := func(email string) map[string]string {
		rec := doRequest(h, http.MethodPost, "/auth", `{"action":"register","email":"`+email+`","password":"pw"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var res model.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return map[string]string{"X-Auth-Token": res.Token}
	}
	alice := register("alice@x.com")
	bob := register("bob@x.com")

	for _, body := range []string{`{"order_data":{"n":1},"total_price":1}`, `{"order_data":{"n":2},"total_price":2}`} {
		rec := doRequest(h, http.MethodPost, "/orders", body, alice)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(h, http.MethodGet, "/orders", "", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orders":[]}`, rec.Body.String())

	rec = doRequest(h, http.MethodGet, "/orders", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed model.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Orders, 2)
	assert.Equal(t, 2.0, listed.Orders[0].TotalPrice)
	assert.Equal(t, 1.0, listed.Orders[1].TotalPrice)
}

func TestScenario_EmptyOrderPayloadRejected(t *testing.T) {
	h, store := newScenarioHandler(t)
	rec := doRequest(h, http.MethodPost, "/auth", `{"action":"register","email":"a@x.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var res model.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	for _, body := range []string{`{}`, `{"order_data":null}`, `{"order_data":{}}`, `{"order_data":[]}`} {
		rec := doRequest(h, http.MethodPost, "/orders", body, map[string]string{"X-Auth-Token": res.Token})
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Данные заказа обязательны", errorBody(t, rec), body)
	}
	assert.Empty(t, store.orders)
}

func TestServeEvent(t *testing.T) {
	h, _ := newScenarioHandler(t)
	ctx := context.Background()

	res := ServeEvent(ctx, h, "", Event{
		HTTPMethod: http.MethodPost,
		Path:       "/auth",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"action":"register","email":"ev@x.com","password":"pw"}`,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.Equal(t, "application/json", res.Headers["Content-Type"])
	var registered model.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(res.Body), &registered))

	res = ServeEvent(ctx, h, "", Event{
		HTTPMethod: http.MethodGet,
		Path:       "/auth",
		Headers:    map[string]string{"x-auth-token": registered.Token},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"user":{"id":1,"email":"ev@x.com","full_name":null,"phone":null}}`, res.Body)

	res = ServeEvent(ctx, h, "", Event{HTTPMethod: http.MethodOptions, Path: "/orders"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Body)
	assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])

	res = ServeEvent(ctx, h, "", Event{HTTPMethod: http.MethodPost, Path: "/auth", Body: "%%%", IsBase64Encoded: true})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServeEvent_BoundRoute(t *testing.T) {
	h, store := newScenarioHandler(t)
	ctx := context.Background()

	res := ServeEvent(ctx, h, "/auth", Event{
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"action":"register","email":"fn@x.com","password":"pw"}`,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	require.Len(t, store.users, 1)
	var registered model.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(res.Body), &registered))

	res = ServeEvent(ctx, h, "/orders", Event{
		HTTPMethod: http.MethodGet,
		Headers:    map[string]string{"X-Auth-Token": registered.Token},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"orders":[]}`, res.Body)

	// an explicit path wins over the bound route
	res = ServeEvent(ctx, h, "/orders", Event{HTTPMethod: http.MethodGet, Path: "/healthz"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body)
}

func TestServeEvent_UnboundPathIsJSONNotFound(t *testing.T) {
	h, _ := newScenarioHandler(t)

	res := ServeEvent(context.Background(), h, "", Event{HTTPMethod: http.MethodPost, Body: `{}`})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json", res.Headers["Content-Type"])
	assert.JSONEq(t, `{"error":"Маршрут не найден"}`, res.Body)
}

func TestServeEventStream(t *testing.T) {
	h, _ := newScenarioHandler(t)

	in := strings.NewReader(`{"httpMethod":"POST","headers":{"content-type":"application/json"},"body":"{\"action\":\"login\",\"email\":\"nobody@x.com\",\"password\":\"pw\"}"}`)
	var out bytes.Buffer
	require.NoError(t, ServeEventStream(context.Background(), h, "/auth", in, &out))

	var res Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.JSONEq(t, `{"error":"Неверный email или пароль"}`, res.Body)

	err := ServeEventStream(context.Background(), h, "/auth", strings.NewReader("not json"), &out)
	assert.Error(t, err)
}
