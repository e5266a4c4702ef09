package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant_manager/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t   *testing.T
	app *fiber.App
}

func newClient(t *testing.T) *client {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New()
	SetupRoutes(app)
	return &client{t: t, app: app}
}

// do sends a JSON request and decodes the response envelope.
func (c *client) do(method, path, token string, body any, headers ...string) (int, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func data(body map[string]any) map[string]any {
	d, _ := body["data"].(map[string]any)
	return d
}

// owner registers a user, opens a restaurant and returns the token and the restaurant.
func (c *client) owner(email, name string) (string, map[string]any) {
	c.t.Helper()
	status, body := c.do("POST", "/api/auth/register", "", fiber.Map{"name": "Owner", "email": email, "password": "secret1"})
	require.Equal(c.t, fiber.StatusCreated, status, body)
	token := data(body)["token"].(map[string]any)["accessToken"].(string)

	status, body = c.do("POST", "/api/restaurants", token, fiber.Map{"name": name, "cuisineType": "pizza"})
	require.Equal(c.t, fiber.StatusCreated, status, body)
	return token, data(body)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	status, body := c.do("GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)

	status, _ := c.do("GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := c.do("POST", "/api/auth/register", "", fiber.Map{"name": "Owner", "email": "Owner@Example.com", "password": "secret1"})
	require.Equal(t, fiber.StatusCreated, status)
	user := data(body)["user"].(map[string]any)
	assert.Equal(t, "owner@example.com", user["email"])
	assert.NotContains(t, user, "password")

	status, _ = c.do("POST", "/api/auth/register", "", fiber.Map{"name": "Owner", "email": "owner@example.com", "password": "secret1"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = c.do("POST", "/api/auth/login", "", fiber.Map{"email": "owner@example.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = c.do("POST", "/api/auth/login", "", fiber.Map{"email": "owner@example.com", "password": "secret1"})
	require.Equal(t, fiber.StatusOK, status)
	token := data(body)["token"].(map[string]any)["accessToken"].(string)

	// no restaurant yet
	status, _ = c.do("GET", "/api/restaurants/me", token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = c.do("GET", "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, data(body)["restaurant"])

	status, _ = c.do("GET", "/api/restaurants/me", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestStorefrontOrderFlow(t *testing.T) {
	c := newClient(t)
	token, restaurant := c.owner("owner@example.com", "Slice House")
	slug := restaurant["slug"].(string)

	status, body := c.do("POST", "/api/menu", token, fiber.Map{"name": "Pepperoni", "price": 12, "category": "Pizza"})
	require.Equal(t, fiber.StatusCreated, status, body)
	itemID := data(body)["id"].(float64)

	status, body = c.do("GET", "/api/public/restaurants/"+slug+"/menu", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	order := fiber.Map{
		"restaurantId": restaurant["id"],
		"customer":     fiber.Map{"name": "Ana", "phone": "5550001"},
		"items":        []fiber.Map{{"id": itemID, "quantity": 2, "price": 1}},
		"orderType":    "takeaway",
	}
	status, body = c.do("POST", "/api/public/orders", "", order, "Idempotency-Key", "cart-1")
	require.Equal(t, fiber.StatusCreated, status, body)
	placed := data(body)
	assert.Equal(t, true, placed["repriced"])
	assert.Equal(t, 24.0, placed["subtotal"])
	number := placed["orderNumber"].(string)

	status, body = c.do("POST", "/api/orders/place", "", order, "Idempotency-Key", "cart-1")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, number, data(body)["orderNumber"])

	status, body = c.do("GET", "/api/public/orders/"+number, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pending", data(body)["status"])

	status, body = c.do("GET", "/api/orders", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1.0, data(body)["totalCount"])

	orderPath := fmt.Sprintf("/api/orders/%v", placed["orderId"])
	status, body = c.do("PUT", orderPath+"/status", token, fiber.Map{"status": "confirmed"})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "confirmed", data(body)["status"])

	status, _ = c.do("PUT", orderPath+"/status", token, fiber.Map{"status": "lost"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = c.do("GET", "/api/orders/kitchen/active", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	// another tenant cannot see it
	other, _ := c.owner("other@example.com", "Taco Town")
	status, _ = c.do("GET", orderPath, other, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = c.do("GET", "/api/orders/abc", other, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPlaceOrderValidation(t *testing.T) {
	c := newClient(t)
	_, restaurant := c.owner("owner@example.com", "Slice House")

	status, body := c.do("POST", "/api/public/orders", "", fiber.Map{
		"restaurantId": restaurant["id"],
		"customer":     fiber.Map{"name": "Ana", "phone": "5550001"},
		"items":        []fiber.Map{},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, body["errors"])

	status, _ = c.do("POST", "/api/public/orders", "", fiber.Map{
		"restaurantId": restaurant["id"],
		"customer":     fiber.Map{"name": "Ana", "phone": "5550001"},
		"items":        []fiber.Map{{"id": 999, "quantity": 1}},
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPublicTrackingHidesStaffDetails(t *testing.T) {
	c := newClient(t)
	token, restaurant := c.owner("owner@example.com", "Slice House")

	status, body := c.do("POST", "/api/menu", token, fiber.Map{"name": "Pepperoni", "price": 12, "category": "Pizza"})
	require.Equal(t, fiber.StatusCreated, status, body)

	status, body = c.do("POST", "/api/public/orders", "", fiber.Map{
		"restaurantId": restaurant["id"],
		"customer":     fiber.Map{"name": "Ana", "phone": "5550001"},
		"items":        []fiber.Map{{"id": data(body)["id"], "quantity": 1}},
		"orderType":    "takeaway",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	placed := data(body)

	status, body = c.do("PUT", fmt.Sprintf("/api/orders/%v/status", placed["orderId"]), token, fiber.Map{"status": "confirmed", "notes": "call on arrival"})
	require.Equal(t, fiber.StatusOK, status, body)

	status, body = c.do("GET", "/api/public/orders/"+placed["orderNumber"].(string), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	history, ok := data(body)["statusHistory"].([]any)
	require.True(t, ok)
	require.Len(t, history, 2)
	for _, h := range history {
		entry := h.(map[string]any)
		assert.ElementsMatch(t, []string{"status", "timestamp"}, keys(entry))
	}
	assert.Equal(t, "confirmed", history[1].(map[string]any)["status"])

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "owner@example.com")
	assert.NotContains(t, string(raw), "updatedBy")
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
