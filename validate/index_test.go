package validate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, app *fiber.App, method, target, body string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

const validOrder = `{"restaurantId":1,"customer":{"name":"Ana","phone":"5550001"},"items":[{"id":3,"quantity":2}],"idempotencyKey":"body-key"}`

func TestPlaceOrderHeaderKeyWins(t *testing.T) {
	app := fiber.New()
	var got model.PlaceOrderInput
	app.Post("/", PlaceOrder(), func(c *fiber.Ctx) error {
		got = c.Locals("inputPlaceOrder").(model.PlaceOrderInput)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp := send(t, app, "POST", "/", validOrder, map[string]string{"Idempotency-Key": "header-key"})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "header-key", got.IdempotencyKey)
	assert.Equal(t, uint(3), got.Items[0].ItemID())

	resp = send(t, app, "POST", "/", validOrder, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "body-key", got.IdempotencyKey)
}

func TestPlaceOrderRejectsInvalidPayload(t *testing.T) {
	app := fiber.New()
	app.Post("/", PlaceOrder(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp := send(t, app, "POST", "/", `{"restaurantId":1,"customer":{"name":"Ana"},"items":[]}`, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	fields := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"customer.phone", "items"}, fields)

	resp = send(t, app, "POST", "/", `{not json`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClockAcceptsEmptyBody(t *testing.T) {
	app := fiber.New()
	app.Post("/", Clock(), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("inputClock"))
	})

	resp := send(t, app, "POST", "/", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = send(t, app, "POST", "/", `{"method":"teleport"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetByIdRequiresNumber(t *testing.T) {
	app := fiber.New()
	app.Get("/:orderId", GetById("orderId"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals("inputId")})
	})

	resp := send(t, app, "GET", "/42", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, bad := range []string{"/abc", "/0", "/-1"} {
		resp = send(t, app, "GET", bad, "", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestCuisineTag(t *testing.T) {
	ok := model.CreateRestaurantInput{Name: "Luigi", CuisineType: "Italian"}
	assert.NoError(t, Struct(ok))

	bad := model.CreateRestaurantInput{Name: "Luigi", CuisineType: "martian"}
	assert.Error(t, Struct(bad))
}
