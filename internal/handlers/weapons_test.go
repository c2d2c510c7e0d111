package handlers

import (
	"net/http"
	"testing"

	"github.com/MarinusJvRe/TrophyVault/internal/models"
)

func createWeapon(t *testing.T, env *testEnv, token string, payload map[string]any) string {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/weapons", payload, authHeaders(token))
	assertStatus(t, resp, http.StatusCreated)
	id, _ := dataMap(t, decodeJSONMap(t, resp))["id"].(string)
	if id == "" {
		t.Fatal("expected created weapon id")
	}
	return id
}

func TestWeaponsCRUD(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	id := createWeapon(t, env, token, map[string]any{
		"name":    "Sako 85",
		"type":    "Rifle",
		"caliber": ".308 Win",
	})

	resp := performRequest(t, env.app, http.MethodGet, "/api/weapons", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	list := dataList(t, decodeJSONMap(t, resp))
	if len(list) != 1 {
		t.Fatalf("expected 1 weapon, got %d", len(list))
	}

	resp = performJSONRequest(t, env.app, http.MethodPatch, "/api/weapons/"+id, map[string]any{
		"optic":   "Swarovski Z8i",
		"caliber": "",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	updated := dataMap(t, decodeJSONMap(t, resp))
	if updated["optic"] != "Swarovski Z8i" {
		t.Fatalf("expected optic to be set, got %+v", updated["optic"])
	}
	if updated["caliber"] != nil {
		t.Fatalf("expected empty caliber to clear the field, got %+v", updated["caliber"])
	}
	if updated["name"] != "Sako 85" {
		t.Fatalf("expected untouched name, got %+v", updated["name"])
	}

	resp = performJSONRequest(t, env.app, http.MethodPatch, "/api/weapons/"+id, map[string]any{"optic": nil}, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	if updated := dataMap(t, decodeJSONMap(t, resp)); updated["optic"] != nil {
		t.Fatalf("expected null optic to clear the field, got %+v", updated["optic"])
	}

	resp = performRequest(t, env.app, http.MethodDelete, "/api/weapons/"+id, nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = performRequest(t, env.app, http.MethodGet, "/api/weapons/"+id, nil, authHeaders(token))
	assertStatus(t, resp, http.StatusNotFound)
	assertEnvelopeError(t, decodeJSONMap(t, resp), "weapon not found")
}

func TestWeaponsValidation(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/weapons", map[string]any{
		"name": "Crossbow",
		"type": "Crossbow",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
	assertFieldError(t, decodeJSONMap(t, resp), "type")

	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/weapons", map[string]any{
		"type": "Bow",
	}, authHeaders(token))
	assertStatus(t, resp, http.StatusBadRequest)
	assertFieldError(t, decodeJSONMap(t, resp), "name")

	var count int64
	env.db.Model(&models.Weapon{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no weapons stored, got %d", count)
	}
}

func TestWeaponsMalformedBody(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	headers := authHeaders(token)
	headers["Content-Type"] = "application/json"
	resp := performRequest(t, env.app, http.MethodPost, "/api/weapons", stringsReader(`{"name":`), headers)
	assertStatus(t, resp, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, resp), "invalid request body")
}

func TestWeaponsAreScopedToOwner(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerToken := createTestUser(t, env.db, "Ada")
	_, otherToken := createTestUser(t, env.db, "Ben")

	id := createWeapon(t, env, ownerToken, map[string]any{"name": "Hoyt", "type": "Bow"})

	resp := performRequest(t, env.app, http.MethodGet, "/api/weapons", nil, authHeaders(otherToken))
	assertStatus(t, resp, http.StatusOK)
	if list := dataList(t, decodeJSONMap(t, resp)); len(list) != 0 {
		t.Fatalf("expected other user to see no weapons, got %d", len(list))
	}

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp = performRequest(t, env.app, method, "/api/weapons/"+id, nil, authHeaders(otherToken))
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "weapon not found")
	}

	resp = performJSONRequest(t, env.app, http.MethodPatch, "/api/weapons/"+id, map[string]any{"name": "Stolen"}, authHeaders(otherToken))
	assertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = performRequest(t, env.app, http.MethodGet, "/api/weapons/not-a-uuid", nil, authHeaders(ownerToken))
	assertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestWeaponsRequireSession(t *testing.T) {
	env := setupTestEnv(t)

	resp := performRequest(t, env.app, http.MethodGet, "/api/weapons", nil, nil)
	assertStatus(t, resp, http.StatusUnauthorized)
	assertEnvelopeError(t, decodeJSONMap(t, resp), "missing authorization header")
}
