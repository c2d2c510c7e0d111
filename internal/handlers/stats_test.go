package handlers

import (
	"net/http"
	"testing"
)

func TestStatsEmpty(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	resp := performRequest(t, env.app, http.MethodGet, "/api/stats", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	stats := dataMap(t, decodeJSONMap(t, resp))
	if stats["totalHunts"] != float64(0) || stats["speciesCollected"] != float64(0) {
		t.Fatalf("unexpected empty stats: %+v", stats)
	}
	if stats["roomRating"] != nil || stats["roomRatingSource"] != nil || stats["recentSpecies"] != nil {
		t.Fatalf("expected null rating and species for a new user, got %+v", stats)
	}
}

func TestStatsHeuristicThenCommunity(t *testing.T) {
	env := setupTestEnv(t)
	owner, ownerToken := createTestUser(t, env.db, "Ada")
	_, raterToken := createTestUser(t, env.db, "Ben")

	scored := trophyPayload("Kudu")
	scored["score"] = "56"
	scored["notes"] = "Long stalk"
	createTrophy(t, env, ownerToken, scored)
	createTrophy(t, env, ownerToken, trophyPayload("Kudu"))
	createTrophy(t, env, ownerToken, trophyPayload("Eland"))

	resp := performRequest(t, env.app, http.MethodGet, "/api/stats", nil, authHeaders(ownerToken))
	assertStatus(t, resp, http.StatusOK)
	stats := dataMap(t, decodeJSONMap(t, resp))
	if stats["totalHunts"] != float64(3) || stats["totalTrophies"] != float64(1) || stats["speciesCollected"] != float64(2) {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats["recentSpecies"] == nil {
		t.Fatalf("expected a recent species, got %+v", stats)
	}
	// 5*(35*1 + 25*1) / (100*3) = 1.0 on the heuristic scale.
	if stats["roomRatingSource"] != "auto" || stats["roomRating"] != float64(1) || stats["roomRatingCount"] != float64(0) {
		t.Fatalf("unexpected heuristic rating: %+v", stats)
	}

	setRoomVisibility(t, env, ownerToken, "public")
	resp = rate(t, env, raterToken, owner.ID, 4)
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = performRequest(t, env.app, http.MethodGet, "/api/stats", nil, authHeaders(ownerToken))
	assertStatus(t, resp, http.StatusOK)
	stats = dataMap(t, decodeJSONMap(t, resp))
	if stats["roomRatingSource"] != "community" || stats["roomRating"] != float64(4) || stats["roomRatingCount"] != float64(1) {
		t.Fatalf("unexpected community rating: %+v", stats)
	}
}
