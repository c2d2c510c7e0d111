package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestUploadProfileImage(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	image := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	resp := performUpload(t, env.app, "/api/profile/upload-image", "image", "My Kudu.PNG", "image/png", image, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	data := dataMap(t, decodeJSONMap(t, resp))

	imageURL, _ := data["imageUrl"].(string)
	if !strings.HasPrefix(imageURL, "/uploads/profiles/") || !strings.HasSuffix(imageURL, "-my-kudu.png") {
		t.Fatalf("unexpected image url %q", imageURL)
	}
	prefs, _ := data["preferences"].(map[string]any)
	if prefs["profileImageUrl"] != imageURL {
		t.Fatalf("expected preferences to point at the upload, got %+v", prefs)
	}

	resp = performRequest(t, env.app, http.MethodGet, imageURL, nil, nil)
	assertStatus(t, resp, http.StatusOK)
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	served, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading served image: %v", err)
	}
	if !bytes.Equal(served, image) {
		t.Fatal("served image does not match the upload")
	}
}

func TestUploadProfileImageKeyFollowsContentType(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	resp := performUpload(t, env.app, "/api/profile/upload-image", "image", "kudu.gif", "image/png", pngHeader, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	imageURL, _ := dataMap(t, decodeJSONMap(t, resp))["imageUrl"].(string)
	if !strings.HasSuffix(imageURL, "-kudu.png") {
		t.Fatalf("expected key to carry the png extension, got %q", imageURL)
	}
}

func TestUploadProfileImageRejections(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")

	cases := []struct {
		name        string
		field       string
		contentType string
		data        []byte
	}{
		{name: "missing field", field: "avatar", contentType: "image/png", data: pngHeader},
		{name: "declared non-image", field: "image", contentType: "application/pdf", data: []byte("%PDF-1.7")},
		{name: "content mismatch", field: "image", contentType: "image/png", data: []byte("<html><body>hi</body></html>")},
		{name: "too large", field: "image", contentType: "image/png", data: append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, testMaxImageBytes)...)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := performUpload(t, env.app, "/api/profile/upload-image", tc.field, "kudu.png", tc.contentType, tc.data, authHeaders(token))
			assertStatus(t, resp, http.StatusBadRequest)
			resp.Body.Close()
		})
	}

	if objects, uploads := env.store.count(); objects != 0 || uploads != 0 {
		t.Fatalf("expected no storage writes, got %d objects after %d uploads", objects, uploads)
	}
}

func TestUploadProfileImageStorageFailure(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env.db, "Ada")
	env.store.failPut = true

	resp := performUpload(t, env.app, "/api/profile/upload-image", "image", "kudu.png", "image/png", pngHeader, authHeaders(token))
	assertStatus(t, resp, http.StatusInternalServerError)
	assertEnvelopeError(t, decodeJSONMap(t, resp), "internal server error")

	resp = performRequest(t, env.app, http.MethodGet, "/api/preferences", nil, authHeaders(token))
	assertStatus(t, resp, http.StatusOK)
	if body := decodeJSONMap(t, resp); body["data"] != nil {
		t.Fatalf("expected no preferences after failed upload, got %+v", body["data"])
	}
}

func TestUploadProfileImageRequiresSession(t *testing.T) {
	env := setupTestEnv(t)

	resp := performUpload(t, env.app, "/api/profile/upload-image", "image", "kudu.png", "image/png", pngHeader, nil)
	assertStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestServeUploadNotFound(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{"/uploads/profiles/missing.png", "/uploads/other/secret.txt"} {
		resp := performRequest(t, env.app, http.MethodGet, path, nil, nil)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, decodeJSONMap(t, resp), "file not found")
	}
}
