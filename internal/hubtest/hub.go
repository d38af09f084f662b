// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package hubtest provides an in-memory hub server for tests. It implements
// the account, app and version endpoints with the same status codes and
// validation as a real hub, keeping all state in maps.
package hubtest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/apphub/hubclient/internal/archive"
	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/validation"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// MaxPayloadSize is the largest accepted version upload body.
const MaxPayloadSize = 1 << 20

// ReservedMaintainer may not be used as an app name; its apps are the
// "official" ones in search results.
const ReservedMaintainer = "official"

// sessionLifetime is how long an auth cookie stays valid.
const sessionLifetime = 30 * 24 * time.Hour

type user struct {
	name      string
	email     string
	hash      []byte
	validated bool
	code      string
}

type app struct {
	id    int
	owner string
	name  string
}

type version struct {
	id      int
	appID   int
	name    string
	content []byte
	created time.Time
}

// Hub is the in-memory server state.
type Hub struct {
	mu       sync.Mutex
	users    map[string]*user
	sessions map[string]string // cookie -> user
	apps     map[int]*app
	versions map[int]*version
	nextID   int
	calls    map[string]int
	now      func() time.Time
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{
		users:    map[string]*user{},
		sessions: map[string]string{},
		apps:     map[int]*app{},
		versions: map[int]*version{},
		calls:    map[string]int{},
		now:      time.Now,
	}
}

// NewServer starts h on an httptest server that is closed with the test.
func NewServer(t testing.TB) (*Hub, *httptest.Server) {
	t.Helper()
	h := New()
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return h, srv
}

// Router returns the hub routes mounted under /api.
func (h *Hub) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(h.countCalls)
	r.Route(hubapi.APIPrefix, func(r chi.Router) {
		r.Post(hubapi.PathRegistration, h.register)
		r.Post(hubapi.PathEmailValidation, h.validateEmail)
		r.Post(hubapi.PathLogin, h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Get(hubapi.PathAuthCheck, h.authCheck)
			r.Post(hubapi.PathLogout, h.logout)
			r.Post(hubapi.PathDeleteAccount, h.deleteAccount)
			r.Post(hubapi.PathChangePassword, h.changePassword)

			r.Post(hubapi.PathAppCreate, h.createApp)
			r.Post(hubapi.PathAppList, h.listApps)
			r.Post(hubapi.PathAppDelete, h.deleteApp)

			r.Post(hubapi.PathVersionList, h.listVersions)
			r.Post(hubapi.PathVersionUpload, h.uploadVersion)
			r.Post(hubapi.PathVersionDownload, h.downloadVersion)
			r.Post(hubapi.PathVersionDelete, h.deleteVersion)
		})
		// search is public
		r.Post(hubapi.PathAppSearch, h.searchApps)
	})
	return r
}

// --- test helpers ---

// SeedUser creates a validated account.
func (h *Hub) SeedUser(name, password, email string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.users[name] = &user{name: name, email: email, hash: hash, validated: true}
}

// SeedApp creates an app for owner and returns its id.
func (h *Hub) SeedApp(owner, name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.apps[h.nextID] = &app{id: h.nextID, owner: owner, name: name}
	return strconv.Itoa(h.nextID)
}

// SeedVersion adds a version to an app and returns its id.
func (h *Hub) SeedVersion(appID, name string, content []byte) string {
	id, _ := strconv.Atoi(appID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.versions[h.nextID] = &version{id: h.nextID, appID: id, name: name, content: content, created: h.now()}
	return strconv.Itoa(h.nextID)
}

// ExpireSessions forgets every issued cookie, as a hub restart would.
func (h *Hub) ExpireSessions() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = map[string]string{}
}

// Calls returns how often the endpoint path (relative to /api) was hit.
func (h *Hub) Calls(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[path]
}

// HasUser reports whether the account exists.
func (h *Hub) HasUser(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.users[name]
	return ok
}

// ValidationCode returns the pending email code of a registered account.
func (h *Hub) ValidationCode(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if u, ok := h.users[name]; ok {
		return u.code
	}
	return ""
}

// --- middleware ---

type ctxKey struct{}

func (h *Hub) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.calls[strings.TrimPrefix(r.URL.Path, hubapi.APIPrefix)]++
		h.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (h *Hub) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(hubapi.CookieName)
		if err != nil || ck.Value == "" {
			http.Error(w, "cookie not found", http.StatusUnauthorized)
			return
		}
		h.mu.Lock()
		name, ok := h.sessions[ck.Value]
		if ok {
			if _, exists := h.users[name]; !exists {
				ok = false
			}
		}
		h.mu.Unlock()
		if !ok {
			http.Error(w, "invalid cookie", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r, name)))
	})
}

func withUser(r *http.Request, name string) context.Context {
	return context.WithValue(r.Context(), ctxKey{}, name)
}

func userFrom(r *http.Request) string {
	name, _ := r.Context().Value(ctxKey{}).(string)
	return name
}

// --- helpers ---

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return false
	}
	if errs := validation.Struct(v); len(errs) > 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return false
	}
	return true
}

func decodeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	var v model.StringValue
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(v.Value)
	if err != nil || id <= 0 {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// --- account handlers ---

func (h *Hub) register(w http.ResponseWriter, r *http.Request) {
	var form model.RegistrationForm
	if !decode(w, r, &form) {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.MinCost)
	if err != nil {
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.users[form.User]; exists {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	for _, u := range h.users {
		if u.email == form.Email {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
	}
	h.users[form.User] = &user{name: form.User, email: form.Email, hash: hash, code: hubapi.DefaultValidationCode}
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) validateEmail(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, u := range h.users {
		if !u.validated && code != "" && u.code == code {
			u.validated = true
			u.code = ""
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	http.Error(w, "invalid validation code", http.StatusBadRequest)
}

func (h *Hub) login(w http.ResponseWriter, r *http.Request) {
	var creds model.LoginCredentials
	if !decode(w, r, &creds) {
		return
	}
	h.mu.Lock()
	u, ok := h.users[creds.User]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "user does not exist", http.StatusNotFound)
		return
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(creds.Password)) != nil {
		http.Error(w, "incorrect username or password", http.StatusUnauthorized)
		return
	}
	if !u.validated {
		http.Error(w, "email address not validated", http.StatusForbidden)
		return
	}
	token := newToken()
	expires := h.now().Add(sessionLifetime)
	h.mu.Lock()
	h.sessions[token] = u.name
	h.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     hubapi.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  expires,
	})
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) authCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.StringValue{Value: userFrom(r)})
}

func (h *Hub) logout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(hubapi.CookieName); err == nil {
		h.mu.Lock()
		delete(h.sessions, ck.Value)
		h.mu.Unlock()
	}
	clearCookie(w)
	w.WriteHeader(http.StatusOK)
}

func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    hubapi.CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

func (h *Hub) deleteAccount(w http.ResponseWriter, r *http.Request) {
	name := userFrom(r)
	h.mu.Lock()
	delete(h.users, name)
	for tok, owner := range h.sessions {
		if owner == name {
			delete(h.sessions, tok)
		}
	}
	for id, a := range h.apps {
		if a.owner == name {
			h.dropAppLocked(id)
		}
	}
	h.mu.Unlock()
	clearCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) changePassword(w http.ResponseWriter, r *http.Request) {
	var form model.ChangePasswordForm
	if !decode(w, r, &form) {
		return
	}
	name := userFrom(r)
	h.mu.Lock()
	u := h.users[name]
	h.mu.Unlock()
	// 403 rather than 401: the session itself is fine
	if u == nil || bcrypt.CompareHashAndPassword(u.hash, []byte(form.OldPassword)) != nil {
		http.Error(w, "incorrect old password", http.StatusForbidden)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword), bcrypt.MinCost)
	if err != nil {
		http.Error(w, "password change failed", http.StatusInternalServerError)
		return
	}
	h.mu.Lock()
	u.hash = hash
	h.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

// --- app handlers ---

func (h *Hub) createApp(w http.ResponseWriter, r *http.Request) {
	var v model.StringValue
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil || !validation.Validate(validation.AppName, v.Value) {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if v.Value == ReservedMaintainer {
		http.Error(w, "app name is reserved", http.StatusBadRequest)
		return
	}
	owner := userFrom(r)
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, a := range h.apps {
		if a.owner == owner && a.name == v.Value {
			http.Error(w, "app already exists", http.StatusConflict)
			return
		}
	}
	h.nextID++
	h.apps[h.nextID] = &app{id: h.nextID, owner: owner, name: v.Value}
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) listApps(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r)
	h.mu.Lock()
	out := []model.App{}
	for _, a := range h.apps {
		if a.owner == owner {
			out = append(out, model.App{Maintainer: a.owner, Name: a.name, ID: strconv.Itoa(a.id)})
		}
	}
	h.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, out)
}

func (h *Hub) deleteApp(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	a, exists := h.apps[id]
	if !exists {
		http.Error(w, "app does not exist", http.StatusNotFound)
		return
	}
	if a.owner != userFrom(r) {
		http.Error(w, "you do not own this app", http.StatusForbidden)
		return
	}
	h.dropAppLocked(id)
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) dropAppLocked(id int) {
	delete(h.apps, id)
	for vid, v := range h.versions {
		if v.appID == id {
			delete(h.versions, vid)
		}
	}
}

func (h *Hub) searchApps(w http.ResponseWriter, r *http.Request) {
	var req model.AppSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	term := strings.ToLower(req.SearchTerm)
	h.mu.Lock()
	out := []model.AppWithLatestVersion{}
	for _, a := range h.apps {
		if !req.ShowUnofficialApps && a.owner != ReservedMaintainer {
			continue
		}
		if !strings.Contains(a.name, term) && !strings.Contains(a.owner, term) {
			continue
		}
		latest := h.latestVersionLocked(a.id)
		if latest == nil {
			continue
		}
		out = append(out, model.AppWithLatestVersion{
			Maintainer:        a.owner,
			AppID:             strconv.Itoa(a.id),
			AppName:           a.name,
			LatestVersionID:   strconv.Itoa(latest.id),
			LatestVersionName: latest.name,
		})
	}
	h.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].AppName < out[j].AppName })
	writeJSON(w, out)
}

func (h *Hub) latestVersionLocked(appID int) *version {
	var latest *version
	for _, v := range h.versions {
		if v.appID != appID {
			continue
		}
		if latest == nil || v.created.After(latest.created) || (v.created.Equal(latest.created) && v.id > latest.id) {
			latest = v
		}
	}
	return latest
}

// --- version handlers ---

func (h *Hub) listVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.apps[id]; !exists {
		http.Error(w, "app does not exist", http.StatusNotFound)
		return
	}
	var found []*version
	for _, v := range h.versions {
		if v.appID == id {
			found = append(found, v)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].id < found[j].id })
	out := make([]model.Version, 0, len(found))
	for _, v := range found {
		out = append(out, model.Version{Name: v.name, ID: strconv.Itoa(v.id), CreationTimestamp: v.created})
	}
	writeJSON(w, out)
}

func (h *Hub) uploadVersion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxPayloadSize*2)
	var up model.VersionUpload
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		if strings.Contains(err.Error(), "too large") {
			http.Error(w, "content too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(up.Content) > MaxPayloadSize {
		http.Error(w, "content too large", http.StatusRequestEntityTooLarge)
		return
	}
	if !validation.Validate(validation.VersionName, up.Version) {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if ok, err := archive.HasCompose(up.Content); err != nil || !ok {
		http.Error(w, "Invalid version", http.StatusBadRequest)
		return
	}
	appID, err := strconv.Atoi(up.AppID)
	if err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	a, exists := h.apps[appID]
	if !exists {
		http.Error(w, "app does not exist", http.StatusNotFound)
		return
	}
	if a.owner != userFrom(r) {
		http.Error(w, "you do not own this app", http.StatusForbidden)
		return
	}
	for _, v := range h.versions {
		if v.appID == appID && v.name == up.Version {
			http.Error(w, "version already exists", http.StatusConflict)
			return
		}
	}
	h.nextID++
	h.versions[h.nextID] = &version{id: h.nextID, appID: appID, name: up.Version, content: up.Content, created: h.now()}
	w.WriteHeader(http.StatusOK)
}

func (h *Hub) downloadVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	v, exists := h.versions[id]
	var info model.FullVersionInfo
	if exists {
		a := h.apps[v.appID]
		info = model.FullVersionInfo{
			ID:                       v.id,
			VersionName:              v.name,
			Maintainer:               a.owner,
			AppName:                  a.name,
			Content:                  v.content,
			VersionCreationTimestamp: v.created,
		}
	}
	h.mu.Unlock()
	if !exists {
		http.Error(w, "version does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, info)
}

func (h *Hub) deleteVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeID(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	v, exists := h.versions[id]
	if !exists {
		http.Error(w, "version does not exist", http.StatusNotFound)
		return
	}
	if h.apps[v.appID].owner != userFrom(r) {
		http.Error(w, "you do not own this version", http.StatusForbidden)
		return
	}
	delete(h.versions, id)
	w.WriteHeader(http.StatusOK)
}
