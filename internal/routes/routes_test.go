package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/pttracker/pttracker/internal/app"
	"github.com/pttracker/pttracker/internal/config"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()

	cfg := &config.Config{
		AppName:       "PT Tracker",
		AppEnv:        "development",
		AppURL:        "http://localhost:8080",
		Port:          "8080",
		PageSize:      5,
		DBDriver:      "sqlite",
		DBConnection:  filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)",
		SessionSecret: "test-secret",
		SessionExpiry: time.Hour,
	}

	a, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	require.NoError(t, a.AuthService.CreateCoach("alice", "correct horse battery"))
	require.NoError(t, a.AuthService.CreateCoach("bob", "correct horse battery"))

	ts := httptest.NewServer(SetupRoutes(a))
	t.Cleanup(ts.Close)

	return ts, a
}

// browser drives the server the way a real client would: it keeps cookies,
// does not follow redirects, and submits the CSRF token with every POST.
type browser struct {
	t    *testing.T
	c    *http.Client
	base *url.URL
}

func newBrowser(t *testing.T, ts *httptest.Server) *browser {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	base, err := url.Parse(ts.URL)
	require.NoError(t, err)

	return &browser{
		t:    t,
		base: base,
		c: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()

	resp, err := b.c.Get(b.base.String() + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()

	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", b.csrfToken())

	resp, err := b.c.PostForm(b.base.String()+path, form)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

// csrfToken returns the token from the jar, fetching a page first if no
// token has been issued yet.
func (b *browser) csrfToken() string {
	b.t.Helper()

	if token := b.cookie("csrf_token"); token != "" {
		return token
	}

	resp, err := b.c.Get(b.base.String() + "/users/signin")
	require.NoError(b.t, err)
	resp.Body.Close()

	token := b.cookie("csrf_token")
	require.NotEmpty(b.t, token, "no csrf token issued")
	return token
}

func (b *browser) cookie(name string) string {
	for _, c := range b.c.Jar.Cookies(b.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *browser) signIn(username, password string) (*http.Response, string) {
	b.t.Helper()
	return b.post("/users/signin", url.Values{
		"username": {username},
		"password": {password},
	})
}

func (b *browser) mustSignIn(username string) {
	b.t.Helper()
	resp, _ := b.signIn(username, "correct horse battery")
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
}

func clientByName(t *testing.T, a *app.App, coach, name string) *model.Client {
	t.Helper()

	list, _, err := a.ClientService.Page(coach, 1)
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("client %q not found", name)
	return nil
}

func TestAnonymousVisitorRedirectedToSignIn(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)

	resp, _ := b.get("/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/users/signin", resp.Header.Get("Location"))
	assert.Equal(t, "/", b.cookie("return_to"))
}

func TestSignInWrongPasswordRerendersForm(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)

	resp, body := b.signIn("alice", "wrong")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, `value="alice"`)
	assert.Empty(t, b.cookie("session_token"))
}

func TestSignInReturnsToRequestedPage(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)

	resp, _ := b.get("/new_client")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/new_client", b.cookie("return_to"))

	resp, _ = b.signIn("alice", "correct horse battery")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/new_client", resp.Header.Get("Location"))

	// The remembered path is single-use
	assert.Empty(t, b.cookie("return_to"))

	resp, body := b.get("/new_client")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "clientName")
}

func TestSignOutEndsSession(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.post("/users/signout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = b.get("/")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestSignedInVisitorSkipsSignInPage(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.get("/users/signin")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestClientLifecycle(t *testing.T) {
	ts, a := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.post("/", url.Values{"clientName": {"Bob"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, body := b.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Bob")

	// Duplicate names re-render the form at 200
	resp, body = b.post("/", url.Values{"clientName": {"Bob"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "name must be unique")

	client := clientByName(t, a, "alice", "Bob")
	clientPath := "/" + strconv.FormatInt(client.ID, 10)

	resp, body = b.get(clientPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Bob")

	resp, _ = b.post(clientPath+"/edit", url.Values{
		"clientName":  {"Bobby"},
		"clientNotes": {"prefers morning sessions"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, clientPath, resp.Header.Get("Location"))

	resp, body = b.get(clientPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Bobby")
	assert.Contains(t, body, "prefers morning sessions")

	resp, _ = b.post(clientPath+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = b.get(clientPath)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientValidationRerender(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, body := b.post("/", url.Values{"clientName": {"   "}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Client name is required")
}

func TestGoalLifecycle(t *testing.T) {
	ts, a := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.post("/", url.Values{"clientName": {"Bob"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	client := clientByName(t, a, "alice", "Bob")
	clientPath := "/" + strconv.FormatInt(client.ID, 10)

	resp, _ = b.post(clientPath+"/add_goal", url.Values{
		"newGoal":      {"Run 5k"},
		"newGoalNotes": {"couch to 5k plan"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body := b.get(clientPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Run 5k")
	assert.Contains(t, body, "couch to 5k plan")

	// Duplicate title re-renders the detail view with the input preserved
	resp, body = b.post(clientPath+"/add_goal", url.Values{"newGoal": {"Run 5k"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "The goal title must be unique")

	loaded, err := a.ClientService.ByID("alice", client.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Goals, 1)
	goal := loaded.Goals[0]
	goalPath := clientPath + "/" + strconv.FormatInt(goal.ID, 10)

	resp, _ = b.post(goalPath+"/toggle", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	toggled, err := a.GoalService.ByID("alice", client.ID, goal.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	resp, _ = b.post(goalPath+"/edit", url.Values{
		"goalName":  {"Run 10k"},
		"goalNotes": {"build up distance"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	renamed, err := a.GoalService.ByID("alice", client.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 10k", renamed.Title)

	resp, _ = b.post(goalPath+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, err = a.GoalService.ByID("alice", client.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestCrossCoachAccessIs404(t *testing.T) {
	ts, a := newTestServer(t)

	alice := newBrowser(t, ts)
	alice.mustSignIn("alice")
	resp, _ := alice.post("/", url.Values{"clientName": {"Bob"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	client := clientByName(t, a, "alice", "Bob")
	clientPath := "/" + strconv.FormatInt(client.ID, 10)

	bob := newBrowser(t, ts)
	bob.mustSignIn("bob")

	resp, _ = bob.get(clientPath)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = bob.post(clientPath+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The client is untouched
	_, err := a.ClientService.ByID("alice", client.ID)
	assert.NoError(t, err)
}

func TestUnknownPathsAre404(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.get("/not-a-number")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = b.get("/9999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = b.get("/a/b/c/d")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHomePageBeyondLastIs404(t *testing.T) {
	ts, _ := newTestServer(t)
	b := newBrowser(t, ts)
	b.mustSignIn("alice")

	resp, _ := b.get("/?page=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.get("/?page=2")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
