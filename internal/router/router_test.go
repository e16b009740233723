package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	bcrypthasher "vet-clinic/internal/adapters/auth/bcrypt"
	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/domain/veterinarians"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/pagination"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/router"

	"golang.org/x/crypto/bcrypt"
)

const secret = "secreto1"

type app struct {
	url   string
	store *memory.Store
	users *users.Service
}

func newApp(t *testing.T) app {
	t.Helper()

	store := memory.NewStore()
	hasher := bcrypthasher.NewHasher(bcrypt.MinCost)
	ts := httptest.NewServer(router.NewRouter(router.Options{Storage: store, Hasher: hasher}))
	t.Cleanup(ts.Close)

	a := app{url: ts.URL, store: store, users: users.NewService(store.Users(), hasher, nil)}
	a.seedUser(t, "admin", "administrator")
	a.seedUser(t, "vet", "veterinarian")
	return a
}

func (a app) seedUser(t *testing.T, username, role string) users.User {
	t.Helper()
	u, err := a.users.Create(context.Background(), users.CreateInput{
		Username: username, Password: secret, Confirm: secret,
		Email: username + "@example.com", FullName: strings.ToUpper(username), Role: role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

type browser struct {
	t    *testing.T
	base string
	http *http.Client
}

// newBrowser guarda cookies y no sigue redirects.
func (a app) newBrowser(t *testing.T) *browser {
	t.Helper()
	jar, _ := cookiejar.New(nil)
	return &browser{t: t, base: a.url, http: &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

type response struct {
	status   int
	location string
	body     []byte
}

func (b *browser) do(method, path string, form url.Values) response {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, b.base+path, body)
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := b.http.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	return response{status: res.StatusCode, location: res.Header.Get("Location"), body: raw}
}

func (b *browser) get(path string) response { return b.do(http.MethodGet, path, nil) }

func (b *browser) post(path string, form url.Values) response {
	return b.do(http.MethodPost, path, form)
}

func (b *browser) login(username, password string) response {
	return b.post("/login", url.Values{"username": {username}, "password": {password}})
}

type envelope[T any] struct {
	View     string            `json:"view"`
	Identity auth.Identity     `json:"identity"`
	Flashes  []flash.Notice    `json:"flashes"`
	Data     T                 `json:"data"`
	Errors   map[string]string `json:"errors"`
}

type listData[T any] struct {
	Page pagination.Page[T] `json:"page"`
}

func decode[T any](t *testing.T, r response) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(r.body, &env); err != nil {
		t.Fatalf("decode body %q: %v", string(r.body), err)
	}
	return env
}

// home devuelve los avisos que quedaron pendientes.
func (b *browser) home() envelope[map[string]any] {
	b.t.Helper()
	return decode[map[string]any](b.t, b.get("/"))
}

func expectRedirect(t *testing.T, r response, to string) {
	t.Helper()
	if r.status != http.StatusSeeOther || r.location != to {
		t.Fatalf("expected 303 to %s, got %d %q body=%s", to, r.status, r.location, string(r.body))
	}
}

func expectFlash(t *testing.T, env envelope[map[string]any], msg string) {
	t.Helper()
	for _, f := range env.Flashes {
		if f.Message == msg {
			return
		}
	}
	t.Fatalf("expected flash %q, got %#v", msg, env.Flashes)
}

func clientForm(first, email, rut string) url.Values {
	return url.Values{
		"first_name": {first},
		"last_name":  {"Rojas"},
		"phone":      {"912345678"},
		"email":      {email},
		"rut":        {rut},
		"address":    {"Los Leones 1234"},
	}
}

func TestHTTP_Health(t *testing.T) {
	a := newApp(t)
	if r := a.newBrowser(t).get("/health"); r.status != http.StatusOK || string(r.body) != "ok" {
		t.Fatalf("unexpected health %d %q", r.status, string(r.body))
	}
}

func TestHTTP_GateRedirectsWithFlash(t *testing.T) {
	a := newApp(t)

	anon := a.newBrowser(t)
	expectRedirect(t, anon.get("/clients"), "/")
	expectFlash(t, anon.home(), "you must log in")

	vet := a.newBrowser(t)
	expectRedirect(t, vet.login("vet", secret), "/")
	if r := vet.get("/clients"); r.status != http.StatusOK {
		t.Fatalf("veterinarian should list clients, got %d", r.status)
	}
	expectRedirect(t, vet.get("/users"), "/")
	expectFlash(t, vet.home(), "you do not have permission")

	admin := a.newBrowser(t)
	admin.login("admin", secret)
	if r := admin.get("/users"); r.status != http.StatusOK {
		t.Fatalf("administrator should list users, got %d", r.status)
	}
}

func TestHTTP_LoginFailuresLookIdentical(t *testing.T) {
	a := newApp(t)

	var messages []string
	for _, creds := range [][2]string{{"vet", "wrong-secret"}, {"nobody", secret}} {
		b := a.newBrowser(t)
		expectRedirect(t, b.login(creds[0], creds[1]), "/login")

		env := decode[map[string]any](t, b.get("/login"))
		if len(env.Flashes) != 1 {
			t.Fatalf("expected one flash, got %#v", env.Flashes)
		}
		messages = append(messages, env.Flashes[0].Message)

		if b.home().Identity.Authenticated {
			t.Fatalf("failed login must leave the session unauthenticated")
		}
	}
	if messages[0] != messages[1] || messages[0] != "invalid username or password" {
		t.Fatalf("expected identical messages, got %q", messages)
	}
}

func TestHTTP_LoginPopulatesAndLogoutClears(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)

	b.login("admin", secret)
	env := b.home()
	if !env.Identity.Authenticated || env.Identity.Role != "administrator" || env.Identity.Email != "admin@example.com" {
		t.Fatalf("unexpected identity %#v", env.Identity)
	}

	expectRedirect(t, b.post("/logout", url.Values{}), "/")
	env = b.home()
	if env.Identity.Authenticated || env.Identity.Username != "" {
		t.Fatalf("logout must clear identity, got %#v", env.Identity)
	}
	expectFlash(t, env, "you have been logged out")
	expectRedirect(t, b.get("/clients"), "/")
}

func TestHTTP_ClientCreateThenList(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	form := clientForm("Ana", "ana@example.com", "12.345.678-9")
	expectRedirect(t, b.post("/register/client", form), "/register")

	env := decode[listData[clients.Client]](t, b.get("/clients"))
	if env.Data.Page.TotalItems != 1 {
		t.Fatalf("expected exactly one client, got %d", env.Data.Page.TotalItems)
	}
	c := env.Data.Page.Items[0]
	if c.ID == "" || c.FirstName != "Ana" || c.LastName != "Rojas" || c.Phone != "912345678" ||
		c.Email != "ana@example.com" || c.RUT != "12.345.678-9" || c.Address != "Los Leones 1234" {
		t.Fatalf("fields differ: %#v", c)
	}

	// duplicado de email: error por campo, sin persistir
	dup := clientForm("Eva", "ana@example.com", "9.876.543-2")
	r := b.post("/register/client", dup)
	if r.status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", r.status)
	}
	if errs := decode[map[string]any](t, r).Errors; errs["email"] == "" {
		t.Fatalf("expected email field error, got %#v", errs)
	}
	if env := decode[listData[clients.Client]](t, b.get("/clients")); env.Data.Page.TotalItems != 1 {
		t.Fatalf("duplicate must not be stored")
	}
}

func TestHTTP_ClientPaginationClamps(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	for i := 0; i < 12; i++ {
		form := clientForm(fmt.Sprintf("Name%c", 'A'+i), fmt.Sprintf("c%d@example.com", i), fmt.Sprintf("%d.345.678-9", 10+i))
		expectRedirect(t, b.post("/register/client", form), "/register")
	}

	sizes := map[string]int{"1": 5, "2": 5, "3": 2, "99": 2, "abc": 5}
	for page, want := range sizes {
		env := decode[listData[clients.Client]](t, b.get("/clients?page="+page))
		if len(env.Data.Page.Items) != want {
			t.Fatalf("page %s: expected %d items, got %d", page, want, len(env.Data.Page.Items))
		}
	}

	last := decode[listData[clients.Client]](t, b.get("/clients?page=3"))
	clamped := decode[listData[clients.Client]](t, b.get("/clients?page=99"))
	if clamped.Data.Page.Number != 3 || clamped.Data.Page.Items[0].ID != last.Data.Page.Items[0].ID {
		t.Fatalf("page 99 should clamp to page 3, got %#v", clamped.Data.Page)
	}

	found := decode[listData[clients.Client]](t, b.get("/clients?search=namec"))
	if found.Data.Page.TotalItems != 1 || found.Data.Page.Items[0].FirstName != "NameC" {
		t.Fatalf("search should be case-insensitive, got %#v", found.Data.Page)
	}
}

func TestHTTP_PetBreedRequiredForOther(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	form := url.Values{"name": {"Kiwi"}, "sex": {"female"}, "age": {"2"}, "species": {"Other"}, "breed": {""}}
	r := b.post("/register/pet", form)
	if r.status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", r.status, string(r.body))
	}
	env := decode[map[string]any](t, r)
	if env.Errors["breed"] == "" || len(env.Errors) != 1 {
		t.Fatalf("expected only a breed error, got %#v", env.Errors)
	}

	form.Set("species", "Dog")
	expectRedirect(t, b.post("/register/pet", form), "/register")
}

func TestHTTP_DeleteRequiresConfirmation(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	b.post("/register/breed", url.Values{
		"name": {"Beagle"}, "animal": {"dog"}, "lifespan": {"13"},
		"fun_fact": {"great nose"}, "recommendation": {"daily walks"},
	})
	list := decode[listData[map[string]any]](t, b.get("/breeds"))
	if list.Data.Page.TotalItems != 1 {
		t.Fatalf("expected one breed, got %d", list.Data.Page.TotalItems)
	}
	id, _ := list.Data.Page.Items[0]["id"].(string)

	r := b.get("/breeds/" + id + "/delete")
	if r.status != http.StatusOK || decode[map[string]any](t, r).View != "breeds/confirm-delete" {
		t.Fatalf("expected confirm view, got %d %s", r.status, string(r.body))
	}
	if n := decode[listData[map[string]any]](t, b.get("/breeds")).Data.Page.TotalItems; n != 1 {
		t.Fatalf("navigation must not delete, got %d", n)
	}

	expectRedirect(t, b.post("/breeds/"+id+"/delete", url.Values{}), "/breeds")
	if n := decode[listData[map[string]any]](t, b.get("/breeds")).Data.Page.TotalItems; n != 0 {
		t.Fatalf("confirmed delete should remove exactly one, got %d", n)
	}

	expectRedirect(t, b.get("/breeds/"+id+"/edit"), "/breeds")
	expectFlash(t, b.home(), "breed not found")
}

func TestHTTP_PublicBreedsAndAbout(t *testing.T) {
	a := newApp(t)
	anon := a.newBrowser(t)

	for _, path := range []string{"/about", "/public/breeds"} {
		if r := anon.get(path); r.status != http.StatusOK {
			t.Fatalf("%s should be public, got %d", path, r.status)
		}
	}
	expectRedirect(t, anon.get("/register"), "/")
}

func TestHTTP_AppointmentCascadeAndSetNull(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	b.post("/register/client", clientForm("Ana", "ana@example.com", "12.345.678-9"))
	b.post("/register/pet", url.Values{"name": {"Toby"}, "sex": {"male"}, "age": {"3"}, "species": {"dog"}})
	b.post("/register/veterinarian", url.Values{
		"full_name": {"Dr Soto"}, "specialty": {"dogs"}, "email": {"soto@example.com"},
		"phone": {"+56912345678"}, "address": {"Providencia 100"},
	})

	clientID := decode[listData[clients.Client]](t, b.get("/clients")).Data.Page.Items[0].ID
	petID := decode[listData[map[string]any]](t, b.get("/pets")).Data.Page.Items[0]["id"].(string)
	vetID := decode[listData[veterinarians.Veterinarian]](t, b.get("/veterinarians")).Data.Page.Items[0].ID

	for _, date := range []string{"2024-05-01", "2024-06-01"} {
		expectRedirect(t, b.post("/register/appointment", url.Values{
			"client": {clientID}, "pet": {petID}, "veterinarian": {vetID},
			"date": {date}, "reason": {"control"},
		}), "/register")
	}

	appts := decode[listData[appointments.Appointment]](t, b.get("/appointments"))
	if appts.Data.Page.TotalItems != 2 || appts.Data.Page.Items[0].Date != "2024-06-01" {
		t.Fatalf("expected two appointments newest first, got %#v", appts.Data.Page)
	}
	if appts.Data.Page.Items[0].PetName != "Toby" {
		t.Fatalf("expected hydrated pet name, got %#v", appts.Data.Page.Items[0])
	}

	expectRedirect(t, b.post("/veterinarians/"+vetID+"/delete", url.Values{}), "/veterinarians")
	appts = decode[listData[appointments.Appointment]](t, b.get("/appointments"))
	if appts.Data.Page.TotalItems != 2 {
		t.Fatalf("deleting a veterinarian must keep appointments, got %d", appts.Data.Page.TotalItems)
	}
	for _, ap := range appts.Data.Page.Items {
		if ap.VeterinarianID != "" {
			t.Fatalf("expected cleared veterinarian, got %#v", ap)
		}
	}

	expectRedirect(t, b.post("/clients/"+clientID+"/delete", url.Values{}), "/clients")
	appts = decode[listData[appointments.Appointment]](t, b.get("/appointments"))
	if appts.Data.Page.TotalItems != 0 {
		t.Fatalf("deleting the client must remove its appointments, got %d", appts.Data.Page.TotalItems)
	}
}

func TestHTTP_AppointmentRejectsUnknownReferences(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("vet", secret)

	r := b.post("/register/appointment", url.Values{
		"client": {"ghost"}, "pet": {"ghost"}, "date": {"01-05-2024"}, "reason": {"party"},
	})
	if r.status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", r.status)
	}
	errs := decode[map[string]any](t, r).Errors
	for _, f := range []string{"client", "pet", "date", "reason"} {
		if errs[f] == "" {
			t.Fatalf("expected error on %s, got %#v", f, errs)
		}
	}
}

func TestHTTP_AdminCannotDeleteSelf(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("admin", secret)

	self, err := a.users.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}

	r := b.get("/users/" + self.ID + "/delete")
	expectRedirect(t, r, "/users")
	expectFlash(t, b.home(), "you cannot delete your own account")

	expectRedirect(t, b.post("/users/"+self.ID+"/delete", url.Values{}), "/users")
	if _, err := a.users.Get(context.Background(), self.ID); err != nil {
		t.Fatalf("admin must still exist: %v", err)
	}

	other, _ := a.users.FindByUsername(context.Background(), "vet")
	if r := b.get("/users/" + other.ID + "/delete"); r.status != http.StatusOK {
		t.Fatalf("deleting another user should ask for confirmation, got %d", r.status)
	}
	expectRedirect(t, b.post("/users/"+other.ID+"/delete", url.Values{}), "/users")
	if _, err := a.users.Get(context.Background(), other.ID); err == nil {
		t.Fatalf("vet should be deleted")
	}
}

func TestHTTP_UserCreateRules(t *testing.T) {
	a := newApp(t)
	b := a.newBrowser(t)
	b.login("admin", secret)

	base := url.Values{
		"username": {"nuevo"}, "password": {"abcdef"}, "confirm_password": {"abcdef"},
		"email": {"nuevo@example.com"}, "full_name": {"Nuevo"}, "role": {"veterinarian"},
	}
	with := func(k, v string) url.Values {
		f := url.Values{}
		for key, vals := range base {
			f[key] = append([]string(nil), vals...)
		}
		f.Set(k, v)
		return f
	}

	cases := []struct {
		form url.Values
		msg  string
	}{
		{with("email", ""), "all fields except phone are required"},
		{with("confirm_password", "abcdeg"), "passwords do not match"},
		{with("password", "abc"), "passwords do not match"},
		{with("username", "vet"), `username "vet" already exists`},
	}
	short := with("password", "abc")
	short.Set("confirm_password", "abc")
	cases = append(cases, struct {
		form url.Values
		msg  string
	}{short, "password must be at least 6 characters"})

	for _, tc := range cases {
		r := b.post("/users/new", tc.form)
		if r.status != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", tc.msg, r.status)
		}
		env := decode[map[string]any](t, r)
		expectFlash(t, env, tc.msg)
		if _, ok := env.Data["input"].(map[string]any)["password"]; ok {
			t.Fatalf("password must not be echoed back")
		}
	}

	expectRedirect(t, b.post("/users/new", base), "/users")
	nb := a.newBrowser(t)
	expectRedirect(t, nb.login("nuevo", "abcdef"), "/")
}
