package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stokvela/backend/internal/auth"
	"github.com/stokvela/backend/internal/momo"
	"github.com/stokvela/backend/internal/service"
	"github.com/stokvela/backend/internal/storage/memory"
)

// newMomoProvider serves a minimal mobile money sandbox.
func newMomoProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	// Method-prefixed ServeMux patterns need Go 1.22+; this toolchain is
	// older, so routes are registered by path with explicit method guards.
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/disbursement/v1_0/transfer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/collection/v1_0/requesttopay/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "SUCCESSFUL", "amount": "500", "currency": "ZAR",
			"financialTransactionId": "ft-1", "externalId": "stokvel_1_1_1",
		})
	})
	mux.HandleFunc("/collection/v1_0/account/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"availableBalance": "10000", "currency": "ZAR"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPINAuthenticator(store)
	momoClient := momo.NewClient(momo.Config{
		BaseURL:           newMomoProvider(t).URL,
		SubscriptionKey:   "sub-key",
		APIUser:           "api-user",
		APIKey:            "api-key",
		TargetEnvironment: "sandbox",
	})

	router := NewRouter(Deps{
		Store:      store,
		JWT:        jwtManager,
		Auth:       service.NewAuthService(authenticator, jwtManager),
		Stokvels:   service.NewStokvelService(store),
		Votes:      service.NewVoteService(store),
		Education:  service.NewEducationService(store, nil),
		Analytics:  service.NewAnalyticsService(store),
		MomoClient: momoClient,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// call issues a request and decodes the JSON response into a generic map.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &payload)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

// register creates an account and returns its session token.
func register(t *testing.T, srv *httptest.Server, phone, first string) string {
	t.Helper()
	status, resp := call(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"phoneNumber": phone, "firstName": first, "lastName": "Tester", "pin": "1234",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d, resp %v", phone, status, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", phone, resp)
	}
	return token
}

func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, resp := call(t, srv, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK || resp["success"] != true {
		t.Fatalf("health = %d %v", status, resp)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	status, resp := call(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"phoneNumber": "+27831234567", "firstName": "Thandi", "lastName": "Mokoena", "pin": "1234",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d, resp %v", status, resp)
	}
	if resp["success"] != true || resp["token"] == "" {
		t.Fatalf("register response = %v", resp)
	}
	user, _ := resp["user"].(map[string]any)
	if user["phoneNumber"] != "+27831234567" {
		t.Errorf("registered user = %v", user)
	}
	if _, leaked := user["pinHash"]; leaked {
		t.Error("PIN hash leaked in register response")
	}

	// Duplicate phone number.
	status, _ = call(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"phoneNumber": "+27831234567", "firstName": "Other", "lastName": "Person", "pin": "9999",
	})
	if status != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", status)
	}

	status, resp = call(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"phoneNumber": "+27831234567", "pin": "1234",
	})
	if status != http.StatusOK || resp["token"] == "" {
		t.Fatalf("login = %d %v", status, resp)
	}

	// Wrong PIN and unknown phone both come back 401.
	status, _ = call(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"phoneNumber": "+27831234567", "pin": "0000",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("wrong PIN status = %d, want 401", status)
	}
	status, _ = call(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"phoneNumber": "+27830000000", "pin": "1234",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("unknown phone status = %d, want 401", status)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	status, resp := call(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"phoneNumber": "abc", "firstName": "", "lastName": "", "pin": "12",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	errs, _ := resp["errors"].([]any)
	if len(errs) != 4 {
		t.Errorf("validation errors = %d, want 4: %v", len(errs), resp)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/stokvels", "/votes", "/momo/balance", "/education/modules", "/analytics"} {
		status, resp := call(t, srv, http.MethodGet, path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, status)
		}
		if resp["success"] != false {
			t.Errorf("GET %s unauthorized envelope = %v", path, resp)
		}
	}

	status, _ := call(t, srv, http.MethodGet, "/stokvels", "not-a-valid-token", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", status)
	}
}

func TestStokvelLifecycle(t *testing.T) {
	srv := newTestServer(t)

	tokenA := register(t, srv, "+27831111111", "Thandi")
	tokenB := register(t, srv, "+27832222222", "Sipho")
	tokenC := register(t, srv, "+27833333333", "Lerato")

	// Fresh accounts see an empty list, not null.
	status, resp := call(t, srv, http.MethodGet, "/stokvels", tokenA, nil)
	if status != http.StatusOK {
		t.Fatalf("list = %d %v", status, resp)
	}
	if list, ok := resp["data"].([]any); !ok || len(list) != 0 {
		t.Errorf("fresh list data = %v, want []", resp["data"])
	}

	status, resp = call(t, srv, http.MethodPost, "/stokvels", tokenA, map[string]any{
		"name": "December Groceries", "type": "Savings",
		"contributionAmount": 500, "frequency": "monthly", "maxMembers": 2,
	})
	if status != http.StatusCreated {
		t.Fatalf("create = %d %v", status, resp)
	}
	created := data(t, resp)
	inviteCode, _ := created["inviteCode"].(string)
	if len(inviteCode) != 6 {
		t.Fatalf("inviteCode = %q, want 6 characters", inviteCode)
	}
	if created["targetAmount"] != float64(12000) {
		t.Errorf("default targetAmount = %v, want 12000", created["targetAmount"])
	}
	stokvelID := int64(created["id"].(float64))

	// Non-member cannot view details.
	status, _ = call(t, srv, http.MethodGet, fmt.Sprintf("/stokvels/%d", stokvelID), tokenB, nil)
	if status != http.StatusForbidden {
		t.Errorf("outsider get = %d, want 403", status)
	}

	// Wrong invite code.
	status, _ = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/join", stokvelID), tokenB, map[string]any{
		"inviteCode": "WRONG1",
	})
	if status != http.StatusBadRequest {
		t.Errorf("wrong invite = %d, want 400", status)
	}

	status, resp = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/join", stokvelID), tokenB, map[string]any{
		"inviteCode": inviteCode,
	})
	if status != http.StatusOK {
		t.Fatalf("join = %d %v", status, resp)
	}
	joined := data(t, resp)
	if members, _ := joined["members"].([]any); len(members) != 2 {
		t.Errorf("members after join = %d, want 2", len(members))
	}

	// Repeat join fails.
	status, _ = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/join", stokvelID), tokenB, map[string]any{
		"inviteCode": inviteCode,
	})
	if status != http.StatusBadRequest {
		t.Errorf("repeat join = %d, want 400", status)
	}

	// The stokvel is at capacity.
	status, _ = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/join", stokvelID), tokenC, map[string]any{
		"inviteCode": inviteCode,
	})
	if status != http.StatusBadRequest {
		t.Errorf("join full stokvel = %d, want 400", status)
	}

	status, resp = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/contribute", stokvelID), tokenB, map[string]any{
		"amount": 500, "paymentReference": "momo-ref-1",
	})
	if status != http.StatusOK {
		t.Fatalf("contribute = %d %v", status, resp)
	}
	contribution := data(t, resp)
	if contribution["newBalance"] != float64(500) {
		t.Errorf("newBalance = %v, want 500", contribution["newBalance"])
	}

	status, resp = call(t, srv, http.MethodGet, fmt.Sprintf("/stokvels/%d", stokvelID), tokenB, nil)
	if status != http.StatusOK {
		t.Fatalf("get = %d %v", status, resp)
	}
	view := data(t, resp)
	if view["myContribution"] != float64(500) {
		t.Errorf("myContribution = %v, want 500", view["myContribution"])
	}
	if view["balance"] != float64(500) {
		t.Errorf("balance = %v, want 500", view["balance"])
	}
}

func TestVoteEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "+27831111111", "Thandi")

	_, resp := call(t, srv, http.MethodPost, "/stokvels", token, map[string]any{
		"name": "Family", "type": "Savings",
		"contributionAmount": 500, "frequency": "monthly", "maxMembers": 5,
	})
	stokvelID := data(t, resp)["id"].(float64)

	status, resp := call(t, srv, http.MethodPost, "/votes", token, map[string]any{
		"title":     "Invest surplus",
		"stokvelId": stokvelID,
		"options":   []string{"Yes, invest", "No, keep saving"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create vote = %d %v", status, resp)
	}
	voteID := int64(data(t, resp)["id"].(float64))

	status, resp = call(t, srv, http.MethodPost, fmt.Sprintf("/votes/%d/cast", voteID), token, map[string]any{
		"option": "Yes, invest",
	})
	if status != http.StatusOK {
		t.Fatalf("cast = %d %v", status, resp)
	}
	cast := data(t, resp)
	if cast["yesVotes"] != float64(1) || cast["hasVoted"] != true {
		t.Errorf("cast result = %v", cast)
	}

	// Second ballot from the same user.
	status, _ = call(t, srv, http.MethodPost, fmt.Sprintf("/votes/%d/cast", voteID), token, map[string]any{
		"option": "No, keep saving",
	})
	if status != http.StatusBadRequest {
		t.Errorf("repeat ballot = %d, want 400", status)
	}

	status, resp = call(t, srv, http.MethodGet, "/votes", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list votes = %d %v", status, resp)
	}
	votes, _ := resp["data"].([]any)
	if len(votes) != 1 {
		t.Fatalf("votes listed = %d, want 1", len(votes))
	}
	vote, _ := votes[0].(map[string]any)
	if vote["totalVotes"] != float64(1) || vote["hasVoted"] != true {
		t.Errorf("listed vote = %v", vote)
	}
}

func TestMomoEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "+27831111111", "Thandi")

	status, resp := call(t, srv, http.MethodPost, "/momo/request-payment", token, map[string]any{
		"amount": 500, "phoneNumber": "+27831234567", "stokvelId": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("request-payment = %d %v", status, resp)
	}
	payment := data(t, resp)
	referenceID, _ := payment["referenceId"].(string)
	if referenceID == "" || payment["status"] != "PENDING" {
		t.Fatalf("payment = %v", payment)
	}

	status, resp = call(t, srv, http.MethodGet, "/momo/payment-status/"+referenceID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("payment-status = %d %v", status, resp)
	}
	if data(t, resp)["status"] != "SUCCESSFUL" {
		t.Errorf("status payload = %v", resp)
	}

	status, resp = call(t, srv, http.MethodGet, "/momo/balance", token, nil)
	if status != http.StatusOK {
		t.Fatalf("balance = %d %v", status, resp)
	}
	if data(t, resp)["availableBalance"] != "10000" {
		t.Errorf("balance payload = %v", resp)
	}

	status, resp = call(t, srv, http.MethodPost, "/momo/transfer", token, map[string]any{
		"amount": 6000, "phoneNumber": "+27831234567", "stokvelId": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("transfer = %d %v", status, resp)
	}

	status, resp = call(t, srv, http.MethodPost, "/momo/setup-recurring", token, map[string]any{
		"stokvelId": 1, "amount": 500, "frequency": "monthly",
	})
	if status != http.StatusOK {
		t.Fatalf("setup-recurring = %d %v", status, resp)
	}
	recurring := data(t, resp)
	if recurring["status"] != "ACTIVE" || recurring["recurringPaymentId"] == "" {
		t.Errorf("recurring payload = %v", recurring)
	}

	status, _ = call(t, srv, http.MethodPost, "/momo/setup-recurring", token, map[string]any{
		"stokvelId": 1, "amount": 500, "frequency": "daily",
	})
	if status != http.StatusBadRequest {
		t.Errorf("invalid frequency = %d, want 400", status)
	}
}

func TestEducationEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "+27831111111", "Thandi")

	status, resp := call(t, srv, http.MethodGet, "/education/modules", token, nil)
	if status != http.StatusOK {
		t.Fatalf("modules = %d %v", status, resp)
	}
	modules, _ := resp["data"].([]any)
	if len(modules) == 0 {
		t.Fatal("no modules returned")
	}

	status, resp = call(t, srv, http.MethodGet, "/education/modules/1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("module = %d %v", status, resp)
	}
	if data(t, resp)["id"] != float64(1) {
		t.Errorf("module payload = %v", resp)
	}

	status, _ = call(t, srv, http.MethodGet, "/education/modules/999", token, nil)
	if status != http.StatusNotFound {
		t.Errorf("missing module = %d, want 404", status)
	}

	status, resp = call(t, srv, http.MethodPost, "/education/progress", token, map[string]any{
		"moduleId": 1, "completed": true, "score": 85,
	})
	if status != http.StatusOK {
		t.Fatalf("save progress = %d %v", status, resp)
	}

	status, resp = call(t, srv, http.MethodGet, "/education/progress", token, nil)
	if status != http.StatusOK {
		t.Fatalf("progress = %d %v", status, resp)
	}
	progress := data(t, resp)
	if progress["totalScore"] != float64(85) {
		t.Errorf("progress payload = %v", progress)
	}

	status, resp = call(t, srv, http.MethodPost, "/education/calculate/savings", token, map[string]any{
		"monthlyAmount": 1000, "months": 12, "interestRate": 0,
	})
	if status != http.StatusOK {
		t.Fatalf("calculate savings = %d %v", status, resp)
	}
	projection := data(t, resp)
	if projection["futureValue"] != float64(12000) {
		t.Errorf("zero-rate futureValue = %v, want 12000", projection["futureValue"])
	}

	status, resp = call(t, srv, http.MethodPost, "/education/calculate/stokvel", token, map[string]any{
		"members": 10, "monthlyContribution": 500, "duration": 12,
	})
	if status != http.StatusOK {
		t.Fatalf("calculate stokvel = %d %v", status, resp)
	}
	pool := data(t, resp)
	if pool["totalPool"] != float64(60000) {
		t.Errorf("totalPool = %v, want 60000", pool["totalPool"])
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "+27831111111", "Thandi")

	_, resp := call(t, srv, http.MethodPost, "/stokvels", token, map[string]any{
		"name": "Family", "type": "Savings", "contributionAmount": 500,
		"targetAmount": 10000, "frequency": "monthly", "maxMembers": 5,
	})
	stokvelID := int64(data(t, resp)["id"].(float64))
	_, _ = call(t, srv, http.MethodPost, fmt.Sprintf("/stokvels/%d/contribute", stokvelID), token, map[string]any{
		"amount": 2500, "paymentReference": "momo-ref-1",
	})

	status, resp := call(t, srv, http.MethodGet, "/analytics", token, nil)
	if status != http.StatusOK {
		t.Fatalf("analytics = %d %v", status, resp)
	}
	overview := data(t, resp)
	if overview["totalContributions"] != float64(2500) {
		t.Errorf("totalContributions = %v, want 2500", overview["totalContributions"])
	}
	if overview["activeStokvels"] != float64(1) {
		t.Errorf("activeStokvels = %v, want 1", overview["activeStokvels"])
	}

	status, resp = call(t, srv, http.MethodGet, fmt.Sprintf("/analytics/stokvel/%d", stokvelID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("stokvel analytics = %d %v", status, resp)
	}
	performance, _ := data(t, resp)["performance"].(map[string]any)
	if performance["progressPercentage"] != float64(25) {
		t.Errorf("progressPercentage = %v, want 25", performance["progressPercentage"])
	}

	status, resp = call(t, srv, http.MethodGet, "/analytics/insights", token, nil)
	if status != http.StatusOK {
		t.Fatalf("insights = %d %v", status, resp)
	}
	insights := data(t, resp)
	if _, ok := insights["goalTracking"]; !ok {
		t.Errorf("insights payload = %v", insights)
	}
}
