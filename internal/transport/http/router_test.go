package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"
	"github.com/cwrk-planet/bizos/internal/imagegen"
	"github.com/cwrk-planet/bizos/internal/postgres"
	"github.com/cwrk-planet/bizos/internal/service"
	httpmw "github.com/cwrk-planet/bizos/internal/transport/http/middleware"
	"github.com/cwrk-planet/bizos/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userA  = "11111111-1111-4111-8111-111111111111"
	userB  = "22222222-2222-4222-8222-222222222222"
	group1 = "33333333-3333-4333-8333-333333333333"
	bizID  = "44444444-4444-4444-8444-444444444444"
)

type env struct {
	profiles    *mockProfiles
	members     *mockMembers
	invitations *mockInvitations
	chat        *mockChat
	typing      *mockTyping
	images      *mockImages
	dashboard   *mockDashboard
	ledger      *mockLedger
	router      http.Handler
}

func newEnv(t *testing.T, opts ...func(*Deps)) *env {
	t.Helper()
	e := &env{
		profiles:    &mockProfiles{},
		members:     &mockMembers{},
		invitations: &mockInvitations{},
		chat:        &mockChat{},
		typing:      &mockTyping{},
		images:      &mockImages{},
		dashboard:   &mockDashboard{},
		ledger:      &mockLedger{},
	}
	d := Deps{
		Handler: NewHandler(Services{
			Profiles:    e.profiles,
			Members:     e.members,
			Invitations: e.invitations,
			Chat:        e.chat,
			Typing:      e.typing,
			Images:      e.images,
			Dashboard:   e.dashboard,
			Ledger:      e.ledger,
		}),
		DB: fakePinger{},
	}
	for _, o := range opts {
		o(&d)
	}
	e.router = NewRouter(d)
	return e
}

func (e *env) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	e = newEnv(t, func(d *Deps) { d.DB = fakePinger{err: errors.New("down")} })
	require.Equal(t, http.StatusServiceUnavailable, e.do(http.MethodGet, "/healthz", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t)
	e.dashboard.On("Get", mock.Anything, bizID).Return(&domain.Dashboard{}, nil)
	e.do(http.MethodGet, "/api/dashboard/"+bizID, "")

	rec := e.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "bizos_http_requests_total")
}

func TestProfiles(t *testing.T) {
	e := newEnv(t)
	e.profiles.On("Get", mock.Anything, userB).Return(nil, domain.ErrNotFound)
	e.profiles.On("Get", mock.Anything, userA).Return(&domain.Profile{ID: userA, Role: domain.RoleBusinessOwner}, nil)

	rec := e.do(http.MethodGet, "/api/profiles/"+userB, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Profile not found"}`, rec.Body.String())

	rec = e.do(http.MethodGet, "/api/profiles/"+userA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"role":"business_owner"`)

	rec = e.do(http.MethodPost, "/api/profiles", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"Invalid profile data"`)
	require.Contains(t, rec.Body.String(), `{"field":"id","rule":"required"}`)
	require.Contains(t, rec.Body.String(), `{"field":"email","rule":"email"}`)

	e.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool { return p.ID == userB })).
		Return(&domain.Profile{ID: userB, Role: domain.RoleBusinessManager}, nil)
	rec = e.do(http.MethodPost, "/api/profiles", fmt.Sprintf(`{"id":%q}`, userB))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestMalformedJSON(t *testing.T) {
	e := newEnv(t)
	rec := e.do(http.MethodPost, "/api/profiles", `{"id":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Malformed JSON"}`, rec.Body.String())
}

func TestGroupMembers(t *testing.T) {
	e := newEnv(t)
	e.members.On("Add", mock.Anything, group1, userA, false).Return(nil, domain.ErrAlreadyMember)
	e.members.On("Remove", mock.Anything, group1, userA).Return(nil).Once()
	e.members.On("Remove", mock.Anything, group1, userA).Return(domain.ErrNotMember).Once()

	rec := e.do(http.MethodPost, "/api/group-members", fmt.Sprintf(`{"groupId":%q,"userId":%q}`, group1, userA))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(http.MethodDelete, "/api/group-members/"+group1+"/"+userA, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(http.MethodDelete, "/api/group-members/"+group1+"/"+userA, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(http.MethodPut, "/api/group-members/"+group1+"/"+userA, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"field":"isAdmin"`)
}

func TestAcceptInvitation(t *testing.T) {
	e := newEnv(t)
	e.invitations.On("Accept", mock.Anything, "gone", userA).Return(nil, domain.ErrInvitationExpired)
	e.invitations.On("Accept", mock.Anything, "nope", userA).Return(nil, domain.ErrNotFound)
	e.invitations.On("Accept", mock.Anything, "ok", userA).
		Return(&domain.JoinResult{Status: domain.JoinStatusJoined, GroupID: group1}, nil)

	body := fmt.Sprintf(`{"userId":%q}`, userA)

	rec := e.do(http.MethodPost, "/api/group-invitations/code/gone/accept", body)
	require.Equal(t, http.StatusGone, rec.Code)
	require.JSONEq(t, `{"error":"This invitation link has expired"}`, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/group-invitations/code/nope/accept", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Invitation not found"}`, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/group-invitations/code/ok/accept", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, fmt.Sprintf(`{"status":"joined","groupId":%q}`, group1), rec.Body.String())

	// без тела берётся пользователь из X-User-ID
	rec = e.do(http.MethodPost, "/api/group-invitations/code/ok/accept", "", httpmw.HeaderUserID, userA)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/api/group-invitations/code/ok/accept", body, httpmw.HeaderUserID, userB)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(http.MethodPost, "/api/group-invitations/code/ok/accept", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvitation(t *testing.T) {
	e := newEnv(t)
	e.invitations.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateInvitationInput) bool {
		return in.GroupID == group1 && in.CreatedBy == userA && *in.ExpiresInDays == 7
	})).Return(&domain.GroupInvitation{InvitationCode: "abcdefghijklmnop", IsActive: true}, nil)

	rec := e.do(http.MethodPost, "/api/group-invitations",
		fmt.Sprintf(`{"groupId":%q,"createdBy":%q,"expiresInDays":7}`, group1, userA))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"invitationCode":"abcdefghijklmnop"`)

	rec = e.do(http.MethodPost, "/api/group-invitations",
		fmt.Sprintf(`{"groupId":%q,"createdBy":%q,"maxUses":0}`, group1, userA))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `{"field":"maxUses","rule":"min"}`)
}

func TestMessages(t *testing.T) {
	e := newEnv(t)
	e.chat.On("History", mock.Anything, group1, "", 20).
		Return([]domain.ChatMessage{{ID: "m1"}}, "cursor-2", nil)
	e.chat.On("History", mock.Anything, group1, "bad", 0).
		Return(nil, "", fmt.Errorf("%w: decode", postgres.ErrInvalidCursor))
	e.chat.On("Send", mock.Anything, mock.Anything).Return(nil, domain.ErrMessageTooLong)

	rec := e.do(http.MethodGet, "/api/chat-messages/"+group1+"?limit=20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cursor-2", rec.Header().Get(HeaderNextCursor))

	rec = e.do(http.MethodGet, "/api/chat-messages/"+group1+"?before=bad", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"invalid cursor"}`, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/chat-messages",
		fmt.Sprintf(`{"groupId":%q,"userId":%q,"content":"x"}`, group1, userA))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTyping(t *testing.T) {
	e := newEnv(t)
	e.typing.On("Clear", mock.Anything, group1, userA).Return(nil)
	e.typing.On("Touch", mock.Anything, group1, userA).Return(&domain.TypingIndicator{GroupID: group1, UserID: userA, LastTyping: time.Now()}, nil)

	require.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/api/typing-indicators/"+group1+"/"+userA, "").Code)
	rec := e.do(http.MethodPost, "/api/typing-indicators", fmt.Sprintf(`{"groupId":%q,"userId":%q}`, group1, userA))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateImage(t *testing.T) {
	e := newEnv(t)
	e.images.On("Generate", mock.Anything, service.GenerateImageInput{Prompt: "p", Style: "modern", BusinessID: bizID}).
		Return(nil, &imagegen.APIError{StatusCode: 429, StatusText: "Too Many Requests"}).Once()
	e.images.On("Generate", mock.Anything, service.GenerateImageInput{Prompt: "p", Style: "s", BusinessID: bizID}).
		Return(nil, imagegen.ErrNotConfigured).Once()
	e.images.On("Generate", mock.Anything, service.GenerateImageInput{Prompt: "ok", Style: "s", BusinessID: bizID}).
		Return(&domain.GeneratedImage{ID: "img"}, nil).Once()

	rec := e.do(http.MethodPost, "/api/generate-image", fmt.Sprintf(`{"prompt":"p","style":"modern","business_id":%q}`, bizID))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"OpenAI API error: 429 Too Many Requests"}`, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/generate-image", fmt.Sprintf(`{"prompt":"p","style":"s","business_id":%q}`, bizID))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"OpenAI API key not configured"}`, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/generate-image", fmt.Sprintf(`{"prompt":"ok","style":"s","business_id":%q}`, bizID))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateImage_MissingFields(t *testing.T) {
	images := service.NewImageService(nil, nil, nil)
	h := NewRouter(Deps{Handler: NewHandler(Services{Images: images})})

	req := httptest.NewRequest(http.MethodPost, "/api/generate-image", strings.NewReader(`{"prompt":"p"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Missing required fields: prompt, style, and business_id are required"}`, rec.Body.String())
}

func TestGenerateImage_RateLimited(t *testing.T) {
	e := newEnv(t, func(d *Deps) { d.ImageLimiter = httpmw.NewRateLimiter(1, 1) })
	e.images.On("Generate", mock.Anything, mock.Anything).Return(&domain.GeneratedImage{ID: "img"}, nil)

	body := fmt.Sprintf(`{"prompt":"p","style":"s","business_id":%q}`, bizID)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/generate-image", body).Code)
	require.Equal(t, http.StatusTooManyRequests, e.do(http.MethodPost, "/api/generate-image", body).Code)
}

func TestTransactions(t *testing.T) {
	e := newEnv(t)
	e.ledger.On("Create", mock.Anything, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Amount == 12.5 && tx.Date.Format("2006-01-02") == "2025-03-01" && tx.Type == domain.TransactionIncome
	})).Return(&domain.Transaction{ID: "t1"}, nil)
	e.ledger.On("Delete", mock.Anything, userB).Return(domain.ErrNotFound)

	rec := e.do(http.MethodPost, "/api/transactions", fmt.Sprintf(
		`{"businessId":%q,"date":"2025-03-01","description":"Sale","amount":12.5,"type":"income","category":"Sales"}`, bizID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(http.MethodPost, "/api/transactions", fmt.Sprintf(
		`{"businessId":%q,"date":"2025-03-01","description":"Sale","amount":-1,"type":"gift","category":"Sales"}`, bizID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `{"field":"amount","rule":"gte"}`)
	require.Contains(t, rec.Body.String(), `{"field":"type","rule":"oneof"}`)

	rec = e.do(http.MethodDelete, "/api/transactions/"+userB, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Transaction not found"}`, rec.Body.String())
}

func TestInternalErrorsAreHidden(t *testing.T) {
	e := newEnv(t)
	e.dashboard.On("Get", mock.Anything, bizID).Return(nil, errors.New("pg: connection reset"))

	rec := e.do(http.MethodGet, "/api/dashboard/"+bizID, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestGenerateImage_RateLimitIgnoresClientHeaders(t *testing.T) {
	e := newEnv(t, func(d *Deps) { d.ImageLimiter = httpmw.NewRateLimiter(1, 1) })
	e.images.On("Generate", mock.Anything, mock.Anything).Return(&domain.GeneratedImage{ID: "img"}, nil)

	body := fmt.Sprintf(`{"prompt":"p","style":"s","business_id":%q}`, bizID)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/generate-image", body).Code)

	for i := 0; i < 10; i++ {
		rec := e.do(http.MethodPost, "/api/generate-image", body,
			httpmw.HeaderUserID, uuid.NewString(),
			"X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1),
			"X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1),
		)
		require.Equal(t, http.StatusTooManyRequests, rec.Code, "request %d", i)
	}
	e.images.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerateImage_TrustedProxyKeysOnForwardedIP(t *testing.T) {
	e := newEnv(t, func(d *Deps) {
		d.ImageLimiter = httpmw.NewRateLimiter(1, 1)
		d.TrustProxy = true
	})
	e.images.On("Generate", mock.Anything, mock.Anything).Return(&domain.GeneratedImage{ID: "img"}, nil)

	body := fmt.Sprintf(`{"prompt":"p","style":"s","business_id":%q}`, bizID)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/generate-image", body, "X-Forwarded-For", "198.51.100.1").Code)
	require.Equal(t, http.StatusTooManyRequests, e.do(http.MethodPost, "/api/generate-image", body, "X-Forwarded-For", "198.51.100.1").Code)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/generate-image", body, "X-Forwarded-For", "198.51.100.2").Code)
}

func TestMalformedPathIDs(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		method, path string
		code         int
		body         string
	}{
		{http.MethodGet, "/api/chat-groups/abc", http.StatusNotFound, `{"error":"Chat group not found"}`},
		{http.MethodGet, "/api/profiles/abc", http.StatusNotFound, `{"error":"Profile not found"}`},
		{http.MethodDelete, "/api/transactions/abc", http.StatusNotFound, `{"error":"Transaction not found"}`},
		{http.MethodDelete, "/api/group-members/abc/" + userA, http.StatusNotFound, `{"error":"User is not a member of this group"}`},
		{http.MethodGet, "/api/chat-messages/abc", http.StatusBadRequest, `{"error":"Invalid groupId"}`},
		{http.MethodGet, "/api/dashboard/abc", http.StatusBadRequest, `{"error":"Invalid businessId"}`},
		{http.MethodGet, "/api/chat-groups/business/" + bizID + "?userId=abc", http.StatusBadRequest, `{"error":"Invalid userId"}`},
	}
	for _, c := range cases {
		rec := e.do(c.method, c.path, "")
		require.Equal(t, c.code, rec.Code, c.path)
		require.JSONEq(t, c.body, rec.Body.String(), c.path)
	}
	e.chat.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	e.dashboard.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGenerateImage_MalformedBusinessIDSkipsProvider(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/generate-image", `{"prompt":"p","style":"s","business_id":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid business_id"}`, rec.Body.String())
	e.images.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestDatabaseDetailsAreHidden(t *testing.T) {
	e := newEnv(t)
	e.dashboard.On("Get", mock.Anything, bizID).
		Return(nil, fmt.Errorf("dashboard: %w: invalid input syntax for type uuid", domain.ErrInvalidInput))

	rec := e.do(http.MethodGet, "/api/dashboard/"+bizID, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid input"}`, rec.Body.String())
}

func TestFailImage_LogsProviderBody(t *testing.T) {
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/api/generate-image", nil)
	req = req.WithContext(logger.WithContext(req.Context(), slog.New(slog.NewTextHandler(&buf, nil))))
	rec := httptest.NewRecorder()

	NewHandler(Services{}).failImage(rec, req, &imagegen.APIError{
		StatusCode: 400,
		StatusText: "Bad Request",
		Body:       `{"error":{"message":"content policy violation"}}`,
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"OpenAI API error: 400 Bad Request"}`, rec.Body.String())
	require.Contains(t, buf.String(), "content policy violation")
}
