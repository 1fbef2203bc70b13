package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/internal/domain/mocks"
	"github.com/remsins/webhook/internal/service"
	"github.com/remsins/webhook/pkg/logger"
)

const testSubID = "6c2c5c16-91a7-4d3a-a25e-12c1a2f3f7de"

type subscriptionHandlerFixture struct {
	repo    *mocks.MockSubscriptionRepository
	cache   *mocks.MockSubscriptionCache
	logRepo *mocks.MockDeliveryLogRepository
	mux     *http.ServeMux
}

func setupSubscriptionHandlerTest(t *testing.T) *subscriptionHandlerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &subscriptionHandlerFixture{
		repo:    mocks.NewMockSubscriptionRepository(ctrl),
		cache:   mocks.NewMockSubscriptionCache(ctrl),
		logRepo: mocks.NewMockDeliveryLogRepository(ctrl),
		mux:     http.NewServeMux(),
	}

	log := logger.NewTestLogger(t)
	svc := service.NewSubscriptionService(f.repo, f.cache, log)
	status := service.NewStatusService(f.logRepo)

	handler := NewSubscriptionHandler(svc, status, log)
	handler.RegisterRoutes(f.mux)

	return f
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestSubscriptionHandler_Create(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Put(gomock.Any(), gomock.Any())

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/",
		strings.NewReader(`{"target_url":"https://example.com/hook","secret":"s3cret","events":["order.created"]}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var sub domain.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "https://example.com/hook", sub.TargetURL)
	require.NotNil(t, sub.Secret)
	assert.Equal(t, "s3cret", *sub.Secret)
	assert.Equal(t, []string{"order.created"}, sub.Events)
}

func TestSubscriptionHandler_CreateInvalidURL(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/",
		strings.NewReader(`{"target_url":"not-a-url"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Msg  string   `json:"msg"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, []string{"body", "target_url"}, body.Detail[0].Loc)
	assert.Contains(t, body.Detail[0].Msg, "invalid target_url")
}

func TestSubscriptionHandler_CreateInvalidBody(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_Get(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	want := &domain.Subscription{ID: testSubID, TargetURL: "https://example.com/hook", Events: []string{}}
	f.cache.EXPECT().GetOrLoad(gomock.Any(), testSubID).Return(want, nil)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+testSubID, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sub domain.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, testSubID, sub.ID)
	assert.Nil(t, sub.Secret)
}

func TestSubscriptionHandler_GetMalformedID(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSubscriptionHandler_GetNotFound(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	f.cache.EXPECT().GetOrLoad(gomock.Any(), testSubID).
		Return(nil, &domain.ErrNotFound{Entity: "subscription", ID: testSubID})

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+testSubID, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Subscription not found", detailOf(t, rec))
}

func TestSubscriptionHandler_List(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	subs := []*domain.Subscription{
		{ID: "id-1", TargetURL: "https://a.example.com", Events: []string{}},
		{ID: "id-2", TargetURL: "https://b.example.com", Events: []string{}},
	}
	f.repo.EXPECT().List(gomock.Any(), 5, 10).Return(subs, nil)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/?skip=5&limit=10", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*domain.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestSubscriptionHandler_Update(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	existing := &domain.Subscription{ID: testSubID, TargetURL: "https://old.example.com", Events: []string{}}
	f.repo.EXPECT().GetByID(gomock.Any(), testSubID).Return(existing, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Put(gomock.Any(), gomock.Any())

	req := httptest.NewRequest(http.MethodPatch, "/subscriptions/"+testSubID,
		strings.NewReader(`{"target_url":"https://new.example.com"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sub domain.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, "https://new.example.com", sub.TargetURL)
}

func TestSubscriptionHandler_UpdateNotFound(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	f.repo.EXPECT().GetByID(gomock.Any(), testSubID).
		Return(nil, &domain.ErrNotFound{Entity: "subscription", ID: testSubID})

	req := httptest.NewRequest(http.MethodPatch, "/subscriptions/"+testSubID,
		strings.NewReader(`{"target_url":"https://new.example.com"}`))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionHandler_Delete(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	f.repo.EXPECT().Delete(gomock.Any(), testSubID).Return(nil)
	f.cache.EXPECT().Invalidate(gomock.Any(), testSubID)

	req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+testSubID, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSubscriptionHandler_DeleteNotFound(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	f.repo.EXPECT().Delete(gomock.Any(), testSubID).
		Return(&domain.ErrNotFound{Entity: "subscription", ID: testSubID})

	req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+testSubID, nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Subscription not found", detailOf(t, rec))
}

func TestSubscriptionHandler_ListAttempts(t *testing.T) {
	f := setupSubscriptionHandlerTest(t)

	logs := []*domain.DeliveryLog{
		{ID: "log-1", WebhookID: "wh-1", SubscriptionID: testSubID, Outcome: domain.OutcomeSuccess},
	}
	f.logRepo.EXPECT().ListBySubscriptionID(gomock.Any(), testSubID, 20).Return(logs, nil)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+testSubID+"/attempts", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*domain.DeliveryLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, domain.OutcomeSuccess, got[0].Outcome)
}
