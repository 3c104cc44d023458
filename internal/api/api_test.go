package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/mocks"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testCookie = "health_tracker_session"
	testToken  = "valid-token"
)

type testServices struct {
	auth       *mocks.MockAuthService
	profile    *mocks.MockProfileService
	vitals     *mocks.MockVitalsService
	meals      *mocks.MockMealService
	activities *mocks.MockActivityService
	summaries  *mocks.MockSummaryService
	analysis   *mocks.MockAnalysisService
}

// newTestRouter wires every handler to mocks. Requests carrying testToken
// authenticate as userID.
func newTestRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *testServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := &testServices{
		auth:       new(mocks.MockAuthService),
		profile:    new(mocks.MockProfileService),
		vitals:     new(mocks.MockVitalsService),
		meals:      new(mocks.MockMealService),
		activities: new(mocks.MockActivityService),
		summaries:  new(mocks.MockSummaryService),
		analysis:   new(mocks.MockAnalysisService),
	}
	m.auth.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: userID, Username: "alice"}, nil)
	m.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)

	router := gin.New()
	RegisterRoutes(router, Services{
		Auth:       m.auth,
		Profile:    m.profile,
		Vitals:     m.vitals,
		Meals:      m.meals,
		Activities: m.activities,
		Summaries:  m.summaries,
		Analysis:   m.analysis,
	}, Options{
		DB:      testhelpers.SetupTestDatabase(t),
		Session: SessionConfig{CookieName: testCookie},
		Log:     logger.NewNop(),
	})
	return router, m
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/meal", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
