package api

import (
	"connectingbr/internal/domain"
	"connectingbr/internal/testutil"
	"connectingbr/internal/utils"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRoutes_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	client := testutil.CreateUser(t, s.db, domain.RoleClient)
	professional := testutil.CreateUser(t, s.db, domain.RoleProfessional)
	listPath := fmt.Sprintf("/review/professional/%d", professional.ID)

	w := s.do(http.MethodPost, "/review", s.token(client), map[string]any{
		"professionalId": professional.ID,
		"rating":         4,
		"comment":        "Very punctual",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.Review](t, w)
	assert.Equal(t, 4, created.Rating)
	assert.Equal(t, client.ID, created.ReviewerID)

	w = s.do(http.MethodGet, listPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Review](t, w), 1)
	assert.True(t, s.cache.has(utils.ProfessionalReviewsKey(professional.ID)))

	w = s.do(http.MethodGet, listPath+"/average", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"average":4,"count":1}`, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/review/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/review", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Review](t, w), 1)

	w = s.do(http.MethodPatch, fmt.Sprintf("/review/%d", created.ID), s.token(client), map[string]any{"rating": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decode[domain.Review](t, w).Rating)
	assert.False(t, s.cache.has(utils.ProfessionalReviewsKey(professional.ID)), "writes invalidate the list cache")
	assert.Equal(t, 2.0, testutil.ReloadUser(t, s.db, professional.ID).AverageRating)

	stranger := testutil.CreateUser(t, s.db, domain.RoleClient)
	w = s.do(http.MethodDelete, fmt.Sprintf("/review/%d", created.ID), s.token(stranger), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/review/%d", created.ID), s.token(client), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Review deleted successfully"}`, w.Body.String())

	w = s.do(http.MethodGet, listPath+"/average", "", nil)
	assert.JSONEq(t, `{"average":0,"count":0}`, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/review/%d", created.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewRoutes_ErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	client := testutil.CreateUser(t, s.db, domain.RoleClient)
	otherClient := testutil.CreateUser(t, s.db, domain.RoleClient)
	professional := testutil.CreateUser(t, s.db, domain.RoleProfessional)

	w := s.do(http.MethodPost, "/review", s.token(client), map[string]any{"professionalId": professional.ID, "rating": 5})
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name  string
		token string
		body  any
		want  int
	}{
		{"no token", "", map[string]any{"professionalId": professional.ID, "rating": 5}, http.StatusUnauthorized},
		{"rating too high", s.token(otherClient), map[string]any{"professionalId": professional.ID, "rating": 6}, http.StatusBadRequest},
		{"rating zero", s.token(otherClient), map[string]any{"professionalId": professional.ID, "rating": 0}, http.StatusBadRequest},
		{"fractional rating", s.token(otherClient), `{"professionalId":` + fmt.Sprint(professional.ID) + `,"rating":4.5}`, http.StatusBadRequest},
		{"string rating", s.token(otherClient), `{"professionalId":` + fmt.Sprint(professional.ID) + `,"rating":"5"}`, http.StatusBadRequest},
		{"malformed body", s.token(otherClient), `{"professionalId":`, http.StatusBadRequest},
		{"duplicate", s.token(client), map[string]any{"professionalId": professional.ID, "rating": 3}, http.StatusConflict},
		{"self review", s.token(professional), map[string]any{"professionalId": professional.ID, "rating": 3}, http.StatusConflict},
		{"not a professional", s.token(otherClient), map[string]any{"professionalId": client.ID, "rating": 3}, http.StatusUnprocessableEntity},
		{"missing professional", s.token(otherClient), map[string]any{"professionalId": 9999, "rating": 3}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/review", tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}

	w = s.do(http.MethodGet, "/review/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPatch, "/review/9999", s.token(client), map[string]any{"rating": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewRoutes_ListServedFromCache(t *testing.T) {
	s := newTestServer(t)
	professional := testutil.CreateUser(t, s.db, domain.RoleProfessional)
	key := utils.ProfessionalReviewsKey(professional.ID)

	cached := []domain.Review{{ID: 77, Rating: 5, ProfessionalID: professional.ID}}
	require.NoError(t, s.cache.Set(context.Background(), key, cached))

	w := s.do(http.MethodGet, fmt.Sprintf("/review/professional/%d", professional.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Review](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, uint(77), list[0].ID)
}
