//go:build !integration

package rest

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"myStorefront/business/recommendation"
	"myStorefront/domain"
	"myStorefront/internal/repository/memory"
)

type catalog []domain.Product

func (c catalog) FindAll(ctx context.Context) ([]domain.Product, error) {
	return c, nil
}

func shoeCatalog() catalog {
	return catalog{
		{ID: 1, ProductName: "Leather boot", ProductCategory: "shoes", NormalPrice: 100, Rating: 4.5, Features: []string{"leather"}, Quantity: 2},
		{ID: 2, ProductName: "Leather loafer", ProductCategory: "shoes", NormalPrice: 110, Rating: 4.6, Features: []string{"leather"}, Quantity: 2},
		{ID: 3, ProductName: "Tote", ProductCategory: "bags", NormalPrice: 900, Rating: 1.0},
	}
}

func TestRecommendationHandler_Recommend(t *testing.T) {
	compareRepo := memory.NewCompareRepository()
	svc := recommendation.NewService(shoeCatalog(), compareRepo, nil, 0)
	h := NewRecommendationHandler(svc)

	c, rec := newRequest(http.MethodGet, "/api/v1/recommendations", "")
	if err := h.Recommend(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"empty":true`) {
		t.Fatalf("no reference: %d %s", rec.Code, rec.Body.String())
	}

	_ = compareRepo.Add(context.Background(), 7, 1)

	c, rec = newRequest(http.MethodGet, "/api/v1/recommendations?n=3", "")
	if err := h.Recommend(c); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, body)
	}
	if !strings.Contains(body, `"confidence":95`) || strings.Contains(body, "Tote") {
		t.Fatalf("unexpected ranking: %s", body)
	}
}

func TestRecommendationHandler_RecommendRejectsLargeN(t *testing.T) {
	h := NewRecommendationHandler(recommendation.NewService(shoeCatalog(), memory.NewCompareRepository(), nil, 0))

	c, rec := newRequest(http.MethodGet, "/api/v1/recommendations?n=500", "")
	_ = h.Recommend(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendationHandler_Score(t *testing.T) {
	h := NewRecommendationHandler(recommendation.NewService(shoeCatalog(), memory.NewCompareRepository(), nil, 0))

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{
			name: "raw score reaches 100",
			body: `{"reference":[{"id":"a","price":100,"category":"shoes","rating":4.5,"features":["leather"],"in_stock":true}],
			        "candidate":{"id":"b","price":110,"category":"shoes","rating":4.6,"features":["leather"],"in_stock":true}}`,
			status: http.StatusOK,
			want:   `"confidence":100`,
		},
		{
			name:   "empty reference",
			body:   `{"reference":[],"candidate":{"id":"b","price":1}}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "candidate in reference",
			body:   `{"reference":[{"id":"a","price":1}],"candidate":{"id":"a","price":1}}`,
			status: http.StatusBadRequest,
			want:   "already in the reference set",
		},
		{
			name:   "rating out of range",
			body:   `{"reference":[{"id":"a","price":1}],"candidate":{"id":"b","price":1,"rating":7}}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRequest(http.MethodPost, "/api/v1/recommendations/score", tt.body)
			if err := h.Score(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
				t.Fatalf("body %s missing %s", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRecommendationHandler_RankSkipsInvalidCandidates(t *testing.T) {
	h := NewRecommendationHandler(recommendation.NewService(shoeCatalog(), memory.NewCompareRepository(), nil, 0))

	body := `{"reference":[{"id":"a","price":100,"category":"shoes","rating":4.5}],
	          "candidates":[{"id":"bad","price":-5,"category":"shoes"},{"id":"good","price":100,"category":"shoes","rating":4.5}]}`
	c, rec := newRequest(http.MethodPost, "/api/v1/recommendations/rank", body)
	if err := h.Rank(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"bad"`) || !strings.Contains(rec.Body.String(), `"good"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
