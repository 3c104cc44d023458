package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFoodDescription(t *testing.T) {
	n, ok := service.ParseFoodDescription("Per 100g - Calories: 165kcal | Fat: 3.57g | Carbs: 0.00g | Protein: 31.02g")
	require.True(t, ok)
	assert.Equal(t, models.Nutrition{Calories: 165, Fat: 3.57, Carbohydrates: 0, Protein: 31.02}, n)

	_, ok = service.ParseFoodDescription("no numbers here")
	assert.False(t, ok)

	_, ok = service.ParseFoodDescription("Per 100g - Calories: 0kcal | Fat: 0.00g | Carbs: 0.00g | Protein: 0.00g")
	assert.False(t, ok, "all zeros is treated as no data")

	n, ok = service.ParseFoodDescription("Per 100g - Calories: NaNkcal | Fat: Infg | Carbs: 2.00g | Protein: 1.00g")
	require.True(t, ok)
	assert.Equal(t, models.Nutrition{Carbohydrates: 2, Protein: 1}, n, "non-finite figures are skipped")
}

func TestNutritionLookupOrder(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewNutritionService(db, nil, logger.NewNop())
	ctx := context.Background()

	t.Run("builtin substring match is cached", func(t *testing.T) {
		got := svc.PerHundredGrams(ctx, "Grilled Chicken")
		assert.Equal(t, service.SourceBuiltin, got.Source)
		assert.Equal(t, 165.0, got.Nutrition.Calories)

		var entry models.FoodCacheEntry
		require.NoError(t, db.Where("food_name = ?", "grilled chicken").First(&entry).Error)
		assert.Equal(t, service.SourceBuiltin, entry.Source)
		assert.Equal(t, "100g", entry.ServingSize)

		again := svc.PerHundredGrams(ctx, "grilled chicken.")
		assert.Equal(t, service.SourceCache, again.Source)
		assert.Equal(t, got.Nutrition, again.Nutrition)
	})

	t.Run("table order wins", func(t *testing.T) {
		// "chicken rice" contains both; chicken is listed first.
		got := svc.PerHundredGrams(ctx, "chicken rice")
		assert.Equal(t, 165.0, got.Nutrition.Calories)
	})

	t.Run("reverse substring", func(t *testing.T) {
		got := svc.PerHundredGrams(ctx, "beans")
		assert.Equal(t, 31.0, got.Nutrition.Calories, "beans is contained in green beans")
	})

	t.Run("default is not cached", func(t *testing.T) {
		got := svc.PerHundredGrams(ctx, "dragonfruit")
		assert.Equal(t, service.SourceDefault, got.Source)
		assert.Equal(t, service.DefaultNutrition, got.Nutrition)

		var count int64
		require.NoError(t, db.Model(&models.FoodCacheEntry{}).Where("food_name = ?", "dragonfruit").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestFatSecretLookup(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("search_expression")
		w.Header().Set("Content-Type", "application/json")
		switch gotQuery {
		case "quinoa":
			_, _ = w.Write([]byte(`{"foods":{"food":[
				{"food_name":"Quinoa","food_description":"Per 1 cup - Calories: 222kcal | Fat: 3.55g | Carbs: 39.41g | Protein: 8.14g"},
				{"food_name":"Quinoa (Cooked)","food_description":"Per 100g - Calories: 120kcal | Fat: 1.92g | Carbs: 21.30g | Protein: 4.40g"}
			]}}`))
		case "tofu":
			_, _ = w.Write([]byte(`{"foods":{"food":{"food_name":"Tofu","food_description":"Per 100g - Calories: 76kcal | Fat: 4.78g | Carbs: 1.88g | Protein: 8.08g"}}}`))
		case "seltzer":
			_, _ = w.Write([]byte(`{"foods":{"food":{"food_name":"Seltzer","food_description":"Per 100g - Calories: 0kcal | Fat: 0.00g | Carbs: 0.00g | Protein: 0.00g"}}}`))
		case "unknownium":
			_, _ = w.Write([]byte(`{"foods":{"max_results":"5","total_results":"0"}}`))
		default:
			_, _ = w.Write([]byte(`{"error":{"code":9,"message":"Invalid access token"}}`))
		}
	}))
	defer server.Close()

	client := service.NewFatSecretClient("fs-token", server.URL)
	ctx := context.Background()

	n, ok, err := client.Lookup(ctx, "quinoa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 120.0, n.Calories, "per-100g description preferred")
	assert.Equal(t, "Bearer fs-token", gotAuth)

	n, ok, err = client.Lookup(ctx, "tofu")
	require.NoError(t, err)
	require.True(t, ok, "a single object is accepted")
	assert.Equal(t, 8.08, n.Protein)

	_, ok, err = client.Lookup(ctx, "seltzer")
	require.NoError(t, err)
	assert.False(t, ok, "all-zero descriptions are not a match")

	_, ok, err = client.Lookup(ctx, "unknownium")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = client.Lookup(ctx, "broken")
	assert.Error(t, err)

	t.Run("wired into nutrition service and cached", func(t *testing.T) {
		db := testhelpers.SetupTestDatabase(t)
		svc := service.NewNutritionService(db, client, logger.NewNop())

		got := svc.PerHundredGrams(ctx, "Tofu")
		assert.Equal(t, service.SourceFatSecret, got.Source)
		assert.Equal(t, 76.0, got.Nutrition.Calories)
		assert.Equal(t, service.SourceCache, svc.PerHundredGrams(ctx, "tofu").Source)

		zero := svc.PerHundredGrams(ctx, "seltzer")
		assert.Equal(t, service.SourceDefault, zero.Source, "an all-zero match falls back to the default")
		var count int64
		require.NoError(t, db.Model(&models.FoodCacheEntry{}).Where("food_name = ?", "seltzer").Count(&count).Error)
		assert.Zero(t, count)

		failed := svc.PerHundredGrams(ctx, "broken")
		assert.Equal(t, service.SourceDefault, failed.Source, "remote errors fall through to the default")
	})
}
