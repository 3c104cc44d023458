package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/healthtracker/backend/internal/models"
)

const DefaultFatSecretURL = "https://platform.fatsecret.com/rest/server.api"

// FatSecretClient searches the FatSecret food database. Descriptions are
// read as per-100g figures.
type FatSecretClient struct {
	accessToken string
	baseURL     string
	client      *http.Client
}

var _ NutritionSource = (*FatSecretClient)(nil)

func NewFatSecretClient(accessToken, baseURL string) *FatSecretClient {
	if baseURL == "" {
		baseURL = DefaultFatSecretURL
	}
	return &FatSecretClient{
		accessToken: accessToken,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type fatSecretFood struct {
	FoodName        string `json:"food_name"`
	FoodDescription string `json:"food_description"`
}

type fatSecretResponse struct {
	Foods *struct {
		// A single match is an object, several are an array.
		Food json.RawMessage `json:"food"`
	} `json:"foods"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *FatSecretClient) Lookup(ctx context.Context, food string) (models.Nutrition, bool, error) {
	params := url.Values{}
	params.Set("method", "foods.search")
	params.Set("search_expression", food)
	params.Set("format", "json")
	params.Set("max_results", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.Nutrition{}, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Nutrition{}, false, fmt.Errorf("fatsecret request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Nutrition{}, false, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.Nutrition{}, false, fmt.Errorf("fatsecret returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result fatSecretResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return models.Nutrition{}, false, fmt.Errorf("decode response: %w", err)
	}
	if result.Error != nil {
		return models.Nutrition{}, false, fmt.Errorf("fatsecret error %d: %s", result.Error.Code, result.Error.Message)
	}
	if result.Foods == nil {
		return models.Nutrition{}, false, nil
	}

	foods, err := decodeFatSecretFoods(result.Foods.Food)
	if err != nil {
		return models.Nutrition{}, false, err
	}

	// Prefer a per-100g description, otherwise take the first parseable one.
	var fallback *models.Nutrition
	for _, f := range foods {
		n, ok := ParseFoodDescription(f.FoodDescription)
		if !ok {
			continue
		}
		if strings.HasPrefix(strings.ToLower(f.FoodDescription), "per 100g") {
			return n, true, nil
		}
		if fallback == nil {
			fallback = &n
		}
	}
	if fallback != nil {
		return *fallback, true, nil
	}
	return models.Nutrition{}, false, nil
}

func decodeFatSecretFoods(raw json.RawMessage) ([]fatSecretFood, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var foods []fatSecretFood
		if err := json.Unmarshal(raw, &foods); err != nil {
			return nil, fmt.Errorf("decode foods: %w", err)
		}
		return foods, nil
	}
	var food fatSecretFood
	if err := json.Unmarshal(raw, &food); err != nil {
		return nil, fmt.Errorf("decode food: %w", err)
	}
	return []fatSecretFood{food}, nil
}

// ParseFoodDescription reads a FatSecret summary such as
// "Per 100g - Calories: 165kcal | Fat: 3.57g | Carbs: 0.00g | Protein: 31.02g".
func ParseFoodDescription(desc string) (models.Nutrition, bool) {
	var n models.Nutrition
	found := false
	for _, part := range strings.Split(desc, "|") {
		label, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		// The first part reads "Per 100g - Calories".
		if i := strings.LastIndex(label, "-"); i >= 0 {
			label = label[i+1:]
		}
		value = strings.TrimSpace(value)
		value = strings.TrimSuffix(strings.TrimSuffix(value, "kcal"), "g")
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(label)) {
		case "calories":
			n.Calories = v
		case "fat":
			n.Fat = v
		case "carbs":
			n.Carbohydrates = v
		case "protein":
			n.Protein = v
		default:
			continue
		}
		found = true
	}
	// All zeros carries no information, so the default applies instead.
	return n, found && !n.IsZero()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
