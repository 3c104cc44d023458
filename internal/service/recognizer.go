package service

import (
	"context"
	"strings"
)

// FoodListPrompt asks a vision model for a bare comma-separated list.
const FoodListPrompt = "List only the food items in this image, separated by commas. Be concise. Example: eggs, toast, coffee"

// FoodRecognizer names the foods visible in an image.
type FoodRecognizer interface {
	RecognizeFoods(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// ParseFoodList splits a model reply on commas and newlines. Entries are
// trimmed, trailing periods removed and empty entries dropped.
func ParseFoodList(reply string) []string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	foods := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(f), "."))
		if f != "" {
			foods = append(foods, f)
		}
	}
	return foods
}
