package models

// Nutrition is a set of macro figures. Stored values are per portion unless
// a field says otherwise.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// Scale multiplies every figure by factor.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Calories:      n.Calories * factor,
		Protein:       n.Protein * factor,
		Fat:           n.Fat * factor,
		Carbohydrates: n.Carbohydrates * factor,
	}
}

// Add returns the field-wise sum of n and o.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories:      n.Calories + o.Calories,
		Protein:       n.Protein + o.Protein,
		Fat:           n.Fat + o.Fat,
		Carbohydrates: n.Carbohydrates + o.Carbohydrates,
	}
}

// NonNegative clamps every figure at zero.
func (n Nutrition) NonNegative() Nutrition {
	return Nutrition{
		Calories:      max(0, n.Calories),
		Protein:       max(0, n.Protein),
		Fat:           max(0, n.Fat),
		Carbohydrates: max(0, n.Carbohydrates),
	}
}

// IsZero reports whether every figure is zero.
func (n Nutrition) IsZero() bool {
	return n == Nutrition{}
}
