package models

// SubscriptionPlan describes a paid tier shown on the pricing page. Checkout
// is mocked; plans exist so the UI has something to render.
type SubscriptionPlan struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int      `json:"price"`
	Currency  string   `json:"currency"`
	Duration  string   `json:"duration"` // "monthly" or "yearly"
	Features  []string `json:"features"`
	IsPopular bool     `json:"isPopular,omitempty"`
}

// Plans is the static plan catalog.
var Plans = []SubscriptionPlan{
	{
		ID:       TierBasic,
		Name:     "Basic",
		Price:    999,
		Currency: "NPR",
		Duration: "monthly",
		Features: []string{
			"Unlimited quiz attempts",
			"Detailed explanations",
			"Progress tracking",
			"Subject-wise analysis",
		},
	},
	{
		ID:       TierPremium,
		Name:     "Premium",
		Price:    1999,
		Currency: "NPR",
		Duration: "monthly",
		Features: []string{
			"All Basic features",
			"Mock exam simulator",
			"Performance analytics",
			"Study planner",
			"Offline access",
			"Priority support",
		},
		IsPopular: true,
	},
}
