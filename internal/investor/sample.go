package investor

import "github.com/shopspring/decimal"

// Sample returns the built-in demo investors. Every call builds new records.
func Sample() []*Investor {
	return []*Investor{
		{
			ID:              "1",
			Name:            "Sophie Martin",
			Expertise:       CategoryTechAI,
			Investments:     12,
			Portfolio:       decimal.NewFromFloat(2.5).Mul(million),
			Rating:          4.8,
			SuccessfulExits: 5,
			TicketSize:      "100K€ - 500K€",
			Sectors:         []string{"IA", "SaaS", "Mobile"},
			Location:        "Paris",
			Verified:        true,
			Avatar:          "https://placeholder.com/150",
		},
		{
			ID:              "2",
			Name:            "Thomas Dubois",
			Expertise:       CategoryFintech,
			Investments:     8,
			Portfolio:       decimal.NewFromFloat(1.8).Mul(million),
			Rating:          4.5,
			SuccessfulExits: 3,
			TicketSize:      "50K€ - 200K€",
			Sectors:         []string{"Fintech", "Blockchain", "InsurTech"},
			Location:        "Lyon",
			Verified:        true,
			Avatar:          "https://placeholder.com/150",
		},
		{
			ID:              "3",
			Name:            "Marie Bernard",
			Expertise:       CategoryEcommerce,
			Investments:     15,
			Portfolio:       decimal.NewFromFloat(3.2).Mul(million),
			Rating:          4.9,
			SuccessfulExits: 7,
			TicketSize:      "200K€ - 1M€",
			Sectors:         []string{"E-commerce", "D2C", "Retail"},
			Location:        "Bordeaux",
			Verified:        true,
			Avatar:          "https://placeholder.com/150",
		},
	}
}
