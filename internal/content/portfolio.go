package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"go-content-cache/internal/models"
)

// Portfolio entries live in static local data, not the origin API.

//go:embed data/portfolio.json
var portfolioData []byte

var (
	portfolioOnce  sync.Once
	portfolioItems []models.PortfolioItem
	portfolioErr   error
)

func loadPortfolio() ([]models.PortfolioItem, error) {
	portfolioOnce.Do(func() {
		if err := json.Unmarshal(portfolioData, &portfolioItems); err != nil {
			portfolioErr = fmt.Errorf("failed to parse embedded portfolio data: %w", err)
		}
	})
	return portfolioItems, portfolioErr
}
