package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plinkoplay/backend/internal/game"
)

// Tables returns every multiplier table, keyed by difficulty then risk.
func Tables() gin.HandlerFunc {
	difficulties := []game.Difficulty{game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard}
	risks := []game.Risk{game.RiskLow, game.RiskMedium, game.RiskHigh}

	return func(c *gin.Context) {
		out := gin.H{}
		for _, d := range difficulties {
			byRisk := gin.H{}
			for _, r := range risks {
				table, err := game.MultiplierTable(d, r)
				if err != nil {
					continue
				}
				byRisk[string(r)] = table
			}
			out[string(d)] = gin.H{
				"rows":        d.Rows(),
				"multipliers": byRisk,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
