package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		returnErrorJsonCode(fmt.Errorf("symbol is required"), c, 400)
		return
	}

	quote, err := m.MarketDataRepository.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"symbol":        quote.Symbol,
		"name":          quote.Name,
		"price":         quote.Price,
		"changePercent": quote.ChangePercent,
		"peRatio":       quote.PERatio,
		"dividendYield": quote.DividendYield,
		"sector":        quote.Sector,
	})
}
