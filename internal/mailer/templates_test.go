package mailer

import (
	"encoding/json"
	"testing"

	"github.com/shariarfaisal/snapshop-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderConfirmationBody(t *testing.T) {
	details, err := json.Marshal(model.ItemDetails{Name: "T-Shirt"})
	require.NoError(t, err)

	order := &model.Order{
		TotalPrice: decimal.RequireFromString("24.5"),
		Items: []model.OrderItem{{
			ProductID: uuid.New(),
			Quantity:  2,
			Price:     decimal.RequireFromString("12.25"),
			Details:   details,
		}},
	}

	body := OrderConfirmationBody("Jane", order)
	assert.Contains(t, body, "Thank you, Jane")
	assert.Contains(t, body, "Order Total: $24.50")
	assert.Contains(t, body, "<li>2 x T-Shirt - $12.25</li>")
}

func TestOrderConfirmationBody_FallsBackToProductID(t *testing.T) {
	productID := uuid.New()
	order := &model.Order{
		TotalPrice: decimal.RequireFromString("5"),
		Items: []model.OrderItem{{
			ProductID: productID,
			Quantity:  1,
			Price:     decimal.RequireFromString("5"),
		}},
	}

	body := OrderConfirmationBody("Jane", order)
	assert.Contains(t, body, productID.String())
}

func TestStatusUpdateBody(t *testing.T) {
	order := &model.Order{BaseModel: model.BaseModel{ID: uuid.New()}}

	body := StatusUpdateBody(order, model.OrderShipped)
	assert.Contains(t, body, order.ID.String())
	assert.Contains(t, body, "<strong>Shipped</strong>")
}
