package mailer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shariarfaisal/snapshop-backend/internal/model"
)

// OrderConfirmationBody renders the order-confirmation email sent to the
// purchaser right after a successful commit.
func OrderConfirmationBody(customerName string, order *model.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		name := item.ProductID.String()
		var details model.ItemDetails
		if len(item.Details) > 0 && json.Unmarshal(item.Details, &details) == nil && details.Name != "" {
			name = details.Name
		}
		items.WriteString(fmt.Sprintf("<li>%d x %s - $%s</li>", item.Quantity, name, item.Price.StringFixed(2)))
	}

	return fmt.Sprintf(`
		<h2>Order Confirmation</h2>
		<p>Thank you, %s, for your order!</p>
		<p>Order Total: $%s</p>
		<p>Order Items:</p>
		<ul>%s</ul>
		<p>We will notify you when your order status updates.</p>
	`, customerName, order.TotalPrice.StringFixed(2), items.String())
}

// StatusUpdateBody renders the status-change notification
func StatusUpdateBody(order *model.Order, status model.OrderStatus) string {
	return fmt.Sprintf(`
		<h2>Order Status Update</h2>
		<p>Your order #%s is now <strong>%s</strong>.</p>
		<p>Thank you for shopping with us!</p>
	`, order.ID, status)
}
