package mailing

import (
	"fmt"
	"strings"

	"brewstock/domain"
)

// LowStockAlertBody renders the HTML body of the low stock digest mail.
func LowStockAlertBody(items []domain.LowStockItem) string {
	var b strings.Builder
	b.WriteString("<h2>Low stock report</h2>")
	b.WriteString("<p>The following inventory items are at or below their reorder threshold:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Item</th><th>Stock</th><th>Threshold</th></tr>")
	for _, item := range items {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%.2f %s</td><td>%.2f %s</td></tr>",
			item.Name, item.Stock, item.Unit, item.Threshold, item.Unit,
		))
	}
	b.WriteString("</table>")
	return b.String()
}
