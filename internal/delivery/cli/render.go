package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"petclinic-client/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable writes rows under headers with a rounded border.
func renderTable(out io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, t.Render())
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func clock(t time.Time) string {
	return t.Local().Format("Mon 02 Jan 15:04")
}

func renderCart(out io.Writer, st domain.CartState) {
	if len(st.Items) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	rows := make([][]string, 0, len(st.Items))
	for i, it := range st.Items {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", i+1),
			it.Product.Name,
			variant(it.Product),
			fmt.Sprint(it.Quantity),
			money(it.Product.Price),
			money(it.LineTotal()),
		})
	}
	renderTable(out, []string{"", "Product", "Variant", "Qty", "Price", "Total"}, rows)
	fmt.Fprintf(out, "%d item(s), total %s\n", st.TotalItems, money(st.TotalPrice))
}

func variant(p domain.Product) string {
	switch {
	case p.Color != "" && p.Size != "":
		return p.Color + " / " + p.Size
	case p.Color != "":
		return p.Color
	case p.Size != "":
		return p.Size
	}
	return "-"
}

func pageFooter(out io.Writer, meta domain.Pagination) {
	if meta.TotalPages > 1 {
		fmt.Fprintf(out, "page %d of %d (%d total)\n", meta.Page, meta.TotalPages, meta.TotalItems)
	}
}
