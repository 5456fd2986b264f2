// Package display renders dashboard data as terminal tables and messages.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/painelfin/painelgo/internal/models"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	// naStyle dims "n.a." cells so they never read as a real value.
	naStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))
)

// Title renders a section title.
func Title(text string) string {
	return titleStyle.Render(text)
}

// Error prints a styled error message.
func Error(err error) {
	fmt.Println(errorStyle.Render("✗ " + err.Error()))
}

// Info prints a styled info message.
func Info(message string) {
	fmt.Println(infoStyle.Render(message))
}

// Success prints a styled success message.
func Success(message string) {
	fmt.Println(successStyle.Render("✓ " + message))
}

// renderTable lays out rows in aligned columns inside a rounded border.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(padRow(headers, widths)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(padRow(row, widths))
	}
	return tableStyle.Render(b.String())
}

func padRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	return strings.Join(parts, "  ")
}

// metricCell renders a metric, dimming the "n.a." sentinel.
func metricCell(m models.Metric) string {
	if m.NA {
		return naStyle.Render(models.NotApplicable)
	}
	return m.Value.StringFixed(2)
}

// signedCell colors a variation green or red.
func signedCell(d decimal.Decimal, suffix string) string {
	text := d.StringFixed(2) + suffix
	if d.IsNegative() {
		return downStyle.Render(text)
	}
	if d.IsPositive() {
		return upStyle.Render("+" + text)
	}
	return text
}

// QuotesTable renders the realtime quote board in ticker order.
func QuotesTable(quotes map[string]models.Quote) string {
	tickers := make([]string, 0, len(quotes))
	for t := range quotes {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	rows := make([][]string, 0, len(tickers))
	for _, t := range tickers {
		q := quotes[t]
		rows = append(rows, []string{
			q.Ticker,
			q.Price.StringFixed(2),
			signedCell(q.ChangePercent, "%"),
			fmt.Sprintf("%d", q.Volume),
			q.Source,
		})
	}
	return renderTable([]string{"Ticker", "Preço", "Variação", "Volume", "Fonte"}, rows)
}

// NewsTable renders market news headlines.
func NewsTable(articles []models.MarketArticle) string {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		sentiment := ""
		if a.Analysis != nil {
			sentiment = a.Analysis.Sentiment
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.ID),
			truncate(a.Headline, 60),
			a.Source,
			a.Timestamp,
			sentiment,
		})
	}
	return renderTable([]string{"ID", "Manchete", "Portal", "Data", "Sentimento"}, rows)
}

// CompanyNewsTable renders tracked company news.
func CompanyNewsTable(items []models.CompanyNewsItem) string {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", n.ID),
			n.Ticker,
			truncate(n.Title, 55),
			n.PublishedDate,
		})
	}
	return renderTable([]string{"ID", "Ticker", "Manchete", "Publicada em"}, rows)
}

// DocumentsTable renders CVM filings.
func DocumentsTable(docs []models.CVMDocument) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.ID,
			truncate(d.Company, 30),
			d.Category,
			d.Date,
			d.Link,
		})
	}
	return renderTable([]string{"ID", "Empresa", "Categoria", "Data", "Link"}, rows)
}

// IndicatorsTable renders macro indicators; a missing value shows as a dash.
func IndicatorsTable(indicators map[string]models.MacroIndicator) string {
	keys := make([]string, 0, len(indicators))
	for k := range indicators {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		ind := indicators[k]
		value := naStyle.Render("-")
		if ind.Value != nil {
			value = fmt.Sprintf("%.2f%s", *ind.Value, ind.Unit)
		}
		name := ind.Description
		if name == "" {
			name = strings.ToUpper(k)
		}
		rows = append(rows, []string{name, value, ind.UpdatedAt})
	}
	return renderTable([]string{"Indicador", "Valor", "Atualizado em"}, rows)
}

// HoldingsTable renders the portfolio positions.
func HoldingsTable(holdings []models.Holding) string {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Symbol,
			h.Quantity.String(),
			h.AvgPrice.StringFixed(2),
			h.CurrentPrice.StringFixed(2),
			h.Value.StringFixed(2),
			signedCell(h.GainPercent, "%"),
		})
	}
	return renderTable(
		[]string{"Ticker", "Qtde", "Preço médio", "Preço atual", "Valor", "Resultado"},
		rows,
	)
}

// StockGuideTable renders the stock guide with its estimate columns. The
// "n.a." sentinel stays visible, dimmed, never rendered as zero.
func StockGuideTable(rowsIn []models.StockGuideRow) string {
	rows := make([][]string, 0, len(rowsIn))
	for _, r := range rowsIn {
		ticker := r.Ticker
		if r.IsMedian {
			ticker = headerRowStyle.Render(ticker)
		}
		rows = append(rows, []string{
			ticker,
			truncate(r.Sector, 20),
			metricCell(r.Price.Last),
			metricCell(r.Price.Target),
			metricCell(r.PL.E2025),
			metricCell(r.PL.E2026),
			metricCell(r.EVEbitda.E2025),
			metricCell(r.EVEbitda.E2026),
			metricCell(r.DividendYield.E2025),
			metricCell(r.Performance.Year),
		})
	}
	return renderTable(
		[]string{"Ticker", "Setor", "Último", "Alvo", "P/L 25E", "P/L 26E", "EV/EBITDA 25E", "EV/EBITDA 26E", "DY 25E", "Ano"},
		rows,
	)
}

// NotesTable renders local research notes.
func NotesTable(notes []models.ResearchNote) string {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			n.ID,
			truncate(n.Title, 40),
			n.LastUpdated,
		})
	}
	return renderTable([]string{"ID", "Título", "Atualizada em"}, rows)
}

// MarketStatusLine renders the session state with its color.
func MarketStatusLine(status models.MarketStatus) string {
	switch status.Status {
	case models.MarketOpen:
		return upStyle.Render("● " + status.Description)
	case models.MarketPreMarket:
		return infoStyle.Render("◐ " + status.Description)
	default:
		return naStyle.Render("○ " + status.Description)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
