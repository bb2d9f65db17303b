package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ancarat/orderdesk/internal/domain/entity"
	"github.com/ancarat/orderdesk/internal/domain/ledger"
)

const maxTableRows = 10

// DiscordNotifier pushes a submitted order summary to a Discord webhook.
// Notification is best effort: every failure is logged and swallowed so the
// ledger append can never be undone by a chat outage.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a notifier. An empty webhook URL disables it.
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	if webhookURL == "" {
		log.Println("Warning: DISCORD_WEBHOOK_URL is not configured, order notifications disabled")
	}
	return &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
	Timestamp string `json:"timestamp"`
}

type webhookPayload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds"`
}

// OrderPlaced sends the order summary. It never returns an error.
func (n *DiscordNotifier) OrderPlaced(ctx context.Context, summary *entity.OrderSummary) {
	if n.webhookURL == "" {
		return
	}

	subtotal, discount, final := ledger.Totals(summary.Lines)

	e := embed{
		Title:       "🛒 Đơn hàng mới",
		Description: fmt.Sprintf("**%s** vừa đặt đơn hàng", safeText(summary.Counterparty)),
		Color:       0x00ff99,
		Fields: []embedField{
			{Name: "🆔 Mã đơn hàng", Value: summary.OrderCode, Inline: true},
			{Name: "⏰ Thời gian", Value: summary.CreatedAt, Inline: true},
			{Name: "👤 Nhân viên nhập", Value: safeText(summary.Operator), Inline: true},
			{Name: "🏪 Đại lý/Khách", Value: safeText(summary.Counterparty), Inline: true},
			{Name: "💸 Chiết khấu", Value: fmt.Sprintf("%g%%", summary.DiscountPercent), Inline: true},
			{Name: "📦 Chi tiết sản phẩm", Value: buildItemsTable(summary.Lines)},
			{Name: "📊 Tổng hợp thanh toán", Value: fmt.Sprintf(
				"**Tạm tính:** %s\n**Chiết khấu:** %s\n**Thành tiền:** **%s**",
				formatVND(subtotal), formatVND(discount), formatVND(final))},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	e.Footer.Text = "Hệ thống nhập đơn • Ancarat"

	payload := webhookPayload{Username: "Order Bot", Embeds: []embed{e}}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Discord notify: marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("Discord notify: request build failed: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("Discord notify: send failed for order %s: %v", summary.OrderCode, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Discord notify: webhook returned HTTP %d for order %s", resp.StatusCode, summary.OrderCode)
		return
	}

	log.Printf("Sent order notification to Discord: %s", summary.OrderCode)
}

func buildItemsTable(lines []entity.PricedLine) string {
	if len(lines) == 0 {
		return "Không có sản phẩm"
	}

	rows := make([]string, 0, len(lines)+2)
	rows = append(rows,
		"Sản phẩm                          | Giá chốt     | SL   | Thành tiền",
		strings.Repeat("─", 60),
	)

	for i, l := range lines {
		if i == maxTableRows {
			rows = append(rows, fmt.Sprintf("... và %d sản phẩm khác", len(lines)-maxTableRows))
			break
		}
		name := pad(l.Product, 32)
		rows = append(rows, fmt.Sprintf("%s | %12s | %4d | %14s",
			name, formatVND(l.LockedPrice), l.Quantity, formatVND(l.LockedFinal)))
	}

	return "```\n" + strings.Join(rows, "\n") + "\n```"
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func safeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Không có"
	}
	return s
}

// formatVND renders an amount with Vietnamese thousand grouping.
func formatVND(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + " ₫"
}
