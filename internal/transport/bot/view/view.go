package view

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"buyback/internal/domain/entity"
)

const (
	StartMessage = "👋 <b>Панель выкупа</b>\n\n" +
		"/pending: заявки на рассмотрении\n" +
		"/show <code>ID</code>: карточка заявки\n" +
		"/approve <code>ID</code>: одобрить\n" +
		"/reject <code>ID</code>: отклонить\n" +
		"/paid <code>ID</code>: отметить оплату"

	MissingIDTemplate = "❌ Использование: /%s <code>ID</code>"
	PendingEmpty      = "📭 Новых заявок нет"
	NotFound          = "⚠️ Заявка не найдена"
	InternalError     = "🔥 Внутренняя ошибка, подробности в логах"

	timeLayout = "2006-01-02 15:04"
)

var statusTitles = map[entity.BuyRequestStatus]string{ //nolint:gochecknoglobals // skip
	entity.StatusPending:   "⏳ на рассмотрении",
	entity.StatusApproved:  "✅ одобрена",
	entity.StatusRejected:  "🚫 отклонена",
	entity.StatusPaid:      "💸 оплачена",
	entity.StatusCancelled: "❌ отменена",
}

func StatusTitle(s entity.BuyRequestStatus) string {
	if title, ok := statusTitles[s.Normalized()]; ok {
		return title
	}

	return html.EscapeString(s.String())
}

// Price печатает сумму с разделителями разрядов: 1,250,000 KRW.
func Price(amount int64, currency string) string {
	digits := strconv.FormatInt(amount, 10)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var sb strings.Builder

	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	return sign + sb.String() + " " + html.EscapeString(currency)
}

func Event(e entity.LifecycleEvent) string {
	var title string

	switch e.Type {
	case entity.EventCreated:
		title = "🆕 <b>Новая заявка</b>"
	case entity.EventCancelledByUser:
		title = "❌ <b>Клиент отменил заявку</b>"
	default:
		title = fmt.Sprintf("🔄 <b>Статус изменён:</b> %s", StatusTitle(e.Status))
	}

	return fmt.Sprintf(
		"%s\n\n"+
			"📱 <b>Модель:</b> %s\n"+
			"💰 <b>Цена выкупа:</b> %s\n"+
			"👤 <b>Клиент:</b> %s\n"+
			"🕒 %s\n"+
			"🆔 <code>%s</code>",
		title,
		html.EscapeString(e.ModelName),
		Price(e.BuyPrice, e.Currency),
		html.EscapeString(e.CustomerName),
		e.OccurredAt.UTC().Format(timeLayout),
		html.EscapeString(e.BuyRequestID),
	)
}

func RequestCard(r entity.BuyRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📄 <b>Заявка</b> <code>%s</code>\n\n", html.EscapeString(r.ID))
	fmt.Fprintf(&sb, "📌 <b>Статус:</b> %s\n", StatusTitle(r.Status))
	fmt.Fprintf(&sb, "📱 <b>Модель:</b> %s\n", html.EscapeString(r.ModelName))
	fmt.Fprintf(&sb, "💰 <b>Цена выкупа:</b> %s\n", Price(r.BuyPrice, r.Currency))

	if r.FinalPrice != nil {
		fmt.Fprintf(&sb, "🏷 <b>Итоговая цена:</b> %s\n", Price(*r.FinalPrice, r.Currency))
	}

	fmt.Fprintf(&sb, "👤 <b>Клиент:</b> %s, %s\n",
		html.EscapeString(r.CustomerName), html.EscapeString(r.CustomerPhone))

	if r.ImeiSerial != nil {
		fmt.Fprintf(&sb, "🔢 <b>IMEI/серийный:</b> <code>%s</code>\n", html.EscapeString(*r.ImeiSerial))
	}

	fmt.Fprintf(&sb, "🏦 <b>Реквизиты:</b> %s\n", yesNo(r.HasBankInfo()))
	fmt.Fprintf(&sb, "📦 <b>Доставка:</b> %s\n", yesNo(r.HasCompleteShipping()))

	if r.AdminNotes != nil {
		fmt.Fprintf(&sb, "📝 %s\n", html.EscapeString(*r.AdminNotes))
	}

	fmt.Fprintf(&sb, "🕒 %s", r.CreatedAt.UTC().Format(timeLayout))

	return sb.String()
}

func PendingList(items []entity.BuyRequest, total int) string {
	if len(items) == 0 {
		return PendingEmpty
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "⏳ <b>На рассмотрении:</b> %d\n\n", total)

	for i, r := range items {
		fmt.Fprintf(&sb, "%d. %s, %s\n   <code>%s</code>\n",
			i+1,
			html.EscapeString(r.ModelName),
			Price(r.BuyPrice, r.Currency),
			html.EscapeString(r.ID),
		)
	}

	if total > len(items) {
		fmt.Fprintf(&sb, "\n<i>Показаны первые %d</i>", len(items))
	}

	return sb.String()
}

func Transitioned(r entity.BuyRequest) string {
	return fmt.Sprintf("Заявка <code>%s</code>: %s", html.EscapeString(r.ID), StatusTitle(r.Status))
}

func Rejected(reason string) string {
	return "⛔ " + html.EscapeString(reason)
}

func yesNo(b bool) string {
	if b {
		return "✅"
	}

	return "❌"
}
