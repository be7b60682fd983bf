// Package reply renders the Portuguese chat answers sent back to the user.
package reply

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NgigiN/carteira/internal/expense"
	"github.com/NgigiN/carteira/internal/money"
	"github.com/NgigiN/carteira/internal/summary"
)

var methodIcons = map[expense.PaymentMethod]string{
	expense.MethodPix:            "💚",
	expense.MethodPixInstallment: "💚",
	expense.MethodCredit:         "💳",
	expense.MethodDebit:          "💳",
	expense.MethodCash:           "💵",
	expense.MethodBill:           "📄",
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Confirmation acknowledges a recorded expense.
func Confirmation(p expense.ParsedExpense) string {
	var b strings.Builder
	b.WriteString("✅ **Gasto registrado com sucesso!**\n\n")
	fmt.Fprintf(&b, "📝 **%s**\n", p.Description)
	fmt.Fprintf(&b, "💰 Valor total: **%s**\n", money.Format(p.TotalAmount))
	fmt.Fprintf(&b, "🏷️ Categoria: **%s**\n", p.Category.Label())
	fmt.Fprintf(&b, "💳 Pagamento: **%s %s**\n", methodIcons[p.Method], p.Method.Label())

	if p.HasInstallments() {
		each := money.Format(p.Installments.Amount)
		b.WriteString("\n📊 **Parcelamento:**\n")
		fmt.Fprintf(&b, "   %dx de %s\n", p.Installments.Count, each)
		switch p.Method {
		case expense.MethodCredit:
			b.WriteString("\n📅 As parcelas serão adicionadas nas próximas faturas do cartão.\n")
			fmt.Fprintf(&b, "⚠️ Cada parcela de %s aparecerá no extrato mensal.", each)
		case expense.MethodPixInstallment:
			fmt.Fprintf(&b, "\n📅 Cada parcela de %s será um Pix mensal.\n", each)
			b.WriteString("⚠️ Lembre-se de realizar cada Pix na data correta!")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	switch p.Method {
	case expense.MethodPix:
		b.WriteString("\n✅ Valor debitado instantaneamente via Pix.")
	case expense.MethodCredit:
		b.WriteString("\n📅 Será cobrado na próxima fatura do cartão.")
	}
	return strings.TrimRight(b.String(), "\n")
}

func Help() string {
	return `🤖 **Olá! Eu sou a Carteira!**

Posso te ajudar a registrar seus gastos de forma rápida. Basta me dizer o que comprou, quanto pagou e como pagou.

**📌 Exemplos:**

💳 **Cartão parcelado:**
_"Comprei um celular de R$ 2000 no cartão de crédito em 10x"_

💚 **Pix parcelado:**
_"Paguei um sofá de R$ 3000 no pix parcelado em 6x"_

💚 **Pix:**
_"Paguei R$ 150 de pix no mercado"_

💵 **Dinheiro:**
_"Gastei 50 reais de dinheiro no almoço"_

💳 **Débito:**
_"Comprei gasolina R$ 200 no débito"_

**📊 Consultas:**
_"Quanto gastei esse mês?"_ ou ` + "`!resumo`" + `
_"Minhas parcelas"_ ou ` + "`!parcelas`" + `

**Dica:** quanto mais detalhes você me der, melhor eu registro! 😊`
}

// Confusion answers a message that could not be classified.
func Confusion() string {
	return `🤔 Hmm, não consegui entender completamente. Pode me dizer de outra forma?

**Tente algo como:**
• _"Comprei [produto] de R$ [valor] no [cartão/pix/dinheiro]"_
• _"Gastei [valor] reais no [produto] parcelado em [N]x"_
• _"Paguei [valor] via pix no [lugar]"_

Preciso pelo menos do **valor** para registrar! 💡`
}

// MonthSummary renders the month totals with per-category and
// per-method breakdowns.
func MonthSummary(m summary.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Resumo de %s:**\n\n", MonthName(m.Start))
	fmt.Fprintf(&b, "💰 Receitas: **%s**\n", money.Format(m.Income))
	fmt.Fprintf(&b, "💸 Despesas: **%s**\n", money.Format(m.Expenses))
	fmt.Fprintf(&b, "📱 Gastos via chat: **%s** (%d registros)\n", money.Format(m.ChatExpenses), m.ChatCount)

	if len(m.ByCategory) > 0 {
		b.WriteString("\n🏷️ **Por categoria:**\n")
		for _, a := range m.ByCategory {
			fmt.Fprintf(&b, "• %s: %s\n", expense.Category(a.Key).Label(), money.Format(a.Total))
		}
	}
	if len(m.ByMethod) > 0 {
		b.WriteString("\n💳 **Por forma de pagamento:**\n")
		for _, a := range m.ByMethod {
			fmt.Fprintf(&b, "• %s: %s\n", expense.PaymentMethod(a.Key).Label(), money.Format(a.Total))
		}
	}

	fmt.Fprintf(&b, "\n💵 Saldo: **%s**", money.Format(m.Balance()))
	return b.String()
}

func OpenInstallments(plans []summary.OpenPlan) string {
	if len(plans) == 0 {
		return "📊 Você não tem parcelas abertas no momento! 🎉"
	}
	var b strings.Builder
	b.WriteString("📊 **Suas parcelas:**\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "\n• **%s**\n", p.Description)
		fmt.Fprintf(&b, "  %dx de %s | %d restantes\n", p.Count, money.Format(p.InstallmentAmount), p.Remaining)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BatchLine is the outcome of one line of a multi-line message.
type BatchLine struct {
	Line int
	Text string
	Err  error
}

// Batch reports how many lines of a multi-line message were recorded.
func Batch(results []BatchLine) string {
	var ok, failed int
	var errs []string
	for _, r := range results {
		if r.Err != nil {
			failed++
			errs = append(errs, fmt.Sprintf("• Linha %d (%q): %s", r.Line, r.Text, batchReason(r.Err)))
			continue
		}
		ok++
	}

	var b strings.Builder
	b.WriteString("📊 **Lote processado**\n")
	fmt.Fprintf(&b, "✅ **Registrados:** %d\n", ok)
	if failed > 0 {
		fmt.Fprintf(&b, "❌ **Falharam:** %d\n", failed)
		b.WriteString(strings.Join(errs, "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func batchReason(err error) string {
	if errors.Is(err, expense.ErrAmountNotFound) {
		return "valor não encontrado"
	}
	return "não foi possível registrar"
}

// MonthName returns the capitalized pt-BR name and year of t's month,
// e.g. "Janeiro de 2024". Casers hold state, so one is built per call.
func MonthName(t time.Time) string {
	return fmt.Sprintf("%s de %d", cases.Title(language.BrazilianPortuguese).String(monthNames[t.Month()-1]), t.Year())
}
