package expense

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of ways an expense can be paid.
type PaymentMethod string

const (
	MethodPix            PaymentMethod = "pix"
	MethodPixInstallment PaymentMethod = "pix_parcelado"
	MethodCredit         PaymentMethod = "credito"
	MethodDebit          PaymentMethod = "debito"
	MethodCash           PaymentMethod = "dinheiro"
	MethodBill           PaymentMethod = "boleto"
)

// PaymentMethods lists every method in display order.
var PaymentMethods = []PaymentMethod{
	MethodPix, MethodPixInstallment, MethodCredit, MethodDebit, MethodCash, MethodBill,
}

func (m PaymentMethod) String() string { return string(m) }

// Label is the user facing name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodPix:
		return "Pix"
	case MethodPixInstallment:
		return "Pix Parcelado"
	case MethodCredit:
		return "Cartão de Crédito"
	case MethodDebit:
		return "Cartão de Débito"
	case MethodCash:
		return "Dinheiro"
	case MethodBill:
		return "Boleto"
	default:
		return string(m)
	}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPix, MethodPixInstallment, MethodCredit, MethodDebit, MethodCash, MethodBill:
		return true
	}
	return false
}

// Category is the closed set of spending categories.
type Category string

const (
	CategoryFood      Category = "alimentacao"
	CategoryTransport Category = "transporte"
	CategoryHousing   Category = "moradia"
	CategoryHealth    Category = "saude"
	CategoryEducation Category = "educacao"
	CategoryLeisure   Category = "lazer"
	CategoryShopping  Category = "compras"
	CategoryServices  Category = "servicos"
)

// DefaultCategory catches ad-hoc purchases no keyword matched.
const DefaultCategory = CategoryShopping

var Categories = []Category{
	CategoryFood, CategoryTransport, CategoryHousing, CategoryHealth,
	CategoryEducation, CategoryLeisure, CategoryShopping, CategoryServices,
}

func (c Category) String() string { return string(c) }

func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "Alimentação"
	case CategoryTransport:
		return "Transporte"
	case CategoryHousing:
		return "Moradia"
	case CategoryHealth:
		return "Saúde"
	case CategoryEducation:
		return "Educação"
	case CategoryLeisure:
		return "Lazer"
	case CategoryShopping:
		return "Compras"
	case CategoryServices:
		return "Serviços"
	default:
		return string(c)
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryHousing, CategoryHealth,
		CategoryEducation, CategoryLeisure, CategoryShopping, CategoryServices:
		return true
	}
	return false
}

// InstallmentPlan splits a purchase into Count equal payments of Amount.
// A plan always has Count between MinInstallments and MaxInstallments.
type InstallmentPlan struct {
	Count  int
	Amount decimal.Decimal
}

// ParsedExpense is the structured reading of one chat message. It is
// consumed right away to build ledger records and never stored.
type ParsedExpense struct {
	Description string
	TotalAmount decimal.Decimal
	Method      PaymentMethod
	Category    Category
	// Installments is nil for an at-once purchase.
	Installments *InstallmentPlan
}

// HasInstallments reports whether the expense is paid in more than one go.
func (p ParsedExpense) HasInstallments() bool {
	return p.Installments != nil && p.Installments.Count > 1
}
