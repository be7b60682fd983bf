package expense

import (
	"regexp"
	"strings"
)

type categoryRule struct {
	category Category
	keywords []string
	re       *regexp.Regexp
}

// Keywords are folded (lowercase, no accents). A keyword matches a whole
// word, optionally pluralized with "s" or "es".
var categoryRules = buildCategoryRules([]categoryRule{
	{category: CategoryFood, keywords: []string{
		"comida", "almoco", "jantar", "cafe", "lanche", "restaurante", "ifood", "delivery",
		"supermercado", "mercado", "padaria", "pizza", "hamburguer", "sushi", "acai", "feira",
	}},
	{category: CategoryTransport, keywords: []string{
		"uber", "taxi", "gasolina", "combustivel", "estacionamento", "onibus", "metro",
		"passagem", "pedagio", "99pop", "99 pop", "indriver",
	}},
	{category: CategoryHousing, keywords: []string{
		"aluguel", "condominio", "luz", "energia", "agua", "gas", "iptu", "casa",
		"apartamento", "reforma",
	}},
	{category: CategoryHealth, keywords: []string{
		"remedio", "farmacia", "medico", "consulta", "exame", "hospital", "dentista",
		"plano de saude", "academia", "suplemento",
	}},
	{category: CategoryEducation, keywords: []string{
		"curso", "faculdade", "escola", "livro", "aula", "mensalidade", "material escolar",
		"udemy", "alura",
	}},
	{category: CategoryLeisure, keywords: []string{
		"cinema", "teatro", "show", "festa", "viagem", "hotel", "netflix", "spotify", "jogo",
		"game", "bar", "balada", "parque", "streaming",
	}},
	{category: CategoryShopping, keywords: []string{
		"roupa", "sapato", "tenis", "celular", "notebook", "computador", "eletronico", "loja",
		"shopping", "presente", "amazon", "mercado livre", "shopee", "magazine", "tv",
		"geladeira", "maquina", "movel", "eletrodomestico",
	}},
	{category: CategoryServices, keywords: []string{
		"internet", "telefone", "plano", "assinatura", "seguro", "manutencao", "conserto",
		"faxina", "lavanderia",
	}},
})

func buildCategoryRules(rules []categoryRule) []categoryRule {
	for i := range rules {
		quoted := make([]string, len(rules[i].keywords))
		for j, kw := range rules[i].keywords {
			quoted[j] = regexp.QuoteMeta(kw)
		}
		rules[i].re = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)(?:s|es)?\b`)
	}
	return rules
}

// detectCategory returns the first category with a matching keyword.
func detectCategory(text string) Category {
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return DefaultCategory
}
