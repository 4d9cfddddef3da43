package scoring

// Phrases are matched as plain substrings of the lowercased message, so short entries such
// as "pin" or "at" also fire inside longer words. The lists are kept as deployed.

var scamIndicators = []string{
	"urgente", "imediatamente", "último dia", "oferta limitada",
	"clique aqui", "verifique agora", "confirme os dados",
	"conta bloqueada", "suspensa", "dados bancários",
	"transferência", "prémio", "ganhou", "sorteio",
	"phishing", "bitcoin", "criptomoeda", "nib", "iban",
	"multibanco", "cartão de crédito", "password",
	"código de segurança", "pin", "dados pessoais",
	"validar conta", "atualizar dados", "expirou",
	"desconto especial", "oferta exclusiva", "apenas hoje",
	"clique no link", "download", "instale agora",
	"vírus detectado", "computador infetado",
}

var officialEntities = []string{
	"banco", "caixa geral", "millennium", "santander",
	"ctt", "correios", "emel", "edp", "nos", "meo",
	"vodafone", "segurança social", "finanças", "at",
	"tribunal", "polícia", "gnr", "psp",
}

// ScamIndicators returns a copy of the indicator phrases in match order.
func ScamIndicators() []string {
	return append([]string(nil), scamIndicators...)
}

// OfficialEntities returns a copy of the institution names commonly impersonated.
func OfficialEntities() []string {
	return append([]string(nil), officialEntities...)
}
