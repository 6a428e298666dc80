package app

import "strings"

// ProblemCategory selects which local answer template applies when the
// completion backend cannot be used.
type ProblemCategory int

const (
	CategoryGeneric ProblemCategory = iota
	CategoryEquation
	CategoryGeometry
	CategoryFunction
)

var categoryKeywords = map[ProblemCategory][]string{
	CategoryEquation: {"equação", "equacao", "bhaskara", "raiz", "incógnita", "incognita", "resolver x", "segundo grau"},
	CategoryGeometry: {"triângulo", "triangulo", "pitágoras", "pitagoras", "área", "area", "perímetro", "perimetro", "círculo", "circulo", "hipotenusa", "cateto"},
	CategoryFunction: {"função", "funcao", "gráfico", "grafico", "parábola", "parabola", "domínio", "dominio", "vértice", "vertice", "f(x)"},
}

// DetectCategory picks the template family for a question. Equation wins
// over geometry wins over function when keywords from several families
// appear, matching the specificity of the templates.
func DetectCategory(question string) ProblemCategory {
	q := strings.ToLower(question)
	for _, cat := range []ProblemCategory{CategoryEquation, CategoryGeometry, CategoryFunction} {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(q, kw) {
				return cat
			}
		}
	}
	return CategoryGeneric
}

const fallbackHeader = "🎓 PENSA.AI - SISTEMA EDUCACIONAL\n\n"

const fallbackFooter = `

🔄 VERIFICAÇÃO: substitua o resultado de volta no enunciado e confira as unidades.

🎯 PARA SEU PROBLEMA: aplique o método acima aos seus dados, passo a passo, e compare com o exemplo. O resultado final é seu para descobrir!`

var fallbackBodies = map[ProblemCategory]string{
	CategoryEquation: `🎯 ANÁLISE: sua pergunta envolve resolução de equações.

📚 CONCEITOS: uma equação expressa igualdade entre expressões; resolver é encontrar os valores da incógnita que a tornam verdadeira.

📐 FÓRMULAS: para ax² + bx + c = 0, use Bhaskara: x = (-b ± √Δ)/2a, com Δ = b² - 4ac.

🛠️ MÉTODO PASSO A PASSO:
Passo 1: organize a equação na forma padrão.
Passo 2: identifique os coeficientes a, b e c.
Passo 3: calcule o discriminante Δ.
Passo 4: aplique a fórmula e simplifique.

📝 EXEMPLO RESOLVIDO: x² - 5x + 6 = 0 → a=1, b=-5, c=6 → Δ = 25 - 24 = 1 → x = (5 ± 1)/2 → x₁ = 3 e x₂ = 2.`,

	CategoryGeometry: `🎯 ANÁLISE: sua pergunta envolve geometria.

📚 CONCEITOS: figuras geométricas têm medidas relacionadas por fórmulas fixas; identifique a figura antes de calcular.

📐 FÓRMULAS: retângulo A = b×h; triângulo A = (b×h)/2; círculo A = πr²; Pitágoras a² + b² = c².

🛠️ MÉTODO PASSO A PASSO:
Passo 1: desenhe a figura e marque os dados.
Passo 2: escolha a fórmula que liga dados e incógnita.
Passo 3: substitua os valores conhecidos.
Passo 4: isole a incógnita e calcule.

📝 EXEMPLO RESOLVIDO: triângulo retângulo com catetos 6 e 8 → c² = 6² + 8² = 100 → hipotenusa c = 10.`,

	CategoryFunction: `🎯 ANÁLISE: sua pergunta envolve funções.

📚 CONCEITOS: uma função associa cada valor do domínio a um único valor; o gráfico revela comportamento, raízes e extremos.

📐 FÓRMULAS: linear f(x) = ax + b; quadrática f(x) = ax² + bx + c, vértice em x = -b/2a.

🛠️ MÉTODO PASSO A PASSO:
Passo 1: identifique o tipo de função pelos termos.
Passo 2: extraia os coeficientes.
Passo 3: calcule raízes, vértice ou interceptos conforme pedido.
Passo 4: esboce o gráfico para interpretar.

📝 EXEMPLO RESOLVIDO: f(x) = x² - 4x + 3 → vértice em x = 4/2 = 2, f(2) = -1 → mínimo no ponto (2, -1).`,

	CategoryGeneric: `🎯 ANÁLISE: identifique primeiro a área de estudo da sua pergunta.

📚 CONCEITOS: todo problema se resolve reconhecendo o que se pede e quais conceitos se aplicam.

🛠️ MÉTODO PASSO A PASSO:
Passo 1: IDENTIFIQUE que tipo de problema é.
Passo 2: ORGANIZE os dados conhecidos e as incógnitas.
Passo 3: APLIQUE os conceitos e fórmulas adequados.
Passo 4: RESOLVA passo a passo, sem pular etapas.
Passo 5: VERIFIQUE se o resultado faz sentido.

📝 EXEMPLO RESOLVIDO: procure um exercício similar já resolvido no seu material e refaça-o cobrindo a solução.`,
}

// FallbackAnswer generates a deterministic, structured educational answer
// locally. It is the hard guarantee behind "always answer something useful":
// whatever fails upstream, the student receives methodology, never an error.
func FallbackAnswer(question string) string {
	body := fallbackBodies[DetectCategory(question)]
	return fallbackHeader + body + fallbackFooter
}
