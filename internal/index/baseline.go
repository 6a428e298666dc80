package index

import "pensaai/internal/model"

// baselineDocumentID uses an extension the document store never accepts, so
// an upload can never collide with or replace the built-in material.
const baselineDocumentID model.DocumentID = "pensaai-base.builtin"

// baselineStudyMaterial is the built-in reference corpus. It is indexed on
// every rebuild, which guarantees retrieval never operates on an empty
// knowledge base even before the first upload.
const baselineStudyMaterial = `PENSA.AI - MATERIAL DE REFERÊNCIA EDUCACIONAL

MATEMÁTICA - ÁLGEBRA:
- Equação linear ax + b = c: isole x subtraindo b e dividindo por a.
- Equação quadrática (equação do segundo grau) ax² + bx + c = 0: use a
  fórmula de Bhaskara x = (-b ± √Δ)/2a, com discriminante Δ = b² - 4ac.
- Δ > 0 indica duas raízes reais, Δ = 0 uma raiz dupla, Δ < 0 nenhuma raiz real.

MATEMÁTICA - GEOMETRIA:
- Área do retângulo: A = base × altura.
- Área do triângulo: A = (base × altura)/2.
- Área do círculo: A = πr².
- Teorema de Pitágoras: em um triângulo retângulo, a² + b² = c², onde c é a
  hipotenusa e a, b são os catetos.

MATEMÁTICA - FUNÇÕES:
- Função linear f(x) = ax + b: reta com inclinação a e intercepto b.
- Função quadrática f(x) = ax² + bx + c: parábola com vértice em x = -b/2a.
- Concavidade para cima quando a > 0, para baixo quando a < 0.

FÍSICA - CINEMÁTICA:
- Movimento retilíneo uniforme (MRU): s = s₀ + vt.
- Movimento uniformemente variado (MRUV): v = v₀ + at e s = s₀ + v₀t + at²/2.

FÍSICA - DINÂMICA:
- Segunda Lei de Newton: F = ma.
- Peso: P = mg, com g ≈ 9,8 m/s².

QUÍMICA - ESTEQUIOMETRIA:
- Um mol contém 6,02×10²³ partículas (número de Avogadro).
- Número de mols: n = m/M (massa dividida pela massa molar).

METODOLOGIA DE RESOLUÇÃO:
1. Identifique o tipo de problema.
2. Liste os dados conhecidos e as incógnitas.
3. Escolha os conceitos e fórmulas adequados.
4. Resolva passo a passo.
5. Verifique se o resultado faz sentido.`
