package llm

import (
	"strings"

	"github.com/discfacil/discfacil/internal/model"
)

// BuildAnalysisPrompt builds the Portuguese analysis prompt from the
// participant name and ranked scores. The requested structure (### section
// headers, - bullet lists) is what the handler renders back verbatim.
func BuildAnalysisPrompt(participantName string, scores []model.Score) string {
	scorePairs := ScorePairs(scores)

	var sb strings.Builder
	sb.WriteString("Você é um especialista em análise de perfil comportamental DISC.\n")
	sb.WriteString("Sua tarefa é criar um relatório detalhado, humano e encorajador para " + participantName)
	sb.WriteString(", com base nas seguintes pontuações do teste DISC: " + scorePairs + ".\n\n")
	sb.WriteString("O relatório deve ser escrito em português do Brasil e ter a seguinte estrutura:\n\n")

	sb.WriteString("### Síntese do Perfil de " + participantName + "\n")
	sb.WriteString("- Um parágrafo conciso que destaca o perfil predominante e o secundário, descrevendo a principal dinâmica comportamental.\n\n")

	sb.WriteString("### Perfil Predominante: [Nome do Perfil Dominante]\n")
	sb.WriteString("- **Características Principais:** Descreva em 3-4 frases as qualidades e o estilo de comportamento associados ao perfil mais alto. Use os adjetivos do teste como base, mas elabore.\n")
	sb.WriteString("- **Motivadores:** O que impulsiona uma pessoa com este perfil? O que ela busca em seu ambiente de trabalho e vida pessoal?\n")
	sb.WriteString("- **Comunicação:** Como essa pessoa prefere se comunicar e receber informações?\n\n")

	sb.WriteString("### Influência do Perfil Secundário: [Nome do Perfil Secundário]\n")
	sb.WriteString("- Descreva como o segundo perfil mais alto complementa ou modula o perfil principal. Por exemplo, como um 'D' com um secundário 'C' difere de um 'D' puro.\n\n")

	sb.WriteString("### Pontos de Desenvolvimento\n")
	sb.WriteString("- De forma construtiva e amigável, aponte 2-3 possíveis pontos de atenção ou áreas para desenvolvimento. Ofereça sugestões práticas para cada ponto.\n\n")

	sb.WriteString("Use um tom profissional, mas acolhedor. Formate a resposta usando markdown, com títulos (###) e listas de marcadores (-). ")
	sb.WriteString("Não inclua nenhuma introdução ou conclusão além do que foi pedido. Comece diretamente com o primeiro título.\n")

	return sb.String()
}
