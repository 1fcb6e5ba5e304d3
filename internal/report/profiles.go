package report

import "github.com/discfacil/discfacil/internal/model"

// secondaryToken marks where a narrative paragraph interpolates the
// lower-cased short name of the secondary profile.
const secondaryToken = "{secundario}"

// ProfileDetails is the static descriptive data for one profile.
type ProfileDetails struct {
	Name        string   `json:"name"`
	ShortName   string   `json:"short_name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// narrative carries everything the composer needs to build the report when
// the profile is dominant: section labels, interpretive paragraphs, the
// synthesis summary and the attention points. One table entry per profile
// replaces four hand-written report branches.
type narrative struct {
	details ProfileDetails

	highLabel        string // e.g. "alta Dominância"
	dominantInsight  string
	secondaryInsight string // may contain secondaryToken
	lowLabel         string // e.g. "baixa Influência e Estabilidade"
	lowIntro         string
	lowInsight       string
	summary          string
	attentionPoints  []string
}

// Details returns the static descriptive data for a profile.
func Details(p model.ProfileType) (ProfileDetails, bool) {
	n, ok := narratives[p]
	return n.details, ok
}

var narratives = map[model.ProfileType]narrative{
	model.ProfileD: {
		details: ProfileDetails{
			Name:        "Dominância (D)",
			ShortName:   "Dominância",
			Description: "Pessoas com perfil Dominante são focadas em resultados, competitivas e assertivas. Gostam de desafios, tomam decisões rápidas e buscam controle. São diretas, firmes e independentes.",
			Keywords:    []string{"Direto", "Decidido", "Ousado", "Competitivo", "Exigente"},
		},
		highLabel:        "alta Dominância",
		dominantInsight:  "Esses termos indicam foco em resultados, ação, competição e controle. Você é motivado por desafios, toma a iniciativa e busca posições de liderança e autonomia para atingir seus objetivos rapidamente.",
		secondaryInsight: "Isso mostra que, apesar do seu foco em ação, você também considera aspectos de {secundario}, equilibrando sua assertividade com planejamento, colaboração ou comunicação, dependendo do perfil secundário.",
		lowLabel:         "baixa Influência e Estabilidade",
		lowIntro:         "Adjetivos ligados a paciência, harmonia e diplomacia foram marcados como “nada a ver comigo”:",
		lowInsight:       "Isso sugere que você prioriza o resultado acima do processo ou da harmonia do grupo, podendo parecer impaciente com rotinas, indecisão ou conversas sem foco claro.",
		summary:          "Pessoa assertiva, competitiva e focada em resultados. Gosta de desafios, age com rapidez e assume o controle das situações. É direto, independente e determinado a alcançar seus objetivos sem rodeios.",
		attentionPoints: []string{
			"Pode ser percebido como autoritário, impaciente ou até intimidador.",
			"Pode ter dificuldade em ouvir outros pontos de vista, especialmente se discordarem dos seus.",
			"Tende a assumir riscos elevados e a focar demais nas tarefas, por vezes negligenciando o lado humano.",
		},
	},
	model.ProfileI: {
		details: ProfileDetails{
			Name:        "Influência (I)",
			ShortName:   "Influência",
			Description: "Pessoas com perfil Influente são comunicativas, otimistas e sociáveis. Gostam de interagir, persuadir e trabalhar em equipe. São entusiasmadas, carismáticas e abertas a novas ideias.",
			Keywords:    []string{"Comunicativo", "Entusiasmado", "Otimista", "Sociável", "Persuasivo"},
		},
		highLabel:        "alta Influência",
		dominantInsight:  "Esses termos indicam foco em comunicação, interação social e otimismo. Você é motivado por reconhecimento, gosta de trabalhar em equipe e tem facilidade em persuadir e motivar os outros com seu entusiasmo.",
		secondaryInsight: "Isso mostra que, apesar de sua natureza extrovertida, você também possui traços de {secundario}, o que pode trazer mais foco em resultados, planejamento ou harmonia para sua comunicação.",
		lowLabel:         "baixa Conformidade e Estabilidade",
		lowIntro:         "Adjetivos ligados a detalhes, rotina e análise crítica foram marcados como “nada a ver comigo”:",
		lowInsight:       "Isso sugere que você prefere ambientes dinâmicos e flexíveis, evitando tarefas repetitivas, detalhadas ou que exijam muita introspecção e análise solitária.",
		summary:          "Pessoa comunicativa, entusiasmada e sociável. Constrói relacionamentos com facilidade, é otimista e persuasiva. Prefere trabalhar em equipe e se destaca em ambientes que permitem interação, criatividade e influência social.",
		attentionPoints: []string{
			"Pode ser impulsivo e pouco atento aos detalhes, prometendo mais do que consegue entregar.",
			"Tende a evitar conflitos e a ser excessivamente otimista, ignorando potenciais problemas.",
			"Pode ter dificuldade em seguir rotinas e focar em uma única tarefa até sua conclusão.",
		},
	},
	model.ProfileS: {
		details: ProfileDetails{
			Name:        "Estabilidade (S - Steadiness)",
			ShortName:   "Estabilidade",
			Description: "Pessoas com perfil de Estabilidade são pacientes, leais e colaboradoras. Buscam segurança, harmonia e um ambiente previsível. São calmas, consistentes e bons ouvintes.",
			Keywords:    []string{"Calmo", "Paciente", "Consistente", "Leal", "Mediador"},
		},
		highLabel:        "alta Estabilidade",
		dominantInsight:  "Esses termos indicam foco em harmonia, segurança, lealdade e planejamento. Você é uma pessoa calma, paciente e consistente, que valoriza um ambiente previsível e colaborativo, atuando como um pilar para a equipe.",
		secondaryInsight: "Isso mostra que, junto com sua natureza calma, você incorpora elementos de {secundario}, o que pode adicionar um foco maior em qualidade, resultados ou comunicação ao seu perfil colaborativo.",
		lowLabel:         "baixa Dominância e Influência",
		lowIntro:         "Adjetivos ligados a competição, assertividade e auto-promoção foram marcados como “nada a ver comigo”:",
		lowInsight:       "Isso sugere que você prefere agir nos bastidores, não gosta de mudanças bruscas e evita ser o centro das atenções ou entrar em confronto direto para preservar a harmonia.",
		summary:          "Pessoa calma, paciente e leal. É um excelente ouvinte e trabalha bem em equipe, buscando sempre a harmonia e a cooperação. Prefere ambientes estáveis e previsíveis e é extremamente confiável, metódico e consistente em suas entregas.",
		attentionPoints: []string{
			"Pode ter dificuldade em lidar com mudanças repentinas ou ambientes caóticos.",
			"Tende a evitar conflitos necessários, podendo guardar ressentimentos ou deixar problemas crescerem.",
			"Pode demorar para tomar decisões, especialmente sob pressão ou com informações incompletas.",
		},
	},
	model.ProfileC: {
		details: ProfileDetails{
			Name:        "Conformidade (C - Conscientiousness)",
			ShortName:   "Cautela",
			Description: "Pessoas com perfil de Conformidade são precisas, analíticas e organizadas. Valorizam a qualidade, as regras e a lógica. São cuidadosas, sistemáticas e focadas em detalhes.",
			Keywords:    []string{"Preciso", "Analítico", "Criterioso", "Organizado", "Cuidadoso"},
		},
		highLabel:        "alta Conformidade",
		dominantInsight:  "Esses termos indicam foco em qualidade, lógica, método e precisão. Você valoriza coerência, padrões altos, planejamento e consistência. Pensa antes de agir, prefere dados a suposições e evita decisões impulsivas.",
		secondaryInsight: "Isso indica que, embora analítico, você também busca resultados concretos e não gosta de desperdício de tempo. Tende a agir com autonomia e clareza, mas sem a impulsividade de outros perfis.",
		lowLabel:         "baixa Influência e Estabilidade",
		lowIntro:         "Adjetivos ligados a emoção, sociabilidade e espontaneidade foram marcados como “nada a ver comigo”:",
		lowInsight:       "Isso mostra que você não busca ser o centro das atenções, prefere interações racionais e um ambiente de trabalho mais controlado e focado.",
		summary:          "Pessoa analítica, disciplinada e exigente. Busca excelência e precisão em tudo que faz. Decide com base em dados e lógica, minimizando riscos. Tem um padrão de qualidade elevado e aversão a erros ou improvisos. Prefere autonomia e clareza de papéis em ambientes organizados.",
		attentionPoints: []string{
			"Pode demorar a decidir por querer analisar todas as variáveis (“paralisia por análise”).",
			"Pode soar excessivamente crítico ou frio ao apontar falhas ou cobrar padrões.",
			"Tende a sobrecarregar-se tentando atingir um nível de perfeição irrealista.",
		},
	},
}
