package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/observability"
)

// AssistantCategory is one of the five topics the assistant answers about.
type AssistantCategory string

const (
	CategoryAppointment AssistantCategory = "consulta"
	CategoryExam        AssistantCategory = "exame"
	CategoryMedication  AssistantCategory = "medicamento"
	CategoryBenefit     AssistantCategory = "beneficio"
	CategoryHelp        AssistantCategory = "ajuda"
)

// categoryKeywords is checked in order; the first category with a matching
// keyword wins, and inputs matching nothing fall through to help.
var categoryKeywords = []struct {
	category AssistantCategory
	keywords []string
}{
	{CategoryAppointment, []string{"consulta", "médico", "especialista"}},
	{CategoryExam, []string{"exame", "raio", "tomografia", "ressonância"}},
	{CategoryMedication, []string{"medicamento", "remédio", "farmácia"}},
	{CategoryBenefit, []string{"benefício", "desconto"}},
}

var cannedResponses = map[AssistantCategory][]string{
	CategoryAppointment: {
		"Contate nosso WhatsApp: (82) 4009-6001 para agendar sua consulta. Temos disponibilidade com especialistas em Cardiologia, Pediatria, Ortopedia e muito mais.",
		"Para agendar uma consulta, você pode ligar para (82) 4009-6001 ou usar nosso portal online. Seu cartão oferece até 40% de desconto em consultas eletivas.",
		"Clique em \"Agendar Consultas\" nos canais diretos acima. É rápido e fácil marcar sua consulta pela Santa Casa.",
	},
	CategoryExam: {
		"Realizamos exames de imagem como Raio-X, Tomografia e Ressonância Magnética. Você tem até 50% de desconto com seu cartão!",
		"Os exames laboratoriais também possuem desconto especial. Traga seu cartão e aproveite a qualidade Santa Casa.",
		"Exames de sangue, imagem e diagnósticos com até 50% de desconto para portadores do cartão Santa Casa.",
	},
	CategoryMedication: {
		"Seus medicamentos de uso contínuo têm até 20% de desconto nas farmácias parceiras como Pague Menos e Drogasil. Apresente seu cartão!",
		"Use seu cartão para conseguir descontos em medicamentos nas principais redes de farmácias de Maceió.",
		"Desconto de até 20% em medicamentos. Válido em farmácias conveniadas mediante apresentação do cartão.",
	},
	CategoryBenefit: {
		"Seu cartão oferece: Consultas com desconto, Exames de imagem, Laboratório, Medicamentos em farmácias parceiras, e muito mais!",
		"Como portador do cartão, você tem acesso a uma ampla rede credenciada em Maceió com descontos exclusivos.",
		"Os principais benefícios incluem: Atendimento especializado, Exames com desconto, Medicamentos em rede conveniada.",
	},
	CategoryHelp: {
		"Posso ajudá-lo com informações sobre: Agendamento de consultas, Exames disponíveis, Desconto em medicamentos, Benefícios do cartão, ou Reclamações/Sugestões.",
		"Estou aqui para responder perguntas sobre seus benefícios. O que você gostaria de saber?",
		"Faça sua pergunta sobre consultas, exames, medicamentos ou qualquer dúvida sobre seu cartão de descontos.",
	},
}

// Classify maps free text to exactly one category by ordered
// case-insensitive substring search.
func Classify(text string) AssistantCategory {
	lower := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return CategoryHelp
}

// CannedResponses returns the fixed reply set for a category.
func CannedResponses(category AssistantCategory) []string {
	return append([]string{}, cannedResponses[category]...)
}

// AssistantService picks canned replies for chat messages. The random source
// is injected so tests can pin the selection; the reply delay is cosmetic
// and waits on the context rather than blocking a thread.
type AssistantService struct {
	mu      sync.Mutex
	rng     *rand.Rand
	delay   time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAssistantService builds the service.
func NewAssistantService(rng *rand.Rand, delay time.Duration, metrics *observability.Metrics, logger *zap.Logger) *AssistantService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AssistantService{rng: rng, delay: delay, metrics: metrics, logger: logger}
}

// Respond classifies the message and returns one of the category's canned
// replies, chosen uniformly at random. Repeated calls with the same input
// may return different strings, always from the same category's set.
func (s *AssistantService) Respond(ctx context.Context, text string) (string, error) {
	category := Classify(text)
	replies := cannedResponses[category]

	s.mu.Lock()
	reply := replies[s.rng.Intn(len(replies))]
	s.mu.Unlock()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	s.metrics.RecordAssistantReply(string(category))
	s.logger.Debug("assistant reply",
		zap.String("category", string(category)),
	)
	return reply, nil
}
