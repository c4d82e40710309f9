package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/observability"
)

func newTestAssistant(delay time.Duration) *AssistantService {
	return NewAssistantService(rand.New(rand.NewSource(1)), delay, observability.NewMetrics(), zap.NewNop())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want AssistantCategory
	}{
		{"appointment keyword", "Quero agendar uma consulta", CategoryAppointment},
		{"doctor keyword", "Preciso de um médico", CategoryAppointment},
		{"exam keyword", "Onde faço raio-x?", CategoryExam},
		{"exam uppercase", "PRECISO DE UMA TOMOGRAFIA", CategoryExam},
		{"medication keyword", "Desconto em remédio?", CategoryMedication},
		{"benefit keyword", "Quais os benefícios do cartão?", CategoryBenefit},
		{"no keyword falls through", "xyz random", CategoryHelp},
		{"empty input", "", CategoryHelp},
		// "consulta" is checked before "desconto": first category wins
		{"multiple categories", "desconto na consulta", CategoryAppointment},
		{"exam beats medication", "exame antes do medicamento", CategoryExam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestRespondStaysWithinCategorySet(t *testing.T) {
	svc := newTestAssistant(0)
	ctx := context.Background()

	appointment := CannedResponses(CategoryAppointment)
	for i := 0; i < 20; i++ {
		reply, err := svc.Respond(ctx, "Quero agendar uma consulta")
		require.NoError(t, err)
		assert.Contains(t, appointment, reply)
	}

	help := CannedResponses(CategoryHelp)
	for i := 0; i < 20; i++ {
		reply, err := svc.Respond(ctx, "xyz random")
		require.NoError(t, err)
		assert.Contains(t, help, reply)
	}
}

func TestRespondIsDeterministicWithFixedSeed(t *testing.T) {
	ctx := context.Background()

	first := newTestAssistant(0)
	second := newTestAssistant(0)
	for i := 0; i < 10; i++ {
		a, err := first.Respond(ctx, "benefício")
		require.NoError(t, err)
		b, err := second.Respond(ctx, "benefício")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRespondHonorsCancellation(t *testing.T) {
	svc := newTestAssistant(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.Respond(ctx, "consulta")
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRespondRecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	svc := NewAssistantService(rand.New(rand.NewSource(1)), 0, metrics, zap.NewNop())

	_, err := svc.Respond(context.Background(), "consulta")
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.AssistantReplies()[string(CategoryAppointment)])
}
