package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/E72-BI/cartao-santa-casa/internal/domain"
	"github.com/E72-BI/cartao-santa-casa/internal/events"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
	"github.com/E72-BI/cartao-santa-casa/pkg/util"
)

// FlowStep identifies where the login/registration flow currently is.
type FlowStep string

const (
	StepEmailEntry        FlowStep = "email"
	StepPasswordEntry     FlowStep = "password"
	StepPasswordCreation  FlowStep = "create-password"
	StepValidationPending FlowStep = "validation-pending"
	StepRegistration      FlowStep = "register"
)

// MinPasswordLength is the minimum accepted password size.
const MinPasswordLength = 4

// RegistrationInput carries the card-request form fields.
type RegistrationInput struct {
	Name      string
	Email     string
	CPF       string
	BirthDate string
	CardType  domain.CardType
}

// AuthService owns the login/registration state machine. The portal serves
// one user per running instance, so the service holds the single flow state:
// the current step and the working email it applies to.
type AuthService struct {
	mu         sync.Mutex
	directory  *repository.MemberDirectory
	sessions   *repository.SessionStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	step  FlowStep
	email string
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	Directory  *repository.MemberDirectory
	Sessions   *repository.SessionStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service with the flow at EmailEntry.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		directory:  deps.Directory,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
		step:       StepEmailEntry,
	}
}

// Step returns the flow's current step.
func (s *AuthService) Step() FlowStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Reset returns the flow to EmailEntry, discarding the working email.
func (s *AuthService) Reset() FlowStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepEmailEntry
	s.email = ""
	return s.step
}

// SubmitEmail resolves the email against the directory and routes the flow:
// unvalidated records go to ValidationPending, records without a password go
// to PasswordCreation, everyone else to PasswordEntry. An unknown email
// fails and the flow stays at EmailEntry.
func (s *AuthService) SubmitEmail(_ context.Context, email string) (FlowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	if email == "" {
		return s.step, util.NewValidationError("Por favor, insira seu e-mail.", nil)
	}

	member, ok := s.directory.FindByEmail(email)
	if !ok {
		s.step = StepEmailEntry
		return s.step, util.NewEmailNotFound(email)
	}

	s.email = email
	switch {
	case !member.IsValidated:
		s.step = StepValidationPending
	case !member.HasPassword():
		s.step = StepPasswordCreation
	default:
		s.step = StepPasswordEntry
	}
	return s.step, nil
}

// SimulateValidation stands in for the out-of-band confirmation-link click:
// it marks the working email validated and moves on to password creation.
func (s *AuthService) SimulateValidation(ctx context.Context) (FlowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepValidationPending || s.email == "" {
		return s.step, util.NewValidationError("Nenhuma validação pendente.", nil)
	}

	s.directory.MarkValidated(ctx, s.email)
	s.publish(ctx, events.EventMemberValidated, "", events.MemberValidatedPayload{Email: s.email})
	s.step = StepPasswordCreation
	return s.step, nil
}

// SubmitNewPassword stores the first-access password after checking length
// and confirmation, then moves the flow to PasswordEntry.
func (s *AuthService) SubmitNewPassword(ctx context.Context, password, confirm string) (FlowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepPasswordCreation || s.email == "" {
		return s.step, util.NewValidationError("Nenhuma criação de senha pendente.", nil)
	}
	if len(password) < MinPasswordLength {
		return s.step, util.NewPasswordTooShort(MinPasswordLength)
	}
	if password != confirm {
		return s.step, util.NewPasswordMismatch()
	}

	s.directory.SetPassword(ctx, s.email, password)
	s.publish(ctx, events.EventPasswordCreated, "", events.PasswordCreatedPayload{Email: s.email})
	s.step = StepPasswordEntry
	return s.step, nil
}

// SubmitPassword checks the credential against the stored password and, on
// an exact match, establishes the authenticated session. The flow returns to
// EmailEntry; re-entering requires logout.
func (s *AuthService) SubmitPassword(ctx context.Context, password string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepPasswordEntry || s.email == "" {
		return domain.Session{}, util.NewValidationError("Informe seu e-mail antes da senha.", nil)
	}

	member, ok := s.directory.FindByEmail(s.email)
	if !ok || !member.HasPassword() || member.Password != password {
		return domain.Session{}, util.NewWrongPassword()
	}

	sess := s.sessions.SignIn(ctx, member)
	s.logger.Info("member signed in",
		zap.String("member_id", member.ID),
		zap.String("role", string(*sess.Role)),
	)
	s.step = StepEmailEntry
	s.email = ""
	return sess, nil
}

// StartRegistration switches the flow to the card-request form.
func (s *AuthService) StartRegistration() FlowStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepRegistration
	return s.step
}

// SubmitRegistration creates a new unvalidated record from the form: name
// upper-cased, email lower-cased, five-year expiry from the current month,
// status active, no password. The flow continues at ValidationPending for
// the new email.
func (s *AuthService) SubmitRegistration(ctx context.Context, input RegistrationInput) (domain.Member, FlowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	missing := map[string]any{}
	for field, value := range map[string]string{
		"name":      input.Name,
		"email":     input.Email,
		"cpf":       input.CPF,
		"birthDate": input.BirthDate,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return domain.Member{}, s.step, util.NewIncompleteForm(missing)
	}

	cardType := input.CardType
	if cardType == "" {
		cardType = domain.CardTypePrata
	}

	now := s.now()
	member := domain.Member{
		ID:          uuid.NewString(),
		Name:        strings.ToUpper(input.Name),
		Email:       strings.ToLower(input.Email),
		CPF:         input.CPF,
		CardType:    cardType,
		ExpiryDate:  fmt.Sprintf("%02d/%d", int(now.Month()), now.Year()+5),
		BirthDate:   input.BirthDate,
		Status:      domain.MemberStatusActive,
		IsValidated: false,
	}

	s.directory.Insert(ctx, member)
	s.publish(ctx, events.EventMemberRegistered, member.ID, events.MemberRegisteredPayload{
		Name:     member.Name,
		Email:    member.Email,
		CardType: member.CardType,
	})

	s.email = member.Email
	s.step = StepValidationPending
	return member, s.step, nil
}

// Logout clears the session and resets the flow.
func (s *AuthService) Logout(ctx context.Context) {
	s.sessions.SignOut(ctx)
	s.mu.Lock()
	s.step = StepEmailEntry
	s.email = ""
	s.mu.Unlock()
}

// Session returns the current session snapshot.
func (s *AuthService) Session() domain.Session {
	return s.sessions.Current()
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, memberID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MemberID:  memberID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
