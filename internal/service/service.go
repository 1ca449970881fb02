package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moodlens/emotion-service/internal/config"
	"github.com/moodlens/emotion-service/internal/inference"
	"github.com/moodlens/emotion-service/internal/models"
	"github.com/moodlens/emotion-service/internal/store"
	"github.com/moodlens/emotion-service/internal/token"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned on login failure. The same error
	// covers an unknown username and a wrong secret so callers cannot
	// probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrEmptyInput is returned when an analysis request carries no payload.
	ErrEmptyInput = errors.New("empty input")
	// ErrInferenceTimeout is returned when a model call exceeds the
	// configured deadline.
	ErrInferenceTimeout = errors.New("inference timed out")
)

// bcrypt rejects inputs longer than 72 bytes, so secrets are truncated to
// that ceiling before hashing and before comparison.
const maxSecretBytes = 72

// WelcomeMailer sends a greeting after successful registration.
type WelcomeMailer interface {
	SendWelcome(to, username string) error
}

// AudioNormalizer converts an uploaded audio stream into a WAV file the
// transcriber accepts. The returned cleanup removes the file.
type AudioNormalizer interface {
	Normalize(ctx context.Context, upload io.Reader) (wavPath string, cleanup func(), err error)
}

// Service handles business logic
type Service struct {
	users       store.UserStore
	tokens      *token.Manager
	classifier  inference.TextClassifier
	transcriber inference.SpeechTranscriber
	detector    inference.FaceDetector
	normalizer  AudioNormalizer
	mailer      WelcomeMailer
	log         *logrus.Logger
	config      *config.Config
}

// Deps bundles the collaborators of the service layer.
type Deps struct {
	Users       store.UserStore
	Tokens      *token.Manager
	Classifier  inference.TextClassifier
	Transcriber inference.SpeechTranscriber
	Detector    inference.FaceDetector
	Normalizer  AudioNormalizer
	Mailer      WelcomeMailer // optional
}

// NewService initializes a new service
func NewService(deps Deps, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		users:       deps.Users,
		tokens:      deps.Tokens,
		classifier:  deps.Classifier,
		transcriber: deps.Transcriber,
		detector:    deps.Detector,
		normalizer:  deps.Normalizer,
		mailer:      deps.Mailer,
		log:         log,
		config:      cfg,
	}
}

// Register creates a new user with a bcrypt-hashed secret and an email
// derived from the username
func (s *Service) Register(ctx context.Context, username, secret string) (*models.User, error) {
	hashedSecret, err := bcrypt.GenerateFromPassword(truncateSecret(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: string(hashedSecret),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(user.Email, user.Username); err != nil {
				s.log.Errorf("Failed to send welcome mail to %s: %v", user.Email, err)
			}
		}()
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a signed bearer token
func (s *Service) Login(ctx context.Context, username, secret string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), truncateSecret(secret)); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return tokenString, nil
}

// UserInfo returns the profile of the token's subject
func (s *Service) UserInfo(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func truncateSecret(secret string) []byte {
	b := []byte(secret)
	if len(b) > maxSecretBytes {
		b = b[:maxSecretBytes]
	}
	return b
}
