package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/cduffaut/jobtrack/internal/user"
	"github.com/cduffaut/jobtrack/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// message identique pour email inconnu et mauvais mot de passe
const invalidCredentials = "Email ou mot de passe incorrect"

// Service d'authentification
type Service struct {
	userRepo user.Repository
	tokens   *TokenManager
	hashCost int
}

// NewService cree un nouveau service d'auth
func NewService(userRepo user.Repository, tokens *TokenManager) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// data pour l'inscription
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Statut   string `json:"statut"`
}

// data pour la connexion
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result est renvoyé après inscription ou connexion
type Result struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Register inscrit un nouvel utilisateur et lui délivre un token
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nom = validation.SanitizeInput(req.Nom)
	req.Prenom = validation.SanitizeInput(req.Prenom)
	req.Statut = validation.SanitizeInput(req.Statut)

	if err := validation.ValidateRegistration(req.Email, req.Password, req.Nom, req.Prenom, req.Statut); err != nil {
		return nil, err
	}

	// verif si l'email existe deja
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.NewError(models.ErrConflict, "Cet email est déjà utilisé")
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("recherche de l'email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du hachage du mot de passe: %w", err)
	}

	newUser := &models.User{
		Email:    req.Email,
		Password: string(hashed),
		Nom:      req.Nom,
		Prenom:   req.Prenom,
		Statut:   req.Statut,
	}

	// la contrainte unique couvre deux inscriptions simultanées
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("erreur lors de la création de l'utilisateur: %w", err)
	}

	return s.issue(newUser)
}

// Login vérifie les identifiants et délivre un nouveau token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, validation.New("email", "l'email est obligatoire")
	}
	if req.Password == "" {
		return nil, validation.New("password", "le mot de passe est obligatoire")
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewError(models.ErrUnauthorized, invalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("recherche de l'utilisateur: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, models.NewError(models.ErrUnauthorized, invalidCredentials)
	}

	return s.issue(u)
}

// GetCurrentUser renvoie le profil de l'utilisateur authentifié
func (s *Service) GetCurrentUser(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewError(models.ErrNotFound, "Utilisateur non trouvé")
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de l'utilisateur: %w", err)
	}
	return u, nil
}

// ValidateToken renvoie l'ID utilisateur porté par un token valide
func (s *Service) ValidateToken(token string) (int, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return userID, nil
}

func (s *Service) issue(u *models.User) (*Result, error) {
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: u.Summary()}, nil
}
