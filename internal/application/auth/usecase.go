package auth

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Política de password: al menos una minúscula, una mayúscula, un dígito y un símbolo.
var (
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`\d`)
	symbolPattern = regexp.MustCompile(`[@$!%*?&]`)
)

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	titler   cases.Caser
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		titler:   cases.Title(language.Und),
	}
}

// Register crea un cliente: normaliza los nombres, valida la política de password,
// hashea con bcrypt y persiste con rol customer. Devuelve ErrEmailAlreadyExists o
// ErrPhoneAlreadyExists si el email o el teléfono ya están en uso.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validPassword(in.Password) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.userRepo.FindByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, _ := uc.userRepo.FindByPhone(in.Phone); existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		FirstName:    uc.normalizeName(in.FirstName),
		LastName:     uc.normalizeName(in.LastName),
		MiddleName:   uc.normalizeName(in.MiddleName),
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// validPassword política: mínimo 8 caracteres con minúscula, mayúscula, dígito y símbolo.
func validPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	return lowerPattern.MatchString(p) && upperPattern.MatchString(p) &&
		digitPattern.MatchString(p) && symbolPattern.MatchString(p)
}

// normalizeName pasa el nombre a forma canónica: primera letra de cada parte en
// mayúscula y el resto en minúscula, conservando partes compuestas con guion.
func (uc *UseCase) normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return uc.titler.String(strings.ToLower(name))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Phone:      u.Phone,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		MiddleName: u.MiddleName,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
