package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

// fakeUserRepo usuarios en memoria indexados por email y teléfono.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byPhone map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byPhone: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	r.byEmail[u.Email] = u
	r.byPhone[u.Phone] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) FindByPhone(phone string) (*entity.User, error) {
	return r.byPhone[phone], nil
}

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "tienda-api-test",
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName: "maría josé",
		LastName:  "GARCÍA",
		Email:     "maria@example.com",
		Phone:     "+34600000001",
		Password:  "Secreta1!",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_NormalizaNombresYAsignaRolCustomer(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	out, err := uc.Register(validRegister())
	require.NoError(t, err)
	assert.Equal(t, "María José", out.FirstName, "cada parte del nombre en forma canónica")
	assert.Equal(t, "García", out.LastName)
	assert.Equal(t, entity.RoleCustomer, out.Role, "el registro público siempre crea clientes")
	assert.NotEmpty(t, out.ID)
}

func TestRegister_GuardaHashNoElPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	in := validRegister()
	_, err := uc.Register(in)
	require.NoError(t, err)

	stored := repo.byEmail["maria@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, in.Password, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, in.Password)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Phone = "+34600000002"
	_, err = uc.Register(in)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_TelefonoDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Email = "otra@example.com"
	_, err = uc.Register(in)
	require.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
}

func TestRegister_PoliticaDePassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	weak := []string{
		"corta1!",    // menos de 8
		"secreta1!",  // sin mayúscula
		"SECRETA1!",  // sin minúscula
		"Secretaa!",  // sin dígito
		"Secreta12",  // sin símbolo
	}
	for _, p := range weak {
		in := validRegister()
		in.Password = p
		_, err := uc.Register(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "password débil debe rechazarse: %q", p)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenConRolYUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "Secreta1!"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "maria@example.com", out.User.Email)

	userID, role, err := pkgjwt.Parse(testJWTCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "maria@example.com", Password: "Otra1234!"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewUseCase(repo, testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "Secreta1!"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
