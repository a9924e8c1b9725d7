package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/internal/infrastructure/memory"
	"github.com/jhoicas/oficina-manager/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*AuthUseCase, repository.Set, *time.Time) {
	t.Helper()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	repos := store.Repos()
	uc := NewAuthUseCase(memory.NewTxRunner(store), repos.Users, repos.Employees, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "oficina"}, 14, func() time.Time { return now })
	return uc, repos, &now
}

func TestRegister_IniciaPrueba(t *testing.T) {
	uc, _, now := setup(t)
	res, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Admin", Email: " Admin@Oficina.com ", Password: "segredo"})
	require.NoError(t, err)

	assert.Equal(t, "admin@oficina.com", res.User.Email)
	assert.Equal(t, string(entity.SubscriptionTrial), res.User.SubscriptionStatus)
	require.NotNil(t, res.User.TrialEndDate)
	assert.Equal(t, now.AddDate(0, 0, 14), *res.User.TrialEndDate)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.PortalDashboard, id.Portal)
	assert.Equal(t, RoleAdmin, id.Role)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "admin@oficina.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: "123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrAuth)
	_, err = uc.Login(dto.LoginRequest{Email: "x@b.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrAuth)

	res, err := uc.Login(dto.LoginRequest{Email: "A@B.com", Password: "123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestCheckSubscription_VenceYSeActiva(t *testing.T) {
	uc, repos, now := setup(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: "123"})
	require.NoError(t, err)
	assert.NoError(t, uc.CheckSubscription("a@b.com"))

	*now = now.AddDate(0, 0, 15)
	assert.ErrorIs(t, uc.CheckSubscription("a@b.com"), domain.ErrSubscriptionExpired)
	u, _ := repos.Users.GetByEmail("a@b.com")
	assert.Equal(t, entity.SubscriptionExpired, u.SubscriptionStatus)

	res, err := uc.Subscribe("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, string(entity.SubscriptionActive), res.SubscriptionStatus)
	assert.Nil(t, res.TrialEndDate)
	assert.NoError(t, uc.CheckSubscription("a@b.com"))
}

func TestStoreLogin_CoincidenciaExacta(t *testing.T) {
	uc, repos, _ := setup(t)
	require.NoError(t, repos.Employees.Save(&entity.Employee{ID: "e1", Name: "Carlos", Role: entity.RolePainter, EmployeeID: "FUNC01", Password: "1234"}))

	_, err := uc.StoreLogin(dto.StoreLoginRequest{EmployeeID: "func01", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrAuth)
	_, err = uc.StoreLogin(dto.StoreLoginRequest{EmployeeID: "FUNC01", Password: "1234 "})
	assert.ErrorIs(t, err, domain.ErrAuth)

	res, err := uc.StoreLogin(dto.StoreLoginRequest{EmployeeID: "FUNC01", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "e1", res.Employee.ID)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.PortalStore, id.Portal)
	assert.Equal(t, "e1", id.Subject)
	assert.Equal(t, string(entity.RolePainter), id.Role)
}

func TestRegister_ConcurrenteSoloUnoGana(t *testing.T) {
	uc, repos, _ := setup(t)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Register(context.Background(), dto.RegisterRequest{Email: "dono@oficina.com", Password: "p"})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	}
	assert.Equal(t, 1, ok)
	user, err := repos.Users.GetByEmail("dono@oficina.com")
	require.NoError(t, err)
	assert.Equal(t, "p", user.Password)
}
