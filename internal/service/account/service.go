package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RegisteredMessage is returned after a successful self registration.
const RegisteredMessage = "Inscription réussie. Veuillez vous connecter."

// DefaultPosition is given to the profile created at registration.
const DefaultPosition = "Employé"

type AccountServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service
	cost int
}

func NewAccountService(tx database.Transactor, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AccountServiceImpl{
		tx:                 tx,
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		cost:               bcrypt.DefaultCost,
	}
}

// HashPassword hashes with the given bcrypt cost. Fixtures and tests use
// bcrypt.MinCost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AccountServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	userData, err := a.UserRepository.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := a.Service.GenerateAccessToken(userData)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		Access: token,
		User:   userData.Identity(),
	}, nil
}

// Register implements auth.AuthService. The account and its employee
// profile are created together.
func (a *AccountServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	exists, err := a.UserRepository.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return auth.RegisterResponse{}, user.ErrUsernameExists
	}

	hash, err := HashPassword(req.Password, a.cost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		created, err := a.UserRepository.Create(ctx, user.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         user.RoleStaff,
		})
		if err != nil {
			return err
		}

		_, err = a.EmployeeRepository.Create(ctx, employee.EmployeeRequest{
			Name:     req.Username,
			Position: DefaultPosition,
			UserID:   &created.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{Message: RegisteredMessage}, nil
}
