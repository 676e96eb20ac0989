package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "Gpresence123!"

// DemoAccount describes one seeded user and its employee profile.
type DemoAccount struct {
	Username string
	Email    string
	Role     user.Role
	Name     string
	Position string
	Phone    string
}

// DemoAccounts returns one account per role.
func DemoAccounts() []DemoAccount {
	return []DemoAccount{
		{Username: "admin", Email: "admin@gpresence.local", Role: user.RoleAdmin, Name: "Mamadou Ba", Position: "Administrateur"},
		{Username: "rh", Email: "rh@gpresence.local", Role: user.RoleRH, Name: "Fatou Ndiaye", Position: "Responsable RH", Phone: "+221 77 000 00 01"},
		{Username: "manager", Email: "manager@gpresence.local", Role: user.RoleManager, Name: "Ibrahima Fall", Position: "Chef d'équipe"},
		{Username: "staff", Email: "staff@gpresence.local", Role: user.RoleStaff, Name: "Awa Diallo", Position: "Agent d'accueil"},
	}
}

// SeededUsers maps usernames to the created user ids.
type SeededUsers map[string]int64

// SeedDemo creates the demo accounts with their employee profiles. Accounts
// already present are left untouched. cost is the bcrypt cost.
func SeedDemo(ctx context.Context, tx database.Transactor, users user.UserRepository, employees employee.EmployeeRepository, cost int) (SeededUsers, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	seeded := make(SeededUsers)
	for _, account := range DemoAccounts() {
		existing, err := users.GetByIdentifier(ctx, account.Username)
		if err == nil {
			seeded[account.Username] = existing.ID
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}

		err = tx.InTx(ctx, func(ctx context.Context) error {
			created, err := users.Create(ctx, user.User{
				Username:     account.Username,
				Email:        account.Email,
				PasswordHash: string(hash),
				Role:         account.Role,
			})
			if err != nil {
				return err
			}
			_, err = employees.Create(ctx, employee.EmployeeRequest{
				Name:     account.Name,
				Position: account.Position,
				Phone:    account.Phone,
				UserID:   &created.ID,
			})
			if err != nil {
				return err
			}
			seeded[account.Username] = created.ID
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", account.Username, err)
		}
	}
	return seeded, nil
}
