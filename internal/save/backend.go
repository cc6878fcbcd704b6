package save

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Backup identifies one rolled-over copy of a slot
type Backup struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Backend stores encoded save files by slot. Writing a slot rolls the
// previous contents into its backups and keeps only the newest keep copies.
type Backend interface {
	Name() string
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte, keep int) error
	// Backups lists the backups of a slot, newest first
	Backups(ctx context.Context, slot string) ([]Backup, error)
	ReadBackup(ctx context.Context, slot, id string) ([]byte, error)
	Delete(ctx context.Context, slot string) error
}

var slotValidator = validator.New()

// ValidateSlot rejects slot names that are unsafe as file names or keys
func ValidateSlot(slot string) error {
	if err := slotValidator.Var(slot, "required,max=64,printascii,excludesall=/\\.:*?"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return nil
}
