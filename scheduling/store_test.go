package scheduling

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestMapCreateError(t *testing.T) {
	if err := mapCreateError(nil); err != nil {
		t.Errorf("nil must pass through, got %v", err)
	}

	if err := mapCreateError(gorm.ErrDuplicatedKey); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("duplicated key must map to ErrSlotTaken, got %v", err)
	}
	wrapped := fmt.Errorf("insert failed: %w", gorm.ErrDuplicatedKey)
	if err := mapCreateError(wrapped); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("wrapped duplicated key must map to ErrSlotTaken, got %v", err)
	}

	other := errors.New("connection reset")
	if err := mapCreateError(other); !errors.Is(err, other) {
		t.Errorf("unrelated errors must pass through, got %v", err)
	}
}
