package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/PiWizard3852/Wayve/internal/domain"
)

const debounceInterval = 1 * time.Second

// Debouncer implements domain.VoteDebouncer: one vote per (voter, subject)
// per debounce interval, enforced with SET NX PX.
type Debouncer struct {
	rdb *goredis.Client
}

func NewDebouncer(rdb *goredis.Client) *Debouncer {
	return &Debouncer{rdb: rdb}
}

func (d *Debouncer) CheckDebounce(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (bool, error) {
	set, err := d.rdb.SetNX(ctx, debounceKey(kind, subjectID, voter), "1", debounceInterval).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check debounce: %w", err)
	}
	return set, nil
}

func debounceKey(kind domain.SubjectKind, subjectID uuid.UUID, voter string) string {
	return "debounce:" + string(kind) + ":" + subjectID.String() + ":" + voter
}
