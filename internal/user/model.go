package user

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the single persisted identity record. Password holds either a
// bcrypt hash or the sentinel marker of the provider that created it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk,type:varchar(36)"`
	Name      string    `bun:"name,notnull"`
	Email     string    `bun:"email,notnull,unique"`
	Password  string    `bun:"password,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}
