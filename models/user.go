package models

// User identifies an uploader. It is used only for scoping videos and is
// never mutated after registration.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"` // "-" means don't include in JSON responses
	CreatedAt    int64  `json:"created_at" gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (User) TableName() string {
	return "users"
}

// SetPassword stores the given credential on the user model. Credentials are
// kept and compared in plaintext; the deployment requires them recoverable.
func (u *User) SetPassword(password string) {
	u.PasswordHash = password
}

// CheckPassword verifies the given credential against the stored one.
func (u *User) CheckPassword(password string) bool {
	return u.PasswordHash == password
}
