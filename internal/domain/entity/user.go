package entity

import "time"

// SubscriptionStatus estado de la suscripción del administrador.
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "TRIAL"
	SubscriptionActive  SubscriptionStatus = "ACTIVE"
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
)

// User administrador del dashboard. Password en texto plano, sin hash.
type User struct {
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	Password           string             `json:"-"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	TrialEndDate       *time.Time         `json:"trial_end_date,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// TrialExpired indica si la prueba venció en now. Suscripción activa nunca vence.
func (u *User) TrialExpired(now time.Time) bool {
	switch u.SubscriptionStatus {
	case SubscriptionActive:
		return false
	case SubscriptionExpired:
		return true
	}
	return u.TrialEndDate != nil && now.After(*u.TrialEndDate)
}
