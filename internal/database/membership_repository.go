package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gamenest/cafe-booking-backend/internal/models"
)

// MembershipRepository handles membership plans and subscriptions
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ListPlansByCafe returns all membership plans for a café
func (r *MembershipRepository) ListPlansByCafe(cafeID uuid.UUID) ([]models.MembershipPlan, error) {
	var plans []models.MembershipPlan
	err := r.db.Select(&plans, `
		SELECT id, cafe_id, name, description, price, duration_days, created_at
		FROM membership_plans
		WHERE cafe_id = $1
		ORDER BY price
	`, cafeID)
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// GetPlanByID returns one plan, or nil when not found
func (r *MembershipRepository) GetPlanByID(id uuid.UUID) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.Get(&plan, `
		SELECT id, cafe_id, name, description, price, duration_days, created_at
		FROM membership_plans
		WHERE id = $1
	`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// CreatePlan inserts a membership plan
func (r *MembershipRepository) CreatePlan(plan *models.MembershipPlan) error {
	_, err := r.db.Exec(`
		INSERT INTO membership_plans (id, cafe_id, name, description, price, duration_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, plan.ID, plan.CafeID, plan.Name, plan.Description, plan.Price, plan.DurationDays, plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert membership plan: %w", err)
	}
	return nil
}

// DeletePlan removes a plan and its subscriptions in one transaction
func (r *MembershipRepository) DeletePlan(id uuid.UUID) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM subscriptions WHERE plan_id = $1`, id); err != nil {
		return false, fmt.Errorf("failed to delete plan subscriptions: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM membership_plans WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete membership plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit plan deletion: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}

// ListSubscriptionsByCafe returns all subscriptions for a café
func (r *MembershipRepository) ListSubscriptionsByCafe(cafeID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Select(&subs, `
		SELECT id, plan_id, cafe_id, customer_name, customer_email, starts_at, ends_at, created_at
		FROM subscriptions
		WHERE cafe_id = $1
		ORDER BY created_at DESC
	`, cafeID)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubscription inserts a subscription instance
func (r *MembershipRepository) CreateSubscription(sub *models.Subscription) error {
	_, err := r.db.Exec(`
		INSERT INTO subscriptions (id, plan_id, cafe_id, customer_name, customer_email, starts_at, ends_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, sub.ID, sub.PlanID, sub.CafeID, sub.CustomerName, sub.CustomerEmail, sub.StartsAt, sub.EndsAt, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// DeleteSubscription removes a subscription
func (r *MembershipRepository) DeleteSubscription(id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected == 1, nil
}
