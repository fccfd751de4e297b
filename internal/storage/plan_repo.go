package storage

import (
	"github.com/lynneapp/lynne/internal/model"
)

// PlanRepo persists the reminder plan singleton. Replacing the plan is
// the cancel-then-reschedule-all operation: there are no per-notification
// identifiers to track beyond the entries of the current plan.
type PlanRepo struct {
	db *DB
}

// NewPlanRepo creates a new reminder plan repository.
func NewPlanRepo(db *DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// Get returns the current plan, or nil when no plan is scheduled.
func (r *PlanRepo) Get() (*model.ReminderPlan, error) {
	plan := &model.ReminderPlan{}
	if err := r.db.Get(model.KeyReminderPlan, plan); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

// Replace swaps in a whole new plan, discarding any previous one.
func (r *PlanRepo) Replace(plan *model.ReminderPlan) error {
	plan.Key = model.KeyReminderPlan
	return r.db.Set(plan)
}

// Update persists delivery-state changes to the current plan.
func (r *PlanRepo) Update(plan *model.ReminderPlan) error {
	plan.Key = model.KeyReminderPlan
	return r.db.Set(plan)
}

// Cancel deletes the current plan. Cancelling when no plan exists is a
// no-op.
func (r *PlanRepo) Cancel() error {
	return r.db.Delete(model.KeyReminderPlan)
}
