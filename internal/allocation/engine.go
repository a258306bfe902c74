// Package allocation implements the daily lead delivery engine. A
// user's first call of the day draws a bounded random batch from the
// leads they have never seen, filtered by their preferences; every
// later call that day returns the same batch.
package allocation

import (
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/welovit/lead-buddy-app/internal/ledger"
	"github.com/welovit/lead-buddy-app/internal/model"
	"github.com/welovit/lead-buddy-app/internal/prefs"
)

// DefaultDailyLimit bounds the batch size when none is configured.
const DefaultDailyLimit = 7

const dateLayout = "2006-01-02"

// Engine computes and records daily lead batches.
type Engine struct {
	db    *gorm.DB
	limit int
	now   func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	lockMu    sync.Mutex
	userLocks map[uint]*sync.Mutex
}

// NewEngine returns an engine delivering at most limit leads per user
// per day. A non-positive limit falls back to DefaultDailyLimit.
func NewEngine(db *gorm.DB, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Engine{
		db:        db,
		limit:     limit,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// DeliverDaily returns today's batch for the user, creating it on the
// first call of the day. The boolean reports whether this call created
// the batch. Concurrent first-of-day calls for the same user serialize
// on a per-user lock, and the check-then-insert runs in a single
// transaction, so exactly one batch is ever created and the insert is
// all-or-nothing.
func (e *Engine) DeliverDaily(userID uint) ([]model.LeadView, bool, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// Single canonical date basis (UTC calendar date) for both the
	// idempotence check and the inserted records.
	today := e.now().UTC().Format(dateLayout)

	var views []model.LeadView
	var fresh bool
	err := e.db.Transaction(func(tx *gorm.DB) error {
		existing, err := ledger.DeliveredOn(tx, userID, today)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			views = existing
			return nil
		}

		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		countries := prefs.DecodeCountries(user.CountryPreferences)
		categoryIDs := prefs.DecodeCategoryIDs(user.CategoryPreferences)

		eligible, err := e.eligibleLeadIDs(tx, userID, countries, categoryIDs)
		if err != nil {
			return err
		}
		picked := e.sample(eligible)
		if len(picked) == 0 {
			// Nothing eligible today is a valid outcome, not an error.
			views = []model.LeadView{}
			return nil
		}

		records := make([]model.UserLead, 0, len(picked))
		for _, leadID := range picked {
			records = append(records, model.UserLead{
				UserID:       userID,
				LeadID:       leadID,
				DeliveryDate: today,
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		fresh = true

		views, err = ledger.DeliveredOn(tx, userID, today)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return views, fresh, nil
}

// eligibleLeadIDs builds the pool: every lead never delivered to this
// user (lifetime exclusion), narrowed by the country and category
// filters when non-empty.
func (e *Engine) eligibleLeadIDs(tx *gorm.DB, userID uint, countries []string, categoryIDs []uint) ([]uint, error) {
	seen := tx.Model(&model.UserLead{}).Select("lead_id").Where("user_id = ?", userID)
	query := tx.Model(&model.Lead{}).
		Joins("JOIN companies ON companies.id = leads.company_id").
		Where("leads.id NOT IN (?)", seen)
	if len(countries) > 0 {
		query = query.Where("leads.country IN ?", countries)
	}
	if len(categoryIDs) > 0 {
		query = query.Where("companies.category_id IN ?", categoryIDs)
	}
	var ids []uint
	err := query.Pluck("leads.id", &ids).Error
	return ids, err
}

// sample draws up to the daily limit uniformly without replacement.
func (e *Engine) sample(ids []uint) []uint {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > e.limit {
		ids = ids[:e.limit]
	}
	return ids
}

func (e *Engine) userLock(userID uint) *sync.Mutex {
	e.lockMu.Lock()
	defer e.lockMu.Unlock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}
