// internal/domain/promotion/service.go
package promotion

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/discount"
	"gorm.io/gorm"
)

// ErrPromotionInactive is returned when the admin flag is off
var ErrPromotionInactive = fmt.Errorf("dice promotion is not currently active")

// RollStore persists dice rolls, one per (user, UTC day).
type RollStore interface {
	FindByUserAndDay(userID uint, day time.Time) (*DiceRoll, error)
	Create(roll *DiceRoll) error
}

// SettingsStore holds the single admin-controlled promotion flag.
type SettingsStore interface {
	IsActive() (bool, error)
	SetActive(active bool) error
}

// DiscountApplier pushes a completed roll into the owner's discount state.
type DiscountApplier interface {
	Apply(ctx context.Context, userID *uint, sessionID, code string, percentage int) error
}

// Service handles the daily dice promotion
type Service struct {
	rolls     RollStore
	settings  SettingsStore
	discounts DiscountApplier
	config    *config.Config
	rng       *rand.Rand
	now       func() time.Time
}

// NewService creates a new promotion service backed by Postgres storage
func NewService(db *gorm.DB, discounts *discount.Service, cfg *config.Config) *Service {
	return &Service{
		rolls:     &gormRollStore{db: db},
		settings:  &gormSettingsStore{db: db},
		discounts: discounts,
		config:    cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// RollResult represents a completed roll with its derived discount code
type RollResult struct {
	Die1          int    `json:"die1"`
	Die2          int    `json:"die2"`
	PackedRoll    int    `json:"packed_roll"`
	Percentage    int    `json:"percentage"`
	Code          string `json:"code"`
	RollDate      string `json:"roll_date"`
	AlreadyRolled bool   `json:"already_rolled"`
}

// IsActive reports whether the admin-controlled special discount flag is on
func (s *Service) IsActive() (bool, error) {
	return s.settings.IsActive()
}

// SetActive toggles the special discount flag (admin only)
func (s *Service) SetActive(active bool) error {
	return s.settings.SetActive(active)
}

// TodayRoll returns the user's roll for the current UTC day, or nil if the
// user has not rolled yet.
func (s *Service) TodayRoll(userID uint) (*DiceRoll, error) {
	return s.rolls.FindByUserAndDay(userID, DayUTC(s.now()))
}

// Roll performs the user's daily roll. Rolling is idempotent per UTC day:
// if a roll already exists it is returned unchanged and no new row is
// created. On a fresh roll the derived code and percentage are pushed into
// the user's discount state.
func (s *Service) Roll(ctx context.Context, userID uint, userUUID string) (*RollResult, error) {
	active, err := s.IsActive()
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrPromotionInactive
	}

	day := DayUTC(s.now())

	existing, err := s.TodayRoll(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.resultFor(existing, userUUID, true), nil
	}

	die1, die2 := RollDice(s.rng)
	roll := DiceRoll{
		UserID:     userID,
		RollDate:   day,
		PackedRoll: PackRoll(die1, die2),
		Percentage: die1 + die2,
	}

	if err := s.rolls.Create(&roll); err != nil {
		// A concurrent roll may have won the unique (user, day) race;
		// re-read the stored row instead of failing.
		if stored, readErr := s.TodayRoll(userID); readErr == nil && stored != nil {
			return s.resultFor(stored, userUUID, true), nil
		}
		return nil, fmt.Errorf("failed to store dice roll: %w", err)
	}

	result := s.resultFor(&roll, userUUID, false)

	// Completing a roll immediately applies the derived discount to the cart
	if err := s.discounts.Apply(ctx, &userID, "", result.Code, result.Percentage); err != nil {
		return nil, fmt.Errorf("failed to apply dice discount: %w", err)
	}

	return result, nil
}

// CodeForRoll re-derives the discount code for a stored roll
func (s *Service) CodeForRoll(roll *DiceRoll, userUUID string) string {
	return DeriveCode(userUUID, roll.PackedRoll, roll.RollDate)
}

func (s *Service) resultFor(roll *DiceRoll, userUUID string, alreadyRolled bool) *RollResult {
	die1, die2 := UnpackRoll(roll.PackedRoll)
	return &RollResult{
		Die1:          die1,
		Die2:          die2,
		PackedRoll:    roll.PackedRoll,
		Percentage:    roll.Percentage,
		Code:          s.CodeForRoll(roll, userUUID),
		RollDate:      roll.RollDate.UTC().Format("2006-01-02"),
		AlreadyRolled: alreadyRolled,
	}
}

// gormRollStore persists dice rolls in Postgres
type gormRollStore struct {
	db *gorm.DB
}

func (g *gormRollStore) FindByUserAndDay(userID uint, day time.Time) (*DiceRoll, error) {
	var roll DiceRoll
	result := g.db.Where("user_id = ? AND roll_date = ?", userID, day).First(&roll)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	} else if result.Error != nil {
		return nil, fmt.Errorf("failed to query dice roll: %w", result.Error)
	}
	return &roll, nil
}

func (g *gormRollStore) Create(roll *DiceRoll) error {
	return g.db.Create(roll).Error
}

// gormSettingsStore reads the flag from its single row, created on first use
type gormSettingsStore struct {
	db *gorm.DB
}

func (g *gormSettingsStore) IsActive() (bool, error) {
	var setting SpecialDiscountSetting
	result := g.db.First(&setting)
	if result.Error == gorm.ErrRecordNotFound {
		return false, nil
	} else if result.Error != nil {
		return false, fmt.Errorf("failed to read special discount setting: %w", result.Error)
	}
	return setting.Active, nil
}

func (g *gormSettingsStore) SetActive(active bool) error {
	var setting SpecialDiscountSetting
	result := g.db.First(&setting)
	if result.Error == gorm.ErrRecordNotFound {
		setting = SpecialDiscountSetting{Active: active}
		return g.db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Active = active
	return g.db.Save(&setting).Error
}
