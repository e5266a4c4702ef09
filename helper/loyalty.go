package helper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"restaurant_manager/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetLoyaltyProgram returns the restaurant's program, creating the default one on first read.
func GetLoyaltyProgram(db *gorm.DB, restaurantID uint) (*model.LoyaltyProgram, error) {
	var program model.LoyaltyProgram
	err := db.Where("restaurant_id = ?", restaurantID).
		Attrs(model.LoyaltyProgram{RestaurantID: restaurantID, IsActive: true}).
		FirstOrCreate(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func UpdateLoyaltyProgram(db *gorm.DB, restaurantID uint, input model.UpdateLoyaltyProgramInput) (*model.LoyaltyProgram, error) {
	program, err := GetLoyaltyProgram(db, restaurantID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		program.Name = *input.Name
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.IsActive != nil {
		program.IsActive = *input.IsActive
	}
	if input.PointsSettings != nil {
		program.Points = *input.PointsSettings
	}
	if input.Tiers != nil {
		program.Tiers = datatypes.JSONSlice[model.LoyaltyTier](SortTiers(input.Tiers))
	}
	if input.Campaigns != nil {
		program.Campaigns = input.Campaigns
	}
	if err := db.Save(program).Error; err != nil {
		return nil, err
	}
	return program, nil
}

// SortTiers orders tiers by ascending minimumPoints.
func SortTiers(tiers []model.LoyaltyTier) []model.LoyaltyTier {
	out := append([]model.LoyaltyTier(nil), tiers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinimumPoints < out[j].MinimumPoints })
	return out
}

// EvaluateTier returns the highest tier whose threshold points satisfy, and the one after it.
func EvaluateTier(tiers []model.LoyaltyTier, points int) (current, next *model.LoyaltyTier) {
	sorted := SortTiers(tiers)
	for i := range sorted {
		if points >= sorted[i].MinimumPoints {
			current = &sorted[i]
			continue
		}
		next = &sorted[i]
		break
	}
	return current, next
}

func GetCustomerTier(db *gorm.DB, restaurantID, customerID uint) (*model.CustomerTier, error) {
	customer, err := GetCustomer(db, restaurantID, customerID)
	if err != nil {
		return nil, err
	}
	program, err := GetLoyaltyProgram(db, restaurantID)
	if err != nil {
		return nil, err
	}
	current, next := EvaluateTier(program.Tiers, customer.LoyaltyPoints)
	out := &model.CustomerTier{
		CustomerID:    customer.ID,
		LoyaltyPoints: customer.LoyaltyPoints,
		Tier:          current,
		NextTier:      next,
	}
	if next != nil {
		out.PointsToNext = next.MinimumPoints - customer.LoyaltyPoints
	}
	return out, nil
}

func CreateReward(db *gorm.DB, restaurantID uint, input model.CreateRewardInput) (*model.LoyaltyReward, error) {
	reward := model.LoyaltyReward{
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		PointsCost:   input.PointsCost,
		RewardType:   input.RewardType,
		Value:        input.Value,
		Conditions: model.RewardConditions{
			MinimumOrder:       input.Conditions.MinimumOrder,
			MaxUsesPerCustomer: input.Conditions.MaxUsesPerCustomer,
			ValidUntil:         input.Conditions.ValidUntil,
			ValidDays:          input.Conditions.ValidDays,
		},
		IsActive: true,
	}
	if input.IsActive != nil {
		reward.IsActive = *input.IsActive
	}
	if err := db.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func ListRewards(db *gorm.DB, restaurantID uint, activeOnly bool) ([]model.LoyaltyReward, error) {
	query := db.Where("restaurant_id = ?", restaurantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rewards []model.LoyaltyReward
	err := query.Order("points_cost ASC, id ASC").Find(&rewards).Error
	return rewards, err
}

func findReward(db *gorm.DB, restaurantID, id uint) (*model.LoyaltyReward, error) {
	var reward model.LoyaltyReward
	if err := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func UpdateReward(db *gorm.DB, restaurantID, id uint, input model.CreateRewardInput) (*model.LoyaltyReward, error) {
	reward, err := findReward(db, restaurantID, id)
	if err != nil {
		return nil, err
	}
	reward.Name = strings.TrimSpace(input.Name)
	reward.Description = input.Description
	reward.PointsCost = input.PointsCost
	reward.RewardType = input.RewardType
	reward.Value = input.Value
	reward.Conditions = model.RewardConditions{
		MinimumOrder:       input.Conditions.MinimumOrder,
		MaxUsesPerCustomer: input.Conditions.MaxUsesPerCustomer,
		ValidUntil:         input.Conditions.ValidUntil,
		ValidDays:          input.Conditions.ValidDays,
	}
	if input.IsActive != nil {
		reward.IsActive = *input.IsActive
	}
	if err := db.Save(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}

func DeleteReward(db *gorm.DB, restaurantID, id uint) error {
	res := db.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&model.LoyaltyReward{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRewardNotFound
	}
	return nil
}

func checkRewardConditions(reward *model.LoyaltyReward, orderTotal float64, now time.Time) error {
	if !reward.IsActive {
		return ErrRewardUnavailable
	}
	c := reward.Conditions
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrRewardUnavailable
	}
	if len(c.ValidDays) > 0 {
		today := strings.ToLower(now.Weekday().String())
		allowed := false
		for _, d := range c.ValidDays {
			if strings.ToLower(d) == today {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrRewardUnavailable
		}
	}
	if c.MinimumOrder > 0 && orderTotal < c.MinimumOrder {
		return ErrRewardMinimumOrder
	}
	return nil
}

// RedeemReward spends a customer's points on a reward. Limits and balance are checked and
// applied in one transaction with the reward and customer rows locked.
func RedeemReward(db *gorm.DB, restaurantID, rewardID uint, input model.RedeemRewardInput, now time.Time) (*model.RewardRedemption, error) {
	var redemption model.RewardRedemption
	err := db.Transaction(func(tx *gorm.DB) error {
		var reward model.LoyaltyReward
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND restaurant_id = ?", rewardID, restaurantID).
			First(&reward).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		if err := checkRewardConditions(&reward, input.OrderTotal, now); err != nil {
			return err
		}

		var customer model.Customer
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND restaurant_id = ?", input.CustomerID, restaurantID).
			First(&customer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		if limit := reward.Conditions.MaxUsesPerCustomer; limit > 0 {
			var used int64
			err := tx.Model(&model.RewardRedemption{}).
				Where("reward_id = ? AND customer_id = ?", reward.ID, customer.ID).
				Count(&used).Error
			if err != nil {
				return err
			}
			if used >= int64(limit) {
				return ErrRewardLimitReached
			}
		}

		res := tx.Model(&model.Customer{}).
			Where("id = ? AND loyalty_points >= ?", customer.ID, reward.PointsCost).
			UpdateColumn("loyalty_points", gorm.Expr("loyalty_points - ?", reward.PointsCost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}
		err = tx.Model(&model.LoyaltyReward{}).
			Where("id = ?", reward.ID).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
		if err != nil {
			return fmt.Errorf("bump reward usage: %w", err)
		}

		redemption = model.RewardRedemption{
			RestaurantID: restaurantID,
			RewardID:     reward.ID,
			CustomerID:   customer.ID,
			PointsSpent:  reward.PointsCost,
			OrderTotal:   input.OrderTotal,
		}
		return tx.Create(&redemption).Error
	})
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}
